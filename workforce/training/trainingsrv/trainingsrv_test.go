package trainingsrv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/iamtest"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/notification"
	"github.com/Abraxas-365/peoplehub/workforce/training"
	"github.com/Abraxas-365/peoplehub/workforce/training/trainingtest"
)

type sent struct {
	to   kernel.UserID
	kind notification.Kind
}

type fakeNotifier struct {
	sent []sent
}

func (f *fakeNotifier) NotifyQuietly(ctx context.Context, recipient kernel.UserID, kind notification.Kind, message string) {
	f.sent = append(f.sent, sent{to: recipient, kind: kind})
}

func newService(t *testing.T) (*TrainingService, *fakeNotifier) {
	t.Helper()
	users := iamtest.NewUserRepo()
	users.Put(user.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Status: user.UserStatusActive})
	users.Put(user.User{ID: "u2", Name: "Ben", Email: "ben@example.com", Status: user.UserStatusActive})
	users.Put(user.User{ID: "gone", Name: "Old", Email: "old@example.com", Status: user.UserStatusInactive})

	notifier := &fakeNotifier{}
	svc := NewTrainingService(
		trainingtest.NewTrainingRepo(),
		trainingtest.NewCourseRepo(),
		trainingtest.NewEnrollmentRepo(),
		users,
		notifier,
	)
	return svc, notifier
}

func seedCourse(t *testing.T, svc *TrainingService) *training.Course {
	t.Helper()
	ctx := context.Background()
	tr, err := svc.CreateTraining(ctx, training.CreateTrainingRequest{Title: "Onboarding"})
	require.NoError(t, err)
	c, err := svc.AddCourse(ctx, tr.ID, training.AddCourseRequest{Title: "Security basics", DurationMins: 45})
	require.NoError(t, err)
	return c
}

func TestTrainingCRUD(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateTraining(ctx, training.CreateTrainingRequest{Title: "  "})
	assert.True(t, errx.IsCode(err, training.CodeInvalidTraining))

	tr, err := svc.CreateTraining(ctx, training.CreateTrainingRequest{Title: " Leadership "})
	require.NoError(t, err)
	assert.Equal(t, "Leadership", tr.Title)

	desc := "for new managers"
	updated, err := svc.UpdateTraining(ctx, tr.ID, training.UpdateTrainingRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Leadership", updated.Title)
	assert.Equal(t, desc, updated.Description)

	page, err := svc.ListTrainings(ctx, kernel.PaginationOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	require.NoError(t, svc.DeleteTraining(ctx, tr.ID))
	_, err = svc.GetTraining(ctx, tr.ID)
	assert.True(t, errx.IsCode(err, training.CodeTrainingNotFound))
}

func TestCourses(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddCourse(ctx, "missing", training.AddCourseRequest{Title: "x"})
	assert.True(t, errx.IsCode(err, training.CodeTrainingNotFound))

	c := seedCourse(t, svc)
	courses, err := svc.ListCourses(ctx, c.TrainingID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Security basics", courses[0].Title)

	catalogue, err := svc.Catalogue(ctx)
	require.NoError(t, err)
	assert.Len(t, catalogue, 1)
}

func TestEnroll(t *testing.T) {
	svc, notifier := newService(t)
	ctx := context.Background()
	c := seedCourse(t, svc)

	e, err := svc.Enroll(ctx, c.ID, training.EnrollRequest{}, Actor{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, kernel.UserID("u1"), e.UserID)
	assert.Equal(t, training.EnrollmentStatusEnrolled, e.Status)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, sent{to: "u1", kind: notification.KindEnrollment}, notifier.sent[0])

	_, err = svc.Enroll(ctx, c.ID, training.EnrollRequest{UserID: "u1"}, Actor{UserID: "u1"})
	assert.True(t, errx.IsCode(err, training.CodeAlreadyEnrolled))

	_, err = svc.Enroll(ctx, c.ID, training.EnrollRequest{UserID: "u2"}, Actor{UserID: "u1"})
	assert.True(t, errx.IsCode(err, training.CodeInsufficientPermissions))

	_, err = svc.Enroll(ctx, c.ID, training.EnrollRequest{UserID: "u2"}, Actor{UserID: "u1", CanManageAll: true})
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, c.ID, training.EnrollRequest{UserID: "gone"}, Actor{UserID: "admin", CanManageAll: true})
	assert.True(t, errx.IsCode(err, training.CodeInvalidTraining))

	_, err = svc.Enroll(ctx, "nope", training.EnrollRequest{}, Actor{UserID: "u1"})
	assert.True(t, errx.IsCode(err, training.CodeCourseNotFound))
}

func TestUpdateProgress(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	c := seedCourse(t, svc)

	e, err := svc.Enroll(ctx, c.ID, training.EnrollRequest{}, Actor{UserID: "u1"})
	require.NoError(t, err)

	half := 50.0
	_, err = svc.UpdateProgress(ctx, e.ID, training.UpdateProgressRequest{Progress: &half}, Actor{UserID: "u2"})
	assert.True(t, errx.IsCode(err, training.CodeInsufficientPermissions))

	got, err := svc.UpdateProgress(ctx, e.ID, training.UpdateProgressRequest{Progress: &half}, Actor{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, training.EnrollmentStatusInProgress, got.Status)

	full := 100.0
	got, err = svc.UpdateProgress(ctx, e.ID, training.UpdateProgressRequest{Progress: &full}, Actor{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, training.EnrollmentStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)

	_, err = svc.UpdateProgress(ctx, e.ID, training.UpdateProgressRequest{}, Actor{UserID: "u1"})
	assert.True(t, errx.IsCode(err, training.CodeInvalidProgress))

	items, err := svc.ListUserEnrollments(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, training.EnrollmentStatusCompleted, items[0].Status)
}
