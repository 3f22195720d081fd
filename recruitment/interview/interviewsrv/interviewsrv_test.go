package interviewsrv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/iamtest"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/application"
	"github.com/Abraxas-365/peoplehub/recruitment/interview"
	"github.com/Abraxas-365/peoplehub/workforce/notification"
)

type memRepo struct {
	mu    sync.Mutex
	items map[kernel.InterviewID]interview.Interview
}

func (m *memRepo) Create(ctx context.Context, i *interview.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[i.ID] = *i
	return nil
}

func (m *memRepo) Update(ctx context.Context, i *interview.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[i.ID] = *i
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.items[id]
	if !ok {
		return nil, interview.ErrInterviewNotFound()
	}
	return &i, nil
}

func (m *memRepo) ListByApplication(ctx context.Context, id kernel.ApplicationID) ([]interview.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []interview.Interview
	for _, i := range m.items {
		if i.ApplicationID == id {
			out = append(out, i)
		}
	}
	return out, nil
}

type fakeApplications struct {
	apps     map[kernel.ApplicationID]*application.Application
	advanced []kernel.ApplicationID
}

func (f *fakeApplications) GetApplication(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	return a, nil
}

func (f *fakeApplications) AdvanceToInterviewing(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	a, err := f.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsActive() {
		return nil, application.ErrInvalidStatusTransition()
	}
	f.advanced = append(f.advanced, id)
	a.Status = application.ApplicationStatusInterviewing
	return a, nil
}

type sent struct {
	to   kernel.UserID
	kind notification.Kind
}

type fakeNotifier struct {
	sent []sent
}

func (f *fakeNotifier) NotifyQuietly(ctx context.Context, to kernel.UserID, kind notification.Kind, message string) {
	f.sent = append(f.sent, sent{to: to, kind: kind})
}

type fixture struct {
	svc      *InterviewService
	apps     *fakeApplications
	notifier *fakeNotifier
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := iamtest.NewUserRepo()
	users.Put(user.User{ID: "iv", Name: "Ivy", Email: "ivy@example.com", Status: user.UserStatusActive})
	users.Put(user.User{ID: "gone", Name: "Gil", Email: "gil@example.com", Status: user.UserStatusInactive})

	apps := &fakeApplications{apps: map[kernel.ApplicationID]*application.Application{
		"a1":   {ID: "a1", CandidateID: "cand", Status: application.ApplicationStatusApplied},
		"dead": {ID: "dead", CandidateID: "cand", Status: application.ApplicationStatusRejected},
	}}
	notifier := &fakeNotifier{}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	svc := NewInterviewService(&memRepo{items: map[kernel.InterviewID]interview.Interview{}}, users, apps, notifier)
	svc.now = func() time.Time { return now }
	return &fixture{svc: svc, apps: apps, notifier: notifier, now: now}
}

func TestScheduleInterview(t *testing.T) {
	f := newFixture(t)

	iv, err := f.svc.ScheduleInterview(context.Background(), interview.ScheduleInterviewRequest{
		ApplicationID: "a1",
		InterviewerID: "iv",
		ScheduledAt:   f.now.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, interview.InterviewStatusScheduled, iv.Status)
	assert.Equal(t, []kernel.ApplicationID{"a1"}, f.apps.advanced)
	assert.Equal(t, []sent{
		{to: "cand", kind: notification.KindInterviewScheduled},
		{to: "iv", kind: notification.KindInterviewScheduled},
	}, f.notifier.sent)

	list, err := f.svc.ListByApplication(context.Background(), "a1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestScheduleInterviewValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	later := f.now.Add(time.Hour)

	tests := []struct {
		name string
		req  interview.ScheduleInterviewRequest
		code string
	}{
		{"missing fields", interview.ScheduleInterviewRequest{ApplicationID: "a1"}, interview.CodeInvalidRequest},
		{"in the past", interview.ScheduleInterviewRequest{ApplicationID: "a1", InterviewerID: "iv", ScheduledAt: f.now.Add(-time.Minute)}, interview.CodeInvalidSchedule},
		{"unknown interviewer", interview.ScheduleInterviewRequest{ApplicationID: "a1", InterviewerID: "nobody", ScheduledAt: later}, user.CodeUserNotFound},
		{"inactive interviewer", interview.ScheduleInterviewRequest{ApplicationID: "a1", InterviewerID: "gone", ScheduledAt: later}, interview.CodeInvalidRequest},
		{"closed application", interview.ScheduleInterviewRequest{ApplicationID: "dead", InterviewerID: "iv", ScheduledAt: later}, application.CodeInvalidStatusTransition},
		{"unknown application", interview.ScheduleInterviewRequest{ApplicationID: "nope", InterviewerID: "iv", ScheduledAt: later}, application.CodeApplicationNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ScheduleInterview(ctx, tt.req)
			assert.True(t, errx.IsCode(err, tt.code), "got %v", err)
		})
	}
	assert.Empty(t, f.notifier.sent)
}

func TestSubmitFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	iv, err := f.svc.ScheduleInterview(ctx, interview.ScheduleInterviewRequest{ApplicationID: "a1", InterviewerID: "iv", ScheduledAt: f.now.Add(time.Hour)})
	require.NoError(t, err)

	_, err = f.svc.SubmitFeedback(ctx, iv.ID, interview.FeedbackRequest{Feedback: "solid"}, Actor{UserID: "someone"})
	assert.True(t, errx.IsCode(err, interview.CodeInsufficientPermissions))

	_, err = f.svc.SubmitFeedback(ctx, iv.ID, interview.FeedbackRequest{Feedback: "  "}, Actor{UserID: "iv"})
	assert.True(t, errx.IsCode(err, interview.CodeFeedbackRequired))

	bad := 9
	_, err = f.svc.SubmitFeedback(ctx, iv.ID, interview.FeedbackRequest{Feedback: "ok", Rating: &bad}, Actor{UserID: "iv"})
	assert.True(t, errx.IsCode(err, interview.CodeInvalidRating))

	rating := 4
	done, err := f.svc.SubmitFeedback(ctx, iv.ID, interview.FeedbackRequest{Feedback: "Strong Go skills", Rating: &rating}, Actor{UserID: "iv"})
	require.NoError(t, err)
	assert.Equal(t, interview.InterviewStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)

	_, err = f.svc.CancelInterview(ctx, iv.ID, interview.CancelInterviewRequest{})
	assert.True(t, errx.IsCode(err, interview.CodeInterviewNotScheduled))
}

func TestCancelInterview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	iv, err := f.svc.ScheduleInterview(ctx, interview.ScheduleInterviewRequest{ApplicationID: "a1", InterviewerID: "iv", ScheduledAt: f.now.Add(time.Hour)})
	require.NoError(t, err)
	f.notifier.sent = nil

	cancelled, err := f.svc.CancelInterview(ctx, iv.ID, interview.CancelInterviewRequest{Reason: "role filled"})
	require.NoError(t, err)
	assert.Equal(t, interview.InterviewStatusCancelled, cancelled.Status)
	assert.Equal(t, "role filled", cancelled.CancelReason)
	assert.Equal(t, []sent{{to: "cand", kind: notification.KindInterviewCancelled}}, f.notifier.sent)

	_, err = f.svc.SubmitFeedback(ctx, iv.ID, interview.FeedbackRequest{Feedback: "late"}, Actor{UserID: "iv"})
	assert.True(t, errx.IsCode(err, interview.CodeInterviewNotScheduled))
}
