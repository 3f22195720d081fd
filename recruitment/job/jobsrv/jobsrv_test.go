package jobsrv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/iamtest"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/job"
	"github.com/Abraxas-365/peoplehub/recruitment/job/jobtest"
)

type fakeIndexer struct {
	indexed map[kernel.JobID]string
	fail    bool
}

func (f *fakeIndexer) IndexJob(ctx context.Context, j *job.Job) error {
	if f.fail {
		return errors.New("vector store down")
	}
	f.indexed[j.ID] = string(j.Title)
	return nil
}

func (f *fakeIndexer) RemoveJob(ctx context.Context, id kernel.JobID) error {
	delete(f.indexed, id)
	return nil
}

func newService(t *testing.T) (*JobService, *fakeIndexer) {
	t.Helper()
	users := iamtest.NewUserRepo()
	users.Put(user.User{ID: "poster", Name: "Pat", Email: "pat@example.com", Status: user.UserStatusActive})
	users.Put(user.User{ID: "other", Name: "Oli", Email: "oli@example.com", Status: user.UserStatusActive})
	users.Put(user.User{ID: "gone", Name: "Gil", Email: "gil@example.com", Status: user.UserStatusInactive})

	idx := &fakeIndexer{indexed: map[kernel.JobID]string{}}
	return NewJobService(jobtest.NewJobRepo(), users, idx), idx
}

func TestCreateJobIndexes(t *testing.T) {
	svc, idx := newService(t)

	j, err := svc.CreateJob(context.Background(), job.CreateJobRequest{
		Title:        " Go Engineer ",
		Description:  "Build services",
		Requirements: []kernel.JobRequirement{"Go", " ", "PostgreSQL"},
		PostedBy:     "poster",
	})
	require.NoError(t, err)
	assert.Equal(t, job.JobStatusActive, j.Status)
	assert.Equal(t, kernel.JobTitle("Go Engineer"), j.Title)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, j.RequirementStrings())
	assert.Equal(t, "Go Engineer", idx.indexed[j.ID])
}

func TestCreateJobValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, job.CreateJobRequest{Title: "x", PostedBy: "poster"})
	assert.True(t, errx.IsCode(err, job.CodeInvalidJob))

	_, err = svc.CreateJob(ctx, job.CreateJobRequest{Title: "x", Description: "y", PostedBy: "missing"})
	assert.True(t, errx.IsCode(err, user.CodeUserNotFound))

	_, err = svc.CreateJob(ctx, job.CreateJobRequest{Title: "x", Description: "y", PostedBy: "gone"})
	assert.True(t, errx.IsCode(err, job.CodeInsufficientPermissions))
}

func TestCreateJobSurvivesIndexFailure(t *testing.T) {
	svc, idx := newService(t)
	idx.fail = true

	j, err := svc.CreateJob(context.Background(), job.CreateJobRequest{Title: "x", Description: "y", PostedBy: "poster"})
	require.NoError(t, err)

	idx.fail = false
	resp, err := svc.ReindexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Indexed)
	assert.Contains(t, idx.indexed, j.ID)
}

func TestUpdateJobOwnership(t *testing.T) {
	svc, idx := newService(t)
	ctx := context.Background()

	j, err := svc.CreateJob(ctx, job.CreateJobRequest{Title: "Old", Description: "d", PostedBy: "poster"})
	require.NoError(t, err)

	title := kernel.JobTitle("New")
	_, err = svc.UpdateJob(ctx, j.ID, job.UpdateJobRequest{Title: &title}, Actor{UserID: "other"})
	assert.True(t, errx.IsCode(err, job.CodeUnauthorizedUpdate))

	updated, err := svc.UpdateJob(ctx, j.ID, job.UpdateJobRequest{Title: &title}, Actor{UserID: "other", CanManageAll: true})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "New", idx.indexed[j.ID])
}

func TestCloseArchiveDelete(t *testing.T) {
	svc, idx := newService(t)
	ctx := context.Background()
	owner := Actor{UserID: "poster"}

	j, err := svc.CreateJob(ctx, job.CreateJobRequest{Title: "t", Description: "d", PostedBy: "poster"})
	require.NoError(t, err)

	closed, err := svc.CloseJob(ctx, j.ID, owner)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed())
	assert.Contains(t, idx.indexed, j.ID)

	_, err = svc.RequireActive(ctx, j.ID)
	assert.True(t, errx.IsCode(err, job.CodeJobNotActive))

	_, err = svc.CloseJob(ctx, j.ID, owner)
	assert.True(t, errx.IsCode(err, job.CodeJobAlreadyClosed))

	archived, err := svc.ArchiveJob(ctx, j.ID, owner)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived())
	assert.NotContains(t, idx.indexed, j.ID)

	desc := kernel.JobDescription("new")
	_, err = svc.UpdateJob(ctx, j.ID, job.UpdateJobRequest{Description: &desc}, owner)
	assert.True(t, errx.IsCode(err, job.CodeJobArchived))

	require.NoError(t, svc.DeleteJob(ctx, j.ID, owner))
	_, err = svc.GetJob(ctx, j.ID)
	assert.True(t, errx.IsCode(err, job.CodeJobNotFound))
}
