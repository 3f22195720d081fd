package resumesrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/internal/ai/llm"
	"github.com/Abraxas-365/peoplehub/internal/ai/resumeparser"
	"github.com/Abraxas-365/peoplehub/internal/docextract"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
	"github.com/Abraxas-365/peoplehub/recruitment/resume/resumetest"
)

type fixture struct {
	svc      *Service
	repo     *resumetest.ResumeRepo
	jobs     *resumetest.JobRepo
	queue    *resumetest.Queue
	files    *fsxlocal.LocalFileSystem
	pipeline *resumetest.Pipeline
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     resumetest.NewResumeRepo(),
		jobs:     resumetest.NewJobRepo(),
		queue:    &resumetest.Queue{},
		files:    fsxlocal.NewLocalFileSystem(t.TempDir()),
		pipeline: &resumetest.Pipeline{},
	}
	f.svc = NewService(f.repo, f.jobs, f.queue, f.files, f.pipeline)
	return f
}

func pdfUpload(async bool) resume.UploadResumeRequest {
	return resume.UploadResumeRequest{
		OwnerID:  "u1",
		FileName: "cv.pdf",
		Data:     []byte("%PDF-1.4"),
		Async:    async,
	}
}

// ============================================================================
// Tests
// ============================================================================

func TestUpload_Sync(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.Upload(ctx, pdfUpload(false))
	require.NoError(t, err)
	require.NotNil(t, resp.Resume)
	assert.Empty(t, resp.JobID)
	require.Len(t, resp.Matches, 1)

	stored, err := f.repo.GetByID(ctx, resp.Resume.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.ResumeStatusParsed, stored.Status)
	assert.Equal(t, []string{"Go"}, stored.ParsedData.Skills)
	assert.Equal(t, "pdf", stored.FileType)

	exists, err := f.files.Exists(ctx, stored.FileURL)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpload_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := pdfUpload(false)
	req.Data = nil
	_, err := f.svc.Upload(ctx, req)
	assert.True(t, errx.IsCode(err, resume.CodeFileRequired))

	req = pdfUpload(false)
	req.FileName = "cv.png"
	_, err = f.svc.Upload(ctx, req)
	assert.True(t, errx.IsCode(err, resume.CodeInvalidFileFormat))

	req = pdfUpload(false)
	req.Provider = "claude"
	_, err = f.svc.Upload(ctx, req)
	assert.True(t, errx.IsCode(err, llm.CodeUnsupportedProvider))

	page, err := f.repo.List(ctx, "", kernel.PaginationOptions{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, f.pipeline.Calls)
}

func TestUpload_SyncFailureMarksResumeFailed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.pipeline.Errs = []error{resumeparser.ErrNoJSON()}

	_, err := f.svc.Upload(ctx, pdfUpload(false))
	require.Error(t, err)

	page, err := f.repo.List(ctx, "u1", kernel.PaginationOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, resume.ResumeStatusFailed, page.Items[0].Status)
	assert.NotEmpty(t, page.Items[0].ErrorMessage)
}

func TestUpload_AsyncThenProcess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.Upload(ctx, pdfUpload(true))
	require.NoError(t, err)
	require.NotEmpty(t, resp.JobID)
	assert.Zero(t, f.pipeline.Calls)
	require.Len(t, f.queue.Ready, 1)

	status, err := f.svc.GetJobStatus(ctx, kernel.ProcessingJobID(resp.JobID))
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusPending, status.Status)

	job, err := f.queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NoError(t, f.svc.ProcessResumeJob(ctx, job))

	status, err = f.svc.GetJobStatus(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusCompleted, status.Status)
	assert.Equal(t, 100, status.Progress)
	assert.Equal(t, []resume.ProcessingStep{
		resume.StepExtracting, resume.StepStructuring, resume.StepEmbedding, resume.StepMatching,
	}, f.jobs.Steps)

	stored, err := f.repo.GetByID(ctx, resp.Resume.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsParsed())
}

func TestProcessResumeJob_TransientFailureRetries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.pipeline.Errs = []error{errors.New("connection reset")}

	resp, err := f.svc.Upload(ctx, pdfUpload(true))
	require.NoError(t, err)
	job, _ := f.queue.Dequeue(ctx, time.Second)

	err = f.svc.ProcessResumeJob(ctx, job)
	assert.True(t, errx.IsCode(err, resume.CodeJobFailed))

	require.Len(t, f.queue.Delayed, 1)
	assert.Equal(t, 2*time.Minute, f.queue.Delayed[0].Delay)
	assert.Equal(t, 1, f.queue.Delayed[0].Job.AttemptCount)

	status, err := f.svc.GetJobStatus(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusPending, status.Status)
	assert.NotNil(t, status.NextRetryAt)

	_, err = f.queue.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	retry, _ := f.queue.Dequeue(ctx, time.Second)
	require.NoError(t, f.svc.ProcessResumeJob(ctx, retry))

	stored, err := f.repo.GetByID(ctx, resp.Resume.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsParsed())
}

func TestProcessResumeJob_PermanentFailureIsNotRetried(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.pipeline.Errs = []error{docextract.ErrExtractionFailed()}

	_, err := f.svc.Upload(ctx, pdfUpload(true))
	require.NoError(t, err)
	job, _ := f.queue.Dequeue(ctx, time.Second)

	err = f.svc.ProcessResumeJob(ctx, job)
	assert.True(t, errx.IsCode(err, resume.CodeJobMaxRetriesReached))
	assert.Empty(t, f.queue.Delayed)

	status, err := f.svc.GetJobStatus(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusFailed, status.Status)
	require.NotNil(t, status.Error)
}

func TestProcessResumeJob_GivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	transient := errors.New("timeout")
	f.pipeline.Errs = []error{transient, transient, transient}

	_, err := f.svc.Upload(ctx, pdfUpload(true))
	require.NoError(t, err)

	var last error
	for i := 0; i < resume.DefaultMaxAttempts; i++ {
		_, _ = f.queue.MoveDelayedToReady(ctx)
		job, _ := f.queue.Dequeue(ctx, time.Second)
		require.NotNil(t, job)
		last = f.svc.ProcessResumeJob(ctx, job)
	}

	assert.True(t, errx.IsCode(last, resume.CodeJobMaxRetriesReached))
	assert.Equal(t, resume.DefaultMaxAttempts, f.pipeline.Calls)
	assert.Empty(t, f.queue.Delayed)
}

func TestRetryFailedJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.pipeline.Errs = []error{docextract.ErrUnsupportedFormat()}

	resp, err := f.svc.Upload(ctx, pdfUpload(true))
	require.NoError(t, err)
	job, _ := f.queue.Dequeue(ctx, time.Second)
	_ = f.svc.ProcessResumeJob(ctx, job)

	status, err := f.svc.RetryFailedJob(ctx, kernel.ProcessingJobID(resp.JobID))
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusPending, status.Status)
	assert.Len(t, f.queue.Ready, 1)

	_, err = f.svc.RetryFailedJob(ctx, kernel.ProcessingJobID(resp.JobID))
	assert.True(t, errx.IsCode(err, resume.CodeInvalidJobStatus))
}

func TestDeleteResume(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.Upload(ctx, pdfUpload(false))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteResume(ctx, resp.Resume.ID))
	assert.Equal(t, []kernel.ResumeID{resp.Resume.ID}, f.pipeline.Removed)

	_, err = f.svc.GetResume(ctx, resp.Resume.ID)
	assert.True(t, errx.IsCode(err, resume.CodeResumeNotFound))

	exists, err := f.files.Exists(ctx, resp.Resume.FileURL)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestResumeText(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	queued, err := f.svc.Upload(ctx, pdfUpload(true))
	require.NoError(t, err)
	_, err = f.svc.ResumeText(ctx, queued.Resume.ID)
	assert.True(t, errx.IsCode(err, resume.CodeResumeNotParsed))

	parsed, err := f.svc.Upload(ctx, pdfUpload(false))
	require.NoError(t, err)
	text, err := f.svc.ResumeText(ctx, parsed.Resume.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "Go")
}
