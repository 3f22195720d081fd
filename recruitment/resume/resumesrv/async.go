package resumesrv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/matching"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

// enqueue records a processing job for r and pushes it onto the queue
func (s *Service) enqueue(ctx context.Context, r *resume.Resume) (*resume.ProcessingJob, error) {
	job := &resume.ProcessingJob{
		ID:          kernel.NewProcessingJobID(uuid.NewString()),
		ResumeID:    r.ID,
		OwnerID:     r.OwnerID,
		Status:      resume.JobStatusPending,
		FilePath:    r.FileURL,
		FileType:    r.FileType,
		Provider:    r.Provider,
		MaxAttempts: resume.DefaultMaxAttempts,
		CreatedAt:   time.Now(),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, resume.ErrJobCreationFailed().
			WithCause(err).
			WithDetail("resume_id", r.ID)
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		_ = s.jobRepo.MarkAsFailed(ctx, job.ID, "failed to enqueue", map[string]any{
			"error": err.Error(),
		})
		return nil, resume.ErrQueueEnqueueFailed().
			WithCause(err).
			WithDetail("job_id", job.ID)
	}

	logx.Infof("Job queued successfully: JobID=%s, ResumeID=%s", job.ID, r.ID)
	return job, nil
}

// ProcessResumeJob runs one attempt of a queued job. Failures are retried
// through the delayed queue unless they are permanent.
func (s *Service) ProcessResumeJob(ctx context.Context, job *resume.ProcessingJob) error {
	logx.Infof("Processing job: JobID=%s, Attempt=%d/%d", job.ID, job.AttemptCount+1, job.MaxAttempts)

	if err := s.jobRepo.MarkAsProcessing(ctx, job.ID); err != nil {
		if ctx.Err() != nil {
			return s.requeueInterrupted(ctx, job, err)
		}
		return errx.Wrap(err, "failed to mark job as processing", errx.TypeInternal)
	}

	r, err := s.repo.GetByID(ctx, job.ResumeID)
	if err != nil {
		// the resume was deleted while queued
		if errx.IsCode(err, resume.CodeResumeNotFound) {
			_ = s.jobRepo.MarkAsFailed(ctx, job.ID, "resume not found", nil)
			return err
		}
		return s.handleJobError(ctx, job, err)
	}

	onStage := func(stage matching.Stage) {
		if err := s.jobRepo.UpdateProgress(ctx, job.ID, resume.ProcessingStep(stage), stage.Progress()); err != nil {
			logx.Warnf("failed to update progress of job %s: %v", job.ID, err)
		}
	}

	if _, err := s.process(ctx, r, 0, onStage); err != nil {
		return s.handleJobError(ctx, job, err)
	}

	if err := s.jobRepo.MarkAsCompleted(ctx, job.ID); err != nil {
		// the resume itself is stored, so the job outcome is not lost
		logx.Errorf("Failed to mark job as completed: %v", err)
	}

	logx.Infof("Job completed successfully: JobID=%s, ResumeID=%s", job.ID, r.ID)
	return nil
}

// requeueInterrupted puts a job cut short by shutdown back on the ready queue
// without spending an attempt
func (s *Service) requeueInterrupted(ctx context.Context, job *resume.ProcessingJob, cause error) error {
	ctx = context.WithoutCancel(ctx)

	job.Status = resume.JobStatusPending
	job.CurrentStep = nil
	job.ProgressPercentage = 0
	job.StartedAt = nil

	if err := s.jobRepo.Update(ctx, job); err != nil {
		logx.Errorf("Failed to reset interrupted job %s: %v", job.ID, err)
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		logx.Errorf("Failed to requeue interrupted job %s: %v", job.ID, err)
		_ = s.jobRepo.MarkAsFailed(ctx, job.ID, "requeue after shutdown failed", map[string]any{
			"error": err.Error(),
		})
		return errx.Wrap(err, "failed to requeue interrupted job", errx.TypeInternal)
	}

	logx.Warnf("Job interrupted, requeued: JobID=%s, Attempt=%d/%d", job.ID, job.AttemptCount, job.MaxAttempts)
	return cause
}

// handleJobError schedules a retry after 2^attempt minutes or marks the job failed.
// Bookkeeping outlives ctx so a cancelled worker still records the outcome.
func (s *Service) handleJobError(ctx context.Context, job *resume.ProcessingJob, err error) error {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return s.requeueInterrupted(ctx, job, err)
	}
	ctx = context.WithoutCancel(ctx)

	job.AttemptCount++

	errorDetails := map[string]any{
		"error":        err.Error(),
		"attempt":      job.AttemptCount,
		"max_attempts": job.MaxAttempts,
		"file_path":    job.FilePath,
	}
	if e, ok := errx.As(err); ok {
		errorDetails["code"] = e.Code
	}

	permanent := matching.IsPermanent(err)
	if !permanent && job.CanRetry() {
		retryDelay := job.RetryDelay()
		nextRetry := time.Now().Add(retryDelay)
		job.NextRetryAt = &nextRetry
		job.Status = resume.JobStatusPending
		job.ErrorMessage = fmt.Sprintf("%s (will retry)", err.Error())
		job.ErrorDetails = errorDetails

		logx.Warnf("Job failed, will retry: JobID=%s, Attempt=%d/%d, NextRetry=%v, Error=%v",
			job.ID, job.AttemptCount, job.MaxAttempts, nextRetry, err)

		if updateErr := s.jobRepo.Update(ctx, job); updateErr != nil {
			logx.Errorf("Failed to update job for retry: %v", updateErr)
		}

		if queueErr := s.queue.EnqueueDelayed(ctx, job, retryDelay); queueErr != nil {
			logx.Errorf("Failed to enqueue for retry: %v", queueErr)
			_ = s.jobRepo.MarkAsFailed(ctx, job.ID, "retry enqueue failed", errorDetails)
			return queueErr
		}

		return resume.ErrJobFailed().
			WithCause(err).
			WithDetail("job_id", job.ID).
			WithDetail("will_retry", true).
			WithDetail("next_retry_at", nextRetry)
	}

	errorDetails["permanent"] = permanent
	logx.Errorf("Job permanently failed: JobID=%s, Attempts=%d/%d, Error=%v",
		job.ID, job.AttemptCount, job.MaxAttempts, err)

	if markErr := s.jobRepo.MarkAsFailed(ctx, job.ID, err.Error(), errorDetails); markErr != nil {
		logx.Errorf("Failed to mark job as failed: %v", markErr)
	}

	return resume.ErrJobMaxRetriesReached().
		WithCause(err).
		WithDetail("job_id", job.ID).
		WithDetail("final_attempt", job.AttemptCount)
}

// GetJobStatus retrieves the current status of a job
func (s *Service) GetJobStatus(ctx context.Context, jobID kernel.ProcessingJobID) (*resume.JobStatusResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	response := &resume.JobStatusResponse{
		JobID:        job.ID,
		ResumeID:     job.ResumeID,
		Status:       job.Status,
		Progress:     job.ProgressPercentage,
		CurrentStep:  job.CurrentStep,
		AttemptCount: job.AttemptCount,
		CreatedAt:    job.CreatedAt,
		StartedAt:    job.StartedAt,
	}

	switch job.Status {
	case resume.JobStatusPending:
		if job.AttemptCount > 0 {
			response.Message = fmt.Sprintf("Job pending retry (attempt %d/%d)", job.AttemptCount, job.MaxAttempts)
			response.NextRetryAt = job.NextRetryAt
		} else {
			response.Message = "Job queued and waiting to be processed"
		}

	case resume.JobStatusProcessing:
		step := "starting"
		if job.CurrentStep != nil {
			step = string(*job.CurrentStep)
		}
		response.Message = "Processing resume: " + step

	case resume.JobStatusCompleted:
		response.Message = "Resume processed successfully"
		response.CompletedAt = job.CompletedAt

	case resume.JobStatusFailed:
		response.Message = job.ErrorMessage
		response.Error = &resume.JobError{
			Message: job.ErrorMessage,
			Details: job.ErrorDetails,
		}
		response.FailedAt = job.FailedAt
	}

	return response, nil
}

// RetryFailedJob manually requeues a failed job with a fresh attempt budget
func (s *Service) RetryFailedJob(ctx context.Context, jobID kernel.ProcessingJobID) (*resume.JobStatusResponse, error) {
	if s.queue == nil {
		return nil, resume.ErrQueueEnqueueFailed().WithDetail("reason", "async processing is not configured")
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != resume.JobStatusFailed {
		return nil, resume.ErrInvalidJobStatus().
			WithDetail("job_id", jobID).
			WithDetail("current_status", job.Status).
			WithDetail("required_status", resume.JobStatusFailed)
	}

	job.Status = resume.JobStatusPending
	job.AttemptCount = 0
	job.ErrorMessage = ""
	job.ErrorDetails = nil
	job.FailedAt = nil
	job.NextRetryAt = nil
	job.ProgressPercentage = 0
	job.CurrentStep = nil

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, errx.Wrap(err, "failed to reset job", errx.TypeInternal)
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		_ = s.jobRepo.MarkAsFailed(ctx, jobID, "failed to re-enqueue", map[string]any{
			"error": err.Error(),
		})
		return nil, resume.ErrQueueEnqueueFailed().
			WithCause(err).
			WithDetail("job_id", jobID)
	}

	logx.Infof("Job manually retried: JobID=%s", jobID)

	return &resume.JobStatusResponse{
		JobID:     jobID,
		ResumeID:  job.ResumeID,
		Status:    resume.JobStatusPending,
		Message:   "Job requeued for processing",
		CreatedAt: job.CreatedAt,
	}, nil
}

// JobOwner returns the owner of the resume a job processes
func (s *Service) JobOwner(ctx context.Context, jobID kernel.ProcessingJobID) (kernel.UserID, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return "", err
	}
	return job.OwnerID, nil
}
