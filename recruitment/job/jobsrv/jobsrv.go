package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/job"
)

// JobService provides business operations for jobs
type JobService struct {
	jobRepo  job.Repository
	userRepo user.Repository
	indexer  job.Indexer
}

// NewJobService creates a new instance of the job service
func NewJobService(
	jobRepo job.Repository,
	userRepo user.Repository,
	indexer job.Indexer,
) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		indexer:  indexer,
	}
}

// Actor is the caller of a mutating operation
type Actor struct {
	UserID kernel.UserID
	// CanManageAll lets the actor change jobs posted by others
	CanManageAll bool
}

// CreateJob creates an active job posting and indexes it for matching
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.Job, error) {
	if strings.TrimSpace(string(req.Title)) == "" || strings.TrimSpace(string(req.Description)) == "" {
		return nil, job.ErrInvalidJob()
	}

	poster, err := s.userRepo.GetByID(ctx, req.PostedBy)
	if err != nil {
		return nil, err
	}
	if !poster.IsActive() {
		return nil, job.ErrInsufficientPermissions().WithDetail("user_id", req.PostedBy.String())
	}

	now := time.Now()
	newJob := &job.Job{
		ID:          kernel.NewJobID(uuid.NewString()),
		Title:       kernel.JobTitle(strings.TrimSpace(string(req.Title))),
		Description: kernel.JobDescription(strings.TrimSpace(string(req.Description))),
		PostedBy:    req.PostedBy,
		Status:      job.JobStatusActive,
		CreatedAt:   now,
	}
	newJob.SetRequirements(req.Requirements)

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	s.index(ctx, newJob)
	return newJob, nil
}

// GetJob retrieves a job by ID
func (s *JobService) GetJob(ctx context.Context, jobID kernel.JobID) (*job.Job, error) {
	return s.jobRepo.GetByID(ctx, jobID)
}

// SearchJobs lists jobs by filters
func (s *JobService) SearchJobs(ctx context.Context, req job.SearchJobsRequest) (*kernel.Paginated[job.Job], error) {
	if req.Status != "" && !req.Status.IsValid() {
		return nil, errx.New("invalid job status", errx.TypeValidation).WithDetail("status", string(req.Status))
	}
	return s.jobRepo.Search(ctx, req)
}

// UpdateJob updates an existing job and re-indexes it
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, req job.UpdateJobRequest, actor Actor) (*job.Job, error) {
	jobEntity, err := s.authorizedJob(ctx, jobID, actor)
	if err != nil {
		return nil, err
	}
	if !jobEntity.CanBeEdited() {
		return nil, job.ErrJobArchived().WithDetail("job_id", jobID.String())
	}

	var title kernel.JobTitle
	var description kernel.JobDescription
	if req.Title != nil {
		title = kernel.JobTitle(strings.TrimSpace(string(*req.Title)))
	}
	if req.Description != nil {
		description = kernel.JobDescription(strings.TrimSpace(string(*req.Description)))
	}
	jobEntity.UpdateDetails(title, description)
	if req.Requirements != nil {
		jobEntity.SetRequirements(*req.Requirements)
	}

	if err := s.jobRepo.Update(ctx, jobID, jobEntity); err != nil {
		return nil, errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}

	s.index(ctx, jobEntity)
	return jobEntity, nil
}

// CloseJob stops a job from accepting applications. It stays matchable.
func (s *JobService) CloseJob(ctx context.Context, jobID kernel.JobID, actor Actor) (*job.Job, error) {
	jobEntity, err := s.authorizedJob(ctx, jobID, actor)
	if err != nil {
		return nil, err
	}
	if err := jobEntity.Close(); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Update(ctx, jobID, jobEntity); err != nil {
		return nil, errx.Wrap(err, "failed to close job", errx.TypeInternal)
	}
	return jobEntity, nil
}

// ArchiveJob archives a job and removes it from matching
func (s *JobService) ArchiveJob(ctx context.Context, jobID kernel.JobID, actor Actor) (*job.Job, error) {
	jobEntity, err := s.authorizedJob(ctx, jobID, actor)
	if err != nil {
		return nil, err
	}
	if err := jobEntity.Archive(); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Update(ctx, jobID, jobEntity); err != nil {
		return nil, errx.Wrap(err, "failed to archive job", errx.TypeInternal)
	}

	s.unindex(ctx, jobID)
	return jobEntity, nil
}

// DeleteJob deletes a job and removes it from matching
func (s *JobService) DeleteJob(ctx context.Context, jobID kernel.JobID, actor Actor) error {
	if _, err := s.authorizedJob(ctx, jobID, actor); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return err
	}

	s.unindex(ctx, jobID)
	return nil
}

// ReindexAll rebuilds the matching index from every active job
func (s *JobService) ReindexAll(ctx context.Context) (*job.ReindexResponse, error) {
	jobs, err := s.jobRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	resp := &job.ReindexResponse{Failed: map[kernel.JobID]string{}}
	for i := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.indexer.IndexJob(ctx, &jobs[i]); err != nil {
			resp.Failed[jobs[i].ID] = err.Error()
			continue
		}
		resp.Indexed++
	}
	return resp, nil
}

// RequireActive returns the job when it accepts applications
func (s *JobService) RequireActive(ctx context.Context, jobID kernel.JobID) (*job.Job, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !jobEntity.IsActive() {
		return nil, job.ErrJobNotActive().
			WithDetail("job_id", jobID.String()).
			WithDetail("status", string(jobEntity.Status))
	}
	return jobEntity, nil
}

func (s *JobService) authorizedJob(ctx context.Context, jobID kernel.JobID, actor Actor) (*job.Job, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageAll && jobEntity.PostedBy != actor.UserID {
		return nil, job.ErrUnauthorizedUpdate().WithDetail("job_id", jobID.String())
	}
	return jobEntity, nil
}

// the relational write is the source of truth; a failed index write is repaired by ReindexAll
func (s *JobService) index(ctx context.Context, j *job.Job) {
	if err := s.indexer.IndexJob(ctx, j); err != nil {
		logx.Warnf("job %s saved but not indexed: %v", j.ID, err)
	}
}

func (s *JobService) unindex(ctx context.Context, id kernel.JobID) {
	if err := s.indexer.RemoveJob(ctx, id); err != nil {
		logx.Warnf("job %s removed but still indexed: %v", id, err)
	}
}
