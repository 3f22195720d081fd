package applicationsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/application"
	"github.com/Abraxas-365/peoplehub/recruitment/job"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

// JobLookup returns jobs that accept applications
type JobLookup interface {
	RequireActive(ctx context.Context, jobID kernel.JobID) (*job.Job, error)
}

// ResumeLookup loads resume records
type ResumeLookup interface {
	GetResume(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error)
}

// Scorer compares an indexed resume against an indexed job post
type Scorer interface {
	ScoreResumeForJob(ctx context.Context, resumeID kernel.ResumeID, jobID kernel.JobID) (*float64, error)
}

// Actor is the caller of an application operation
type Actor struct {
	UserID kernel.UserID
	// CanReview lets the actor see every application and move it through the pipeline
	CanReview bool
}

// ApplicationService provides business operations for applications
type ApplicationService struct {
	applicationRepo application.Repository
	userRepo        user.Repository
	jobs            JobLookup
	resumes         ResumeLookup
	scorer          Scorer
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	applicationRepo application.Repository,
	userRepo user.Repository,
	jobs JobLookup,
	resumes ResumeLookup,
	scorer Scorer,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		jobs:            jobs,
		resumes:         resumes,
		scorer:          scorer,
	}
}

// CreateApplication files an application and scores the resume against the job
func (s *ApplicationService) CreateApplication(ctx context.Context, req application.CreateApplicationRequest, actor Actor) (*application.Application, error) {
	if req.CandidateID.IsEmpty() || req.JobID.IsEmpty() || req.ResumeID.IsEmpty() {
		return nil, application.ErrInvalidRequest().
			WithDetail("required", []string{"candidate_id", "job_id", "resume_id"})
	}
	if !actor.CanReview && req.CandidateID != actor.UserID {
		return nil, application.ErrInsufficientPermissions().WithDetail("candidate_id", req.CandidateID.String())
	}

	candidate, err := s.userRepo.GetByID(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if !candidate.IsActive() {
		return nil, application.ErrInsufficientPermissions().WithDetail("candidate_id", req.CandidateID.String())
	}

	if _, err := s.jobs.RequireActive(ctx, req.JobID); err != nil {
		return nil, err
	}

	r, err := s.resumes.GetResume(ctx, req.ResumeID)
	if err != nil {
		return nil, err
	}
	if !r.BelongsTo(req.CandidateID) {
		return nil, application.ErrResumeNotOwned().
			WithDetail("resume_id", req.ResumeID.String()).
			WithDetail("candidate_id", req.CandidateID.String())
	}

	// Business rule: Check for duplicate application
	exists, err := s.applicationRepo.ExistsByJobAndCandidate(ctx, req.JobID, req.CandidateID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check duplicate application", errx.TypeInternal)
	}
	if exists {
		return nil, application.ErrApplicationAlreadyExists().
			WithDetail("job_id", req.JobID.String()).
			WithDetail("candidate_id", req.CandidateID.String())
	}

	now := time.Now()
	newApplication := &application.Application{
		ID:          kernel.NewApplicationID(uuid.NewString()),
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		ResumeID:    req.ResumeID,
		Status:      application.ApplicationStatusApplied,
		Score:       s.score(ctx, req.ResumeID, req.JobID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.applicationRepo.Create(ctx, newApplication); err != nil {
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}

	return newApplication, nil
}

// GetApplication retrieves an application by ID without an access check
func (s *ApplicationService) GetApplication(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	return s.applicationRepo.GetByID(ctx, id)
}

// GetApplicationFor retrieves an application visible to actor
func (s *ApplicationService) GetApplicationFor(ctx context.Context, id kernel.ApplicationID, actor Actor) (*application.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanReview && !app.BelongsTo(actor.UserID) {
		return nil, application.ErrInsufficientPermissions().WithDetail("application_id", id.String())
	}
	return app, nil
}

// ListApplications lists applications. Non-reviewers only see their own.
func (s *ApplicationService) ListApplications(ctx context.Context, req application.ListApplicationsRequest, actor Actor) (*kernel.Paginated[application.Application], error) {
	if req.Status != "" && !req.Status.IsValid() {
		return nil, application.ErrInvalidStatus().WithDetail("status", req.Status)
	}
	if !actor.CanReview {
		if !req.CandidateID.IsEmpty() && req.CandidateID != actor.UserID {
			return nil, application.ErrInsufficientPermissions().WithDetail("candidate_id", req.CandidateID.String())
		}
		req.CandidateID = actor.UserID
	}
	return s.applicationRepo.List(ctx, req)
}

// UpdateStatus moves an application through the pipeline. Candidates may only withdraw.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id kernel.ApplicationID, status application.ApplicationStatus, actor Actor) (*application.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanReview {
		if !app.BelongsTo(actor.UserID) || status != application.ApplicationStatusWithdrawn {
			return nil, application.ErrInsufficientPermissions().
				WithDetail("application_id", id.String()).
				WithDetail("status", status)
		}
	}

	if err := app.UpdateStatus(status); err != nil {
		return nil, err
	}
	if err := s.applicationRepo.Update(ctx, id, app); err != nil {
		return nil, errx.Wrap(err, "failed to update application status", errx.TypeInternal)
	}

	logx.Infof("application %s moved to %s", id, status)
	return app, nil
}

// AdvanceToInterviewing moves an application into interviewing when it is
// still earlier in the pipeline
func (s *ApplicationService) AdvanceToInterviewing(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.IsActive() {
		return nil, application.ErrInvalidStatusTransition().
			WithDetail("current_status", app.Status).
			WithDetail("new_status", application.ApplicationStatusInterviewing)
	}

	switch app.Status {
	case application.ApplicationStatusApplied:
		if err := app.UpdateStatus(application.ApplicationStatusScreening); err != nil {
			return nil, err
		}
		fallthrough
	case application.ApplicationStatusScreening:
		if err := app.UpdateStatus(application.ApplicationStatusInterviewing); err != nil {
			return nil, err
		}
	default:
		return app, nil
	}

	if err := s.applicationRepo.Update(ctx, id, app); err != nil {
		return nil, errx.Wrap(err, "failed to update application status", errx.TypeInternal)
	}
	return app, nil
}

// RescoreApplication recomputes the score after the resume or job was re-indexed
func (s *ApplicationService) RescoreApplication(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	app.Score = s.score(ctx, app.ResumeID, app.JobID)
	app.UpdatedAt = time.Now()
	if err := s.applicationRepo.Update(ctx, id, app); err != nil {
		return nil, errx.Wrap(err, "failed to update application score", errx.TypeInternal)
	}
	return app, nil
}

// score is best effort; an application is never refused because matching is down
func (s *ApplicationService) score(ctx context.Context, resumeID kernel.ResumeID, jobID kernel.JobID) *float64 {
	score, err := s.scorer.ScoreResumeForJob(ctx, resumeID, jobID)
	if err != nil {
		logx.Warnf("could not score resume %s for job %s: %v", resumeID, jobID, err)
		return nil
	}
	return score
}
