package interviewsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/application"
	"github.com/Abraxas-365/peoplehub/recruitment/interview"
	"github.com/Abraxas-365/peoplehub/workforce/notification"
)

// Applications is the part of the application service interviews drive
type Applications interface {
	GetApplication(ctx context.Context, id kernel.ApplicationID) (*application.Application, error)
	AdvanceToInterviewing(ctx context.Context, id kernel.ApplicationID) (*application.Application, error)
}

// Notifier sends best-effort notifications
type Notifier interface {
	NotifyQuietly(ctx context.Context, recipient kernel.UserID, kind notification.Kind, message string)
}

// Actor is the caller of a mutating operation
type Actor struct {
	UserID kernel.UserID
	// CanManageAll lets the actor act on interviews assigned to others
	CanManageAll bool
}

type InterviewService struct {
	repo         interview.Repository
	userRepo     user.Repository
	applications Applications
	notifier     Notifier
	now          func() time.Time
}

func NewInterviewService(
	repo interview.Repository,
	userRepo user.Repository,
	applications Applications,
	notifier Notifier,
) *InterviewService {
	return &InterviewService{
		repo:         repo,
		userRepo:     userRepo,
		applications: applications,
		notifier:     notifier,
		now:          time.Now,
	}
}

// ScheduleInterview books an interview, moves the application to
// interviewing and notifies the candidate and the interviewer
func (s *InterviewService) ScheduleInterview(ctx context.Context, req interview.ScheduleInterviewRequest) (*interview.Interview, error) {
	if req.ApplicationID.IsEmpty() || req.InterviewerID.IsEmpty() || req.ScheduledAt.IsZero() {
		return nil, interview.ErrInvalidRequest().
			WithDetail("required", []string{"application_id", "interviewer_id", "scheduled_at"})
	}
	if !req.ScheduledAt.After(s.now()) {
		return nil, interview.ErrInvalidSchedule().WithDetail("scheduled_at", req.ScheduledAt)
	}

	interviewer, err := s.userRepo.GetByID(ctx, req.InterviewerID)
	if err != nil {
		return nil, err
	}
	if !interviewer.IsActive() {
		return nil, interview.ErrInvalidRequest().WithDetail("interviewer_id", req.InterviewerID.String())
	}

	app, err := s.applications.AdvanceToInterviewing(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	iv := &interview.Interview{
		ID:            kernel.NewInterviewID(uuid.NewString()),
		ApplicationID: req.ApplicationID,
		InterviewerID: req.InterviewerID,
		ScheduledAt:   req.ScheduledAt.UTC(),
		Status:        interview.InterviewStatusScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, iv); err != nil {
		return nil, errx.Wrap(err, "failed to create interview", errx.TypeInternal)
	}

	when := iv.ScheduledAt.Format(time.RFC1123)
	s.notifier.NotifyQuietly(ctx, app.CandidateID, notification.KindInterviewScheduled,
		fmt.Sprintf("Your interview for application %s is scheduled for %s", app.ID, when))
	s.notifier.NotifyQuietly(ctx, req.InterviewerID, notification.KindInterviewScheduled,
		fmt.Sprintf("You are interviewing for application %s on %s", app.ID, when))

	return iv, nil
}

func (s *InterviewService) GetInterview(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByApplication returns every interview of an existing application
func (s *InterviewService) ListByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]interview.Interview, error) {
	if _, err := s.applications.GetApplication(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.repo.ListByApplication(ctx, applicationID)
}

// SubmitFeedback completes an interview. Only its interviewer may do so
// unless the actor manages all interviews.
func (s *InterviewService) SubmitFeedback(ctx context.Context, id kernel.InterviewID, req interview.FeedbackRequest, actor Actor) (*interview.Interview, error) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageAll && iv.InterviewerID != actor.UserID {
		return nil, interview.ErrInsufficientPermissions().WithDetail("interview_id", id.String())
	}

	if err := iv.Complete(req.Feedback, req.Rating); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, iv); err != nil {
		return nil, errx.Wrap(err, "failed to save interview feedback", errx.TypeInternal)
	}
	return iv, nil
}

// CancelInterview calls off a scheduled interview and tells the candidate
func (s *InterviewService) CancelInterview(ctx context.Context, id kernel.InterviewID, req interview.CancelInterviewRequest) (*interview.Interview, error) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := iv.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, iv); err != nil {
		return nil, errx.Wrap(err, "failed to cancel interview", errx.TypeInternal)
	}

	if app, err := s.applications.GetApplication(ctx, iv.ApplicationID); err == nil {
		s.notifier.NotifyQuietly(ctx, app.CandidateID, notification.KindInterviewCancelled,
			fmt.Sprintf("Your interview on %s was cancelled", iv.ScheduledAt.Format(time.RFC1123)))
	}
	return iv, nil
}
