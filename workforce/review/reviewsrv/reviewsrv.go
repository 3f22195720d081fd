package reviewsrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/internal/ai/llm"
	"github.com/Abraxas-365/peoplehub/internal/ai/prompts"
	"github.com/Abraxas-365/peoplehub/internal/ai/resumeparser"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/workforce/review"
)

const notProvided = "(not provided)"

type Providers interface {
	Resolve(name string) (llm.Provider, error)
}

// Actor is the caller of a review operation
type Actor struct {
	UserID kernel.UserID
	// CanManage lets the actor write manager reviews and read anyone's reviews
	CanManage bool
}

type ReviewService struct {
	repo      review.Repository
	userRepo  user.Repository
	providers Providers
}

func NewReviewService(repo review.Repository, userRepo user.Repository, providers Providers) *ReviewService {
	return &ReviewService{
		repo:      repo,
		userRepo:  userRepo,
		providers: providers,
	}
}

// CreateReview records a review of an employee written by the actor. Self
// reviews are written by the employee, manager reviews by a manager and
// peer reviews by anyone else.
func (s *ReviewService) CreateReview(ctx context.Context, req review.CreateReviewRequest, actor Actor) (*review.Review, error) {
	if !req.Type.IsValid() {
		return nil, review.ErrInvalidReview().WithDetail("type", req.Type)
	}
	if req.Rating < review.MinRating || req.Rating > review.MaxRating {
		return nil, review.ErrInvalidRating().WithDetail("rating", req.Rating)
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, review.ErrInvalidReview().WithDetail("field", "text")
	}

	self := req.EmployeeID == actor.UserID
	switch req.Type {
	case review.TypeSelf:
		if !self {
			return nil, review.ErrInsufficientPermissions().WithDetail("type", req.Type)
		}
	case review.TypeManager:
		if self || !actor.CanManage {
			return nil, review.ErrInsufficientPermissions().WithDetail("type", req.Type)
		}
	case review.TypePeer:
		if self {
			return nil, review.ErrInvalidReview().WithDetail("reason", "peer reviews need another reviewer")
		}
	}

	if _, err := s.userRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	r := &review.Review{
		ID:         kernel.NewReviewID(uuid.NewString()),
		EmployeeID: req.EmployeeID,
		ReviewerID: actor.UserID,
		Type:       req.Type,
		Text:       text,
		Rating:     req.Rating,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, errx.Wrap(err, "failed to create review", errx.TypeInternal)
	}
	return r, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, employeeID kernel.UserID, reviewType review.Type, actor Actor) ([]review.Review, error) {
	if employeeID != actor.UserID && !actor.CanManage {
		return nil, review.ErrInsufficientPermissions()
	}
	if reviewType != "" && !reviewType.IsValid() {
		return nil, review.ErrInvalidReview().WithDetail("type", reviewType)
	}
	if _, err := s.userRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.repo.ListByEmployee(ctx, employeeID, reviewType)
}

// Summarize asks the model to digest the employee's latest self and manager
// reviews. At least one of them must exist.
func (s *ReviewService) Summarize(ctx context.Context, employeeID kernel.UserID, req review.SummarizeRequest, actor Actor) (*review.SummaryResponse, error) {
	if employeeID != actor.UserID && !actor.CanManage {
		return nil, review.ErrInsufficientPermissions()
	}

	provider, err := s.providers.Resolve(req.Provider)
	if err != nil {
		return nil, err
	}

	selfReview, err := s.repo.LatestByType(ctx, employeeID, review.TypeSelf)
	if err != nil {
		return nil, err
	}
	managerReview, err := s.repo.LatestByType(ctx, employeeID, review.TypeManager)
	if err != nil {
		return nil, err
	}
	if selfReview == nil && managerReview == nil {
		return nil, review.ErrNoReviews().WithDetail("employee_id", employeeID.String())
	}

	resp := &review.SummaryResponse{EmployeeID: employeeID, Provider: provider.Name()}
	selfText, managerText := notProvided, notProvided
	if selfReview != nil {
		selfText = selfReview.Text
		resp.SelfReviewID = &selfReview.ID
	}
	if managerReview != nil {
		managerText = managerReview.Text
		resp.ManagerReviewID = &managerReview.ID
	}

	raw, err := provider.Generate(ctx, prompts.PerformanceReview(selfText, managerText))
	if err != nil {
		return nil, err
	}
	logx.Debugf("Review summary reply for %s: %s", employeeID, logx.Truncate(raw, 200))

	if err := resumeparser.DecodeJSON(raw, &resp.Summary); err != nil {
		return nil, err
	}
	return resp, nil
}
