package trainingsrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/notification"
	"github.com/Abraxas-365/peoplehub/workforce/training"
)

// Notifier sends best-effort notifications
type Notifier interface {
	NotifyQuietly(ctx context.Context, recipient kernel.UserID, kind notification.Kind, message string)
}

// Actor is the caller of a mutating operation
type Actor struct {
	UserID kernel.UserID
	// CanManageAll lets the actor act on other users' enrollments
	CanManageAll bool
}

type TrainingService struct {
	trainings   training.TrainingRepository
	courses     training.CourseRepository
	enrollments training.EnrollmentRepository
	userRepo    user.Repository
	notifier    Notifier
}

func NewTrainingService(
	trainings training.TrainingRepository,
	courses training.CourseRepository,
	enrollments training.EnrollmentRepository,
	userRepo user.Repository,
	notifier Notifier,
) *TrainingService {
	return &TrainingService{
		trainings:   trainings,
		courses:     courses,
		enrollments: enrollments,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// ============================================================================
// Trainings
// ============================================================================

func (s *TrainingService) CreateTraining(ctx context.Context, req training.CreateTrainingRequest) (*training.Training, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, training.ErrInvalidTraining().WithDetail("field", "title")
	}

	now := time.Now()
	t := &training.Training{
		ID:          kernel.NewTrainingID(uuid.NewString()),
		Title:       title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !t.ValidDates() {
		return nil, training.ErrInvalidTraining().WithDetail("field", "end_date")
	}

	if err := s.trainings.Create(ctx, t); err != nil {
		return nil, errx.Wrap(err, "failed to create training", errx.TypeInternal)
	}
	return t, nil
}

func (s *TrainingService) GetTraining(ctx context.Context, id kernel.TrainingID) (*training.Training, error) {
	return s.trainings.GetByID(ctx, id)
}

func (s *TrainingService) UpdateTraining(ctx context.Context, id kernel.TrainingID, req training.UpdateTrainingRequest) (*training.Training, error) {
	t, err := s.trainings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, training.ErrInvalidTraining().WithDetail("field", "title")
		}
		t.Title = title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.StartDate != nil {
		t.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		t.EndDate = req.EndDate
	}
	if !t.ValidDates() {
		return nil, training.ErrInvalidTraining().WithDetail("field", "end_date")
	}
	t.UpdatedAt = time.Now()

	if err := s.trainings.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TrainingService) DeleteTraining(ctx context.Context, id kernel.TrainingID) error {
	return s.trainings.Delete(ctx, id)
}

func (s *TrainingService) ListTrainings(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[training.Training], error) {
	return s.trainings.List(ctx, pagination.Normalize())
}

// ============================================================================
// Courses
// ============================================================================

func (s *TrainingService) AddCourse(ctx context.Context, trainingID kernel.TrainingID, req training.AddCourseRequest) (*training.Course, error) {
	if _, err := s.trainings.GetByID(ctx, trainingID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, training.ErrInvalidTraining().WithDetail("field", "title")
	}
	if req.DurationMins < 0 {
		return nil, training.ErrInvalidTraining().WithDetail("field", "duration_mins")
	}

	c := &training.Course{
		ID:           kernel.NewCourseID(uuid.NewString()),
		TrainingID:   trainingID,
		Title:        title,
		ContentURL:   req.ContentURL,
		DurationMins: req.DurationMins,
		CreatedAt:    time.Now(),
	}
	if err := s.courses.Create(ctx, c); err != nil {
		return nil, errx.Wrap(err, "failed to create course", errx.TypeInternal)
	}
	return c, nil
}

func (s *TrainingService) ListCourses(ctx context.Context, trainingID kernel.TrainingID) ([]training.Course, error) {
	if _, err := s.trainings.GetByID(ctx, trainingID); err != nil {
		return nil, err
	}
	return s.courses.ListByTraining(ctx, trainingID)
}

// Catalogue returns every course offered, used for recommendations
func (s *TrainingService) Catalogue(ctx context.Context) ([]training.Course, error) {
	return s.courses.ListAll(ctx)
}

// ============================================================================
// Enrollments
// ============================================================================

// Enroll registers an active user in a course and notifies them
func (s *TrainingService) Enroll(ctx context.Context, courseID kernel.CourseID, req training.EnrollRequest, actor Actor) (*training.Enrollment, error) {
	if req.UserID.IsEmpty() {
		req.UserID = actor.UserID
	}
	if req.UserID != actor.UserID && !actor.CanManageAll {
		return nil, training.ErrInsufficientPermissions()
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, training.ErrInvalidTraining().WithDetail("user_id", req.UserID.String())
	}

	exists, err := s.enrollments.ExistsByUserAndCourse(ctx, req.UserID, courseID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check enrollment", errx.TypeInternal)
	}
	if exists {
		return nil, training.ErrAlreadyEnrolled().
			WithDetail("user_id", req.UserID.String()).
			WithDetail("course_id", courseID.String())
	}

	now := time.Now()
	e := &training.Enrollment{
		ID:         kernel.NewEnrollmentID(uuid.NewString()),
		UserID:     req.UserID,
		CourseID:   courseID,
		Status:     training.EnrollmentStatusEnrolled,
		EnrolledAt: now,
		UpdatedAt:  now,
	}
	if err := s.enrollments.Create(ctx, e); err != nil {
		return nil, err
	}

	s.notifier.NotifyQuietly(ctx, req.UserID, notification.KindEnrollment,
		fmt.Sprintf("You have been enrolled in %q", course.Title))

	return e, nil
}

// UpdateProgress records progress on the actor's own enrollment
func (s *TrainingService) UpdateProgress(ctx context.Context, id kernel.EnrollmentID, req training.UpdateProgressRequest, actor Actor) (*training.Enrollment, error) {
	if req.Progress == nil {
		return nil, training.ErrInvalidProgress()
	}

	e, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.UserID != actor.UserID && !actor.CanManageAll {
		return nil, training.ErrInsufficientPermissions()
	}

	if err := e.SetProgress(*req.Progress); err != nil {
		return nil, err
	}
	if err := s.enrollments.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *TrainingService) ListUserEnrollments(ctx context.Context, userID kernel.UserID) ([]training.Enrollment, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.enrollments.ListByUser(ctx, userID)
}
