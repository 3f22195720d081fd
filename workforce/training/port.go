package training

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type TrainingRepository interface {
	Create(ctx context.Context, t *Training) error
	Update(ctx context.Context, t *Training) error
	GetByID(ctx context.Context, id kernel.TrainingID) (*Training, error)
	// Delete removes a training with its courses and enrollments
	Delete(ctx context.Context, id kernel.TrainingID) error
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Training], error)
}

type CourseRepository interface {
	Create(ctx context.Context, c *Course) error
	GetByID(ctx context.Context, id kernel.CourseID) (*Course, error)
	ListByTraining(ctx context.Context, trainingID kernel.TrainingID) ([]Course, error)
	// ListAll returns the whole course catalogue
	ListAll(ctx context.Context) ([]Course, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, e *Enrollment) error
	Update(ctx context.Context, e *Enrollment) error
	GetByID(ctx context.Context, id kernel.EnrollmentID) (*Enrollment, error)
	ExistsByUserAndCourse(ctx context.Context, userID kernel.UserID, courseID kernel.CourseID) (bool, error)
	ListByUser(ctx context.Context, userID kernel.UserID) ([]Enrollment, error)
}
