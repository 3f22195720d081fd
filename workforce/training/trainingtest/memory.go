// Package trainingtest provides in-memory training repositories for tests.
package trainingtest

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/training"
)

type TrainingRepo struct {
	mu    sync.Mutex
	items map[kernel.TrainingID]training.Training
}

func NewTrainingRepo() *TrainingRepo {
	return &TrainingRepo{items: map[kernel.TrainingID]training.Training{}}
}

func (m *TrainingRepo) Create(ctx context.Context, t *training.Training) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[t.ID] = *t
	return nil
}

func (m *TrainingRepo) Update(ctx context.Context, t *training.Training) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[t.ID]; !ok {
		return training.ErrTrainingNotFound()
	}
	m.items[t.ID] = *t
	return nil
}

func (m *TrainingRepo) GetByID(ctx context.Context, id kernel.TrainingID) (*training.Training, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.items[id]
	if !ok {
		return nil, training.ErrTrainingNotFound()
	}
	return &t, nil
}

func (m *TrainingRepo) Delete(ctx context.Context, id kernel.TrainingID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return training.ErrTrainingNotFound()
	}
	delete(m.items, id)
	return nil
}

func (m *TrainingRepo) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[training.Training], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]training.Training, 0, len(m.items))
	for _, t := range m.items {
		items = append(items, t)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return kernel.NewPaginated(items, pagination, len(items)), nil
}

type CourseRepo struct {
	mu    sync.Mutex
	items map[kernel.CourseID]training.Course
}

func NewCourseRepo() *CourseRepo {
	return &CourseRepo{items: map[kernel.CourseID]training.Course{}}
}

// Put stores a course as is
func (m *CourseRepo) Put(c training.Course) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[c.ID] = c
}

func (m *CourseRepo) Create(ctx context.Context, c *training.Course) error {
	m.Put(*c)
	return nil
}

func (m *CourseRepo) GetByID(ctx context.Context, id kernel.CourseID) (*training.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, training.ErrCourseNotFound()
	}
	return &c, nil
}

func (m *CourseRepo) ListByTraining(ctx context.Context, trainingID kernel.TrainingID) ([]training.Course, error) {
	all, _ := m.ListAll(ctx)
	out := []training.Course{}
	for _, c := range all {
		if c.TrainingID == trainingID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *CourseRepo) ListAll(ctx context.Context) ([]training.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]training.Course, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type EnrollmentRepo struct {
	mu    sync.Mutex
	items map[kernel.EnrollmentID]training.Enrollment
}

func NewEnrollmentRepo() *EnrollmentRepo {
	return &EnrollmentRepo{items: map[kernel.EnrollmentID]training.Enrollment{}}
}

func (m *EnrollmentRepo) Create(ctx context.Context, e *training.Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return training.ErrAlreadyEnrolled()
		}
	}
	m.items[e.ID] = *e
	return nil
}

func (m *EnrollmentRepo) Update(ctx context.Context, e *training.Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[e.ID]; !ok {
		return training.ErrEnrollmentNotFound()
	}
	m.items[e.ID] = *e
	return nil
}

func (m *EnrollmentRepo) GetByID(ctx context.Context, id kernel.EnrollmentID) (*training.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		return nil, training.ErrEnrollmentNotFound()
	}
	return &e, nil
}

func (m *EnrollmentRepo) ExistsByUserAndCourse(ctx context.Context, userID kernel.UserID, courseID kernel.CourseID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.UserID == userID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *EnrollmentRepo) ListByUser(ctx context.Context, userID kernel.UserID) ([]training.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []training.Enrollment{}
	for _, e := range m.items {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
