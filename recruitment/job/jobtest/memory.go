// Package jobtest provides an in-memory job repository for tests.
package jobtest

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/job"
)

type JobRepo struct {
	mu   sync.Mutex
	jobs map[kernel.JobID]job.Job
}

func NewJobRepo() *JobRepo {
	return &JobRepo{jobs: map[kernel.JobID]job.Job{}}
}

// Put stores j as-is, bypassing the service
func (m *JobRepo) Put(j job.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = j
}

func (m *JobRepo) Create(ctx context.Context, j *job.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[j.ID]; ok {
		return job.ErrJobAlreadyExists()
	}
	m.jobs[j.ID] = *j
	return nil
}

func (m *JobRepo) Update(ctx context.Context, id kernel.JobID, j *job.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return job.ErrJobNotFound()
	}
	m.jobs[id] = *j
	return nil
}

func (m *JobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return &j, nil
}

func (m *JobRepo) Delete(ctx context.Context, id kernel.JobID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return job.ErrJobNotFound()
	}
	delete(m.jobs, id)
	return nil
}

func (m *JobRepo) Search(ctx context.Context, req job.SearchJobsRequest) (*kernel.Paginated[job.Job], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []job.Job{}
	for _, j := range m.jobs {
		if req.Status != "" && j.Status != req.Status {
			continue
		}
		if !req.PostedBy.IsEmpty() && j.PostedBy != req.PostedBy {
			continue
		}
		items = append(items, j)
	}
	sort.Slice(items, func(i, k int) bool { return items[i].ID < items[k].ID })
	return kernel.NewPaginated(items, req.Pagination, len(items)), nil
}

func (m *JobRepo) ListActive(ctx context.Context) ([]job.Job, error) {
	res, err := m.Search(ctx, job.SearchJobsRequest{Status: job.JobStatusActive, Pagination: kernel.PaginationOptions{PageSize: 100}})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}
