// Package applicationtest provides an in-memory application repository for tests.
package applicationtest

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/application"
)

type Repo struct {
	mu    sync.Mutex
	items map[kernel.ApplicationID]application.Application
}

func NewRepo() *Repo {
	return &Repo{items: map[kernel.ApplicationID]application.Application{}}
}

// Put stores a as-is, bypassing the service
func (m *Repo) Put(a application.Application) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[a.ID] = a
}

func (m *Repo) Create(ctx context.Context, a *application.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.JobID == a.JobID && existing.CandidateID == a.CandidateID {
			return application.ErrApplicationAlreadyExists()
		}
	}
	m.items[a.ID] = *a
	return nil
}

func (m *Repo) Update(ctx context.Context, id kernel.ApplicationID, a *application.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return application.ErrApplicationNotFound()
	}
	m.items[id] = *a
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return &a, nil
}

func (m *Repo) ExistsByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.UserID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.JobID == jobID && a.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Repo) List(ctx context.Context, req application.ListApplicationsRequest) (*kernel.Paginated[application.Application], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []application.Application{}
	for _, a := range m.items {
		if !req.CandidateID.IsEmpty() && a.CandidateID != req.CandidateID {
			continue
		}
		if !req.JobID.IsEmpty() && a.JobID != req.JobID {
			continue
		}
		if req.Status != "" && a.Status != req.Status {
			continue
		}
		items = append(items, a)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return kernel.NewPaginated(items, req.Pagination, len(items)), nil
}
