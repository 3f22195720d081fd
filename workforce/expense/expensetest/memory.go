// Package expensetest provides an in-memory expense repository for tests.
package expensetest

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/expense"
)

type Repo struct {
	mu    sync.Mutex
	items map[kernel.ExpenseID]expense.Expense
}

var _ expense.Repository = (*Repo)(nil)

func NewRepo() *Repo {
	return &Repo{items: map[kernel.ExpenseID]expense.Expense{}}
}

// Put stores an expense as is
func (m *Repo) Put(e expense.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[e.ID] = e
}

func (m *Repo) Create(ctx context.Context, e *expense.Expense) error {
	m.Put(*e)
	return nil
}

func (m *Repo) Update(ctx context.Context, e *expense.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[e.ID]; !ok {
		return expense.ErrExpenseNotFound()
	}
	m.items[e.ID] = *e
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id kernel.ExpenseID) (*expense.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		return nil, expense.ErrExpenseNotFound().WithDetail("expense_id", id.String())
	}
	return &e, nil
}

func (m *Repo) Delete(ctx context.Context, id kernel.ExpenseID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return expense.ErrExpenseNotFound()
	}
	delete(m.items, id)
	return nil
}

func (m *Repo) filtered(userID kernel.UserID, status expense.Status) []expense.Expense {
	out := []expense.Expense{}
	for _, e := range m.items {
		if !userID.IsEmpty() && e.UserID != userID {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Repo) List(ctx context.Context, req expense.ListExpensesRequest) (*kernel.Paginated[expense.Expense], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.filtered(req.UserID, req.Status)

	p := req.Pagination.Normalize()
	start := min(p.Offset(), len(all))
	end := min(start+p.PageSize, len(all))
	return kernel.NewPaginated(all[start:end], p, len(all)), nil
}

func (m *Repo) TotalsByStatus(ctx context.Context, userID kernel.UserID) ([]expense.StatusTotal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byStatus := map[expense.Status]*expense.StatusTotal{}
	for _, e := range m.filtered(userID, "") {
		t, ok := byStatus[e.Status]
		if !ok {
			t = &expense.StatusTotal{Status: e.Status}
			byStatus[e.Status] = t
		}
		t.Count++
		t.Amount += e.Total
	}
	out := make([]expense.StatusTotal, 0, len(byStatus))
	for _, t := range byStatus {
		out = append(out, *t)
	}
	return out, nil
}

func (m *Repo) TotalsByCategory(ctx context.Context, userID kernel.UserID) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]float64{}
	for _, e := range m.filtered(userID, "") {
		for _, it := range e.Items {
			out[expense.NormalizeCategory(it.Category)] += it.Amount
		}
	}
	return out, nil
}
