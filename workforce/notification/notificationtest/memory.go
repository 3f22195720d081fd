// Package notificationtest provides an in-memory notification repository for tests.
package notificationtest

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/notification"
)

type Repo struct {
	mu    sync.Mutex
	items map[kernel.NotificationID]notification.Notification
}

func NewRepo() *Repo {
	return &Repo{items: map[kernel.NotificationID]notification.Notification{}}
}

func (m *Repo) Create(ctx context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[n.ID] = *n
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id kernel.NotificationID) (*notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.items[id]
	if !ok {
		return nil, notification.ErrNotificationNotFound()
	}
	return &n, nil
}

func (m *Repo) Update(ctx context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[n.ID]; !ok {
		return notification.ErrNotificationNotFound()
	}
	m.items[n.ID] = *n
	return nil
}

func (m *Repo) ListByRecipient(ctx context.Context, req notification.ListNotificationsRequest) (*kernel.Paginated[notification.Notification], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []notification.Notification{}
	for _, n := range m.items {
		if n.RecipientID != req.RecipientID || (req.UnreadOnly && n.Read) {
			continue
		}
		items = append(items, n)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return kernel.NewPaginated(items, req.Pagination, len(items)), nil
}

// For returns every notification sent to recipient
func (m *Repo) For(recipient kernel.UserID) []notification.Notification {
	page, _ := m.ListByRecipient(context.Background(), notification.ListNotificationsRequest{RecipientID: recipient})
	return page.Items
}
