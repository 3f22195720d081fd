package notification

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error

	GetByID(ctx context.Context, id kernel.NotificationID) (*Notification, error)

	// Update persists the read state
	Update(ctx context.Context, n *Notification) error

	// ListByRecipient returns a user's notifications, newest first
	ListByRecipient(ctx context.Context, req ListNotificationsRequest) (*kernel.Paginated[Notification], error)
}
