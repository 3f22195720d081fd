package notificationsrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/workforce/notification"
)

type NotificationService struct {
	repo     notification.Repository
	userRepo user.Repository
}

func NewNotificationService(repo notification.Repository, userRepo user.Repository) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo}
}

// Notify stores a notification for an existing user
func (s *NotificationService) Notify(ctx context.Context, req notification.NotifyRequest) (*notification.Notification, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, notification.ErrEmptyMessage()
	}
	if _, err := s.userRepo.GetByID(ctx, req.RecipientID); err != nil {
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = notification.KindGeneral
	}

	n := &notification.Notification{
		ID:          kernel.NewNotificationID(uuid.NewString()),
		RecipientID: req.RecipientID,
		Kind:        kind,
		Message:     msg,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, errx.Wrap(err, "failed to create notification", errx.TypeInternal)
	}
	return n, nil
}

// NotifyQuietly sends a notification as a side effect of another operation;
// failures are logged and never returned
func (s *NotificationService) NotifyQuietly(ctx context.Context, recipient kernel.UserID, kind notification.Kind, message string) {
	if _, err := s.Notify(ctx, notification.NotifyRequest{RecipientID: recipient, Kind: kind, Message: message}); err != nil {
		logx.Warnf("notification %s for %s not sent: %v", kind, recipient, err)
	}
}

func (s *NotificationService) List(ctx context.Context, req notification.ListNotificationsRequest) (*kernel.Paginated[notification.Notification], error) {
	return s.repo.ListByRecipient(ctx, req)
}

// MarkRead marks a notification read. It must belong to recipient.
func (s *NotificationService) MarkRead(ctx context.Context, recipient kernel.UserID, id kernel.NotificationID) (*notification.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != recipient {
		return nil, notification.ErrNotificationNotFound().WithDetail("notification_id", id.String())
	}
	if n.Read {
		return n, nil
	}

	n.MarkRead()
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, errx.Wrap(err, "failed to mark notification read", errx.TypeInternal)
	}
	return n, nil
}
