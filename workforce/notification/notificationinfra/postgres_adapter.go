package notificationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/workforce/notification"
)

type PostgresNotificationRepository struct {
	db *sqlx.DB
}

func NewPostgresNotificationRepository(db *sqlx.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

type notificationModel struct {
	ID          string     `db:"id"`
	RecipientID string     `db:"recipient_id"`
	Kind        string     `db:"kind"`
	Message     string     `db:"message"`
	Read        bool       `db:"read"`
	ReadAt      *time.Time `db:"read_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

const selectColumns = `id, recipient_id, kind, message, read, read_at, created_at`

func (m *notificationModel) toEntity() notification.Notification {
	return notification.Notification{
		ID:          kernel.NotificationID(m.ID),
		RecipientID: kernel.UserID(m.RecipientID),
		Kind:        notification.Kind(m.Kind),
		Message:     m.Message,
		Read:        m.Read,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}

func fromEntity(n *notification.Notification) *notificationModel {
	return &notificationModel{
		ID:          n.ID.String(),
		RecipientID: n.RecipientID.String(),
		Kind:        string(n.Kind),
		Message:     n.Message,
		Read:        n.Read,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, kind, message, read, read_at, created_at)
		VALUES (:id, :recipient_id, :kind, :message, :read, :read_at, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(n)); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id kernel.NotificationID) (*notification.Notification, error) {
	var model notificationModel
	err := r.db.GetContext(ctx, &model, `SELECT `+selectColumns+` FROM notifications WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notification.ErrNotificationNotFound().WithDetail("notification_id", id.String())
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	n := model.toEntity()
	return &n, nil
}

func (r *PostgresNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	result, err := r.db.NamedExecContext(ctx, `UPDATE notifications SET read = :read, read_at = :read_at WHERE id = :id`, fromEntity(n))
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notification.ErrNotificationNotFound().WithDetail("notification_id", n.ID.String())
	}
	return nil
}

func (r *PostgresNotificationRepository) ListByRecipient(ctx context.Context, req notification.ListNotificationsRequest) (*kernel.Paginated[notification.Notification], error) {
	pagination := req.Pagination.Normalize()

	where := `WHERE recipient_id = $1`
	if req.UnreadOnly {
		where += ` AND read = FALSE`
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications `+where, req.RecipientID.String()); err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `SELECT ` + selectColumns + ` FROM notifications ` + where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	var models []notificationModel
	if err := r.db.SelectContext(ctx, &models, query, req.RecipientID.String(), pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	items := make([]notification.Notification, 0, len(models))
	for i := range models {
		items = append(items, models[i].toEntity())
	}
	return kernel.NewPaginated(items, pagination, total), nil
}
