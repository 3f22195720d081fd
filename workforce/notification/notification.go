package notification

import (
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// Kind tags what triggered a notification
type Kind string

const (
	KindGeneral            Kind = "general"
	KindInterviewScheduled Kind = "interview.scheduled"
	KindInterviewCancelled Kind = "interview.cancelled"
	KindExpenseApproved    Kind = "expense.approved"
	KindExpenseRejected    Kind = "expense.rejected"
	KindEnrollment         Kind = "training.enrolled"
)

type Notification struct {
	ID          kernel.NotificationID `json:"id"`
	RecipientID kernel.UserID         `json:"recipient_id"`
	Kind        Kind                  `json:"kind"`
	Message     string                `json:"message"`
	Read        bool                  `json:"read"`
	ReadAt      *time.Time            `json:"read_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// MarkRead is idempotent
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
}
