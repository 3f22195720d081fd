package notification

import "github.com/Abraxas-365/peoplehub/pkg/kernel"

// NotifyRequest - DTO for sending a notification
type NotifyRequest struct {
	RecipientID kernel.UserID `json:"-"`
	Kind        Kind          `json:"kind,omitempty"`
	Message     string        `json:"message" validate:"required"`
}

// ListNotificationsRequest - DTO for listing a user's notifications
type ListNotificationsRequest struct {
	RecipientID kernel.UserID
	UnreadOnly  bool
	Pagination  kernel.PaginationOptions
}
