package user

import (
	"strings"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// User is an employee, manager or candidate account
type User struct {
	ID           kernel.UserID `json:"id"`
	Name         string        `json:"name"`
	Email        kernel.Email  `json:"email"`
	RoleID       kernel.RoleID `json:"role_id"`
	Status       UserStatus    `json:"status"`
	PasswordHash string        `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) kernel.Email {
	return kernel.Email(strings.ToLower(strings.TrimSpace(email)))
}

// IsValidEmail is a shallow shape check
func IsValidEmail(email kernel.Email) bool {
	s := string(email)
	at := strings.LastIndex(s, "@")
	return at > 0 && at < len(s)-1 && strings.Contains(s[at:], ".")
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func (u *User) Deactivate() {
	u.Status = UserStatusInactive
	u.UpdatedAt = time.Now()
}

func (u *User) Activate() {
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
}
