package role

import (
	"strings"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// Seeded role names
const (
	RoleAdmin     = "admin"
	RoleHR        = "hr"
	RoleManager   = "manager"
	RoleEmployee  = "employee"
	RoleCandidate = "candidate"
)

// Role is a named set of scopes assigned to users
type Role struct {
	ID          kernel.RoleID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Scopes      []string      `json:"scopes"`
	IsSystem    bool          `json:"is_system"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// NormalizeName lower-cases and trims a role name
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CanModify reports whether the role may be renamed or deleted
func (r *Role) CanModify() bool {
	return !r.IsSystem
}

// SetScopes replaces the scopes, dropping duplicates
func (r *Role) SetScopes(scopes []string) {
	seen := make(map[string]bool, len(scopes))
	out := make([]string, 0, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	r.Scopes = out
	r.UpdatedAt = time.Now()
}
