package auth

import "strings"

// ============================================================================
// CORE SCOPES - IAM
// ============================================================================

const (
	ScopeAll = "*"

	ScopeUsersAll    = "users:*"
	ScopeUsersRead   = "users:read"
	ScopeUsersWrite  = "users:write"
	ScopeUsersDelete = "users:delete"

	ScopeRolesAll   = "roles:*"
	ScopeRolesRead  = "roles:read"
	ScopeRolesWrite = "roles:write"
)

// AllScopes lists every known scope, core and domain
func AllScopes() []string {
	scopes := []string{
		ScopeAll,
		ScopeUsersAll, ScopeUsersRead, ScopeUsersWrite, ScopeUsersDelete,
		ScopeRolesAll, ScopeRolesRead, ScopeRolesWrite,
	}
	for _, group := range DomainScopeCategories {
		scopes = append(scopes, group...)
	}
	return scopes
}

// IsValidScope reports whether scope is known
func IsValidScope(scope string) bool {
	for _, s := range AllScopes() {
		if s == scope {
			return true
		}
	}
	return false
}

// HasScope reports whether granted covers required.
// "*" covers everything and "jobs:*" covers every "jobs:" scope.
func HasScope(granted []string, required string) bool {
	for _, g := range granted {
		if g == ScopeAll || g == required {
			return true
		}
		if strings.HasSuffix(g, ":*") {
			prefix := strings.TrimSuffix(g, "*")
			if strings.HasPrefix(required, prefix) {
				return true
			}
		}
	}
	return false
}

// HasAllScopes reports whether granted covers every required scope
func HasAllScopes(granted []string, required ...string) bool {
	for _, r := range required {
		if !HasScope(granted, r) {
			return false
		}
	}
	return true
}
