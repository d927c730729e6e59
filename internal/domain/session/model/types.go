package model

import "time"

// Role enumerates the access levels a principal may hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is an authenticated identity record. The password travels in
// plaintext through the persisted record; that mirrors the seeded mock
// credential model and is a known limitation of this trust boundary, not
// something the store layer hides.
type Principal struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// DisplayName joins the first and last name.
func (p Principal) DisplayName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// State is the authentication snapshot returned by every session
// operation. Authenticated is true iff Principal is set and LastError is
// empty.
type State struct {
	Authenticated bool       `json:"authenticated"`
	Principal     *Principal `json:"principal,omitempty"`
	LastError     string     `json:"lastError,omitempty"`
}

// Anonymous returns the unauthenticated default state.
func Anonymous() State {
	return State{}
}

// Failed returns an unauthenticated state carrying a user-visible message.
func Failed(message string) State {
	return State{LastError: message}
}

// Authenticated returns a state for the given principal.
func Authenticated(p Principal) State {
	return State{Authenticated: true, Principal: &p}
}

// Record is the persisted session record: an opaque serialized principal
// keyed by session id. Store backends never interpret the payload.
type Record struct {
	SessionID string     `json:"session_id"`
	Payload   []byte     `json:"payload"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the record has passed its expiry.
func (r Record) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// Logger provides the minimal logging contract required by the session domain.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
