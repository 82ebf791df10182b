// Package accesstokens implements opaque API access tokens: issuing,
// authentication, activity tracking, and expiry.
package accesstokens

import "time"

// Token types. The type decides the lifetime policy.
const (
	TypeSession         = "session"
	TypeSessionRemember = "session_remember"
	TypeDeveloper       = "developer"
)

// AccessToken is a server-stored credential. The ID doubles as the opaque
// token string presented by clients.
type AccessToken struct {
	ID             string
	UserID         string
	Type           string
	Title          string
	CreatedAt      time.Time
	LastActivityAt time.Time
}

// ValidAt reports whether the token is still valid at the given instant.
// Session and remember tokens expire after the configured duration since
// last activity; developer tokens never expire.
func (t *AccessToken) ValidAt(now time.Time, sessionLifetime, rememberLifetime time.Duration) bool {
	switch t.Type {
	case TypeDeveloper:
		return true
	case TypeSessionRemember:
		return now.Before(t.LastActivityAt.Add(rememberLifetime))
	default:
		return now.Before(t.LastActivityAt.Add(sessionLifetime))
	}
}
