// Package session holds the client's live authentication state: the bearer
// access token, the rotating anti-forgery token, and the logged-in user.
//
// The CSRF token is a single shared mutable value: the request pipeline reads
// it before every call and writes back whatever the last completed response
// carried. Under concurrent requests the last response wins, which is
// accepted on the assumption that the server issues monotonically-valid
// tokens.
package session

import "sync"

// User is the minimal identity the client keeps for the session owner.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Session is safe for concurrent use.
type Session struct {
	mu          sync.RWMutex
	accessToken string
	csrfToken   string
	user        *User
}

func New() *Session {
	return &Session{}
}

// AccessToken returns the current bearer token ("" when logged out).
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

// CSRFToken returns the anti-forgery token to attach to the next request.
func (s *Session) CSRFToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.csrfToken
}

// SetCSRFToken stores a rotated anti-forgery token received from a response.
func (s *Session) SetCSRFToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.csrfToken = token
}

// User returns the session owner, or nil when logged out.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) SetUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// LoggedIn reports whether the session carries an authenticated user.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != "" && s.user != nil
}

// Clear wipes authentication state (logout). The CSRF token is kept: the
// server keeps issuing tokens to guests as well.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.user = nil
}
