// Package common contains shared constants and sentinel errors used across
// forumkit components.
package common

const (
	// CSRFTokenHeaderName carries the anti-forgery token on every outgoing
	// request; the server echoes a (possibly rotated) token back under the
	// same name.
	CSRFTokenHeaderName = "X-CSRF-Token"

	// MethodOverrideHeaderName carries the real HTTP verb when the wire
	// method had to be downgraded to POST for intermediaries that only pass
	// GET/POST.
	MethodOverrideHeaderName = "X-HTTP-Method-Override"

	// AuthorizationHeaderName carries the bearer access token.
	AuthorizationHeaderName = "Authorization"
)
