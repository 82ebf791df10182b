package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/forumkit/forumkit/internal/common"
	"github.com/forumkit/forumkit/internal/server/accesstokens"
	"github.com/forumkit/forumkit/internal/server/csrf"
)

type contextKey string

const tokenContextKey contextKey = "accessToken"

// tokenFromContext returns the authenticated access token, or nil for
// anonymous requests.
func tokenFromContext(ctx context.Context) *accesstokens.AccessToken {
	token, _ := ctx.Value(tokenContextKey).(*accesstokens.AccessToken)
	return token
}

// csrfSubject is the binding for anti-forgery tokens: the access token id,
// or a guest marker for anonymous sessions.
func csrfSubject(ctx context.Context) string {
	if token := tokenFromContext(ctx); token != nil {
		return token.ID
	}
	return csrf.GuestSubject
}

// methodOverride folds POST requests carrying X-HTTP-Method-Override back to
// the verb the client intended. Clients tunnel PUT/PATCH/DELETE through POST
// to survive restrictive proxies; only POST may be overridden, so the
// override can never downgrade a safe method into an unsafe one.
func (s *Server) methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if override := r.Header.Get(common.MethodOverrideHeaderName); override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the Authorization header ("Token <id>") to an access
// token and stores it on the request context. A missing header means an
// anonymous request; a bad or expired token is rejected outright.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, ok := strings.CutPrefix(header, "Token ")
		if !ok {
			writeError(w, common.ErrInvalidToken)
			return
		}

		token, err := s.tokenService.Authenticate(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// csrfProtect verifies the anti-forgery header on state-changing requests
// and stamps a fresh token onto every response, so clients rotate their copy
// on each round trip.
func (s *Server) csrfProtect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := csrfSubject(r.Context())

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			presented := r.Header.Get(common.CSRFTokenHeaderName)
			if err := csrf.VerifyToken(presented, subject, s.secretKey); err != nil {
				writeError(w, err)
				return
			}
		}

		s.setCSRFHeader(w, subject)
		next.ServeHTTP(w, r)
	})
}

// setCSRFHeader mints a fresh anti-forgery token bound to the subject and
// places it on the response. Handlers that change the session (login,
// logout) call this again to re-bind the token before writing the body.
func (s *Server) setCSRFHeader(w http.ResponseWriter, subject string) {
	token, err := csrf.GenerateToken(subject, s.secretKey, s.csrfLifetime)
	if err != nil {
		s.logger.Error(context.Background(), "error generating csrf token", "error", err)
		return
	}
	w.Header().Set(common.CSRFTokenHeaderName, token)
}
