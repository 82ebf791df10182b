package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/forumkit/forumkit/internal/common"
	"github.com/forumkit/forumkit/internal/server/csrf"
	"github.com/forumkit/forumkit/internal/server/discussions"
	"github.com/forumkit/forumkit/internal/server/posts"
	"github.com/forumkit/forumkit/internal/server/users"
)

// --- response DTOs ---

type forumJSON struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	BasePath    string `json:"basePath"`
	Debug       bool   `json:"debug"`
}

type userJSON struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type discussionJSON struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	UserID       string    `json:"userId"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	LastPostedAt time.Time `json:"lastPostedAt"`
}

type postJSON struct {
	ID           string    `json:"id"`
	DiscussionID string    `json:"discussionId"`
	UserID       string    `json:"userId"`
	Number       int       `json:"number"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}

type credentialsJSON struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type avatarUploadJSON struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func discussionToJSON(d *discussions.Discussion) discussionJSON {
	return discussionJSON{
		ID:           d.ID,
		Title:        d.Title,
		UserID:       d.UserID,
		CommentCount: d.CommentCount,
		CreatedAt:    d.CreatedAt,
		LastPostedAt: d.LastPostedAt,
	}
}

func postToJSON(p *posts.Post) postJSON {
	return postJSON{
		ID:           p.ID,
		DiscussionID: p.DiscussionID,
		UserID:       p.UserID,
		Number:       p.Number,
		Content:      p.Content,
		CreatedAt:    p.CreatedAt,
	}
}

// userToJSON maps a user for the response. The email is private and only
// included when the user is looking at themselves; the avatar key is
// exchanged for a presigned download URL.
func (s *Server) userToJSON(r *http.Request, user *users.User) userJSON {
	out := userJSON{ID: user.ID, Username: user.Username}

	if token := tokenFromContext(r.Context()); token != nil && token.UserID == user.ID {
		out.Email = user.Email
	}

	if user.AvatarKey != "" {
		url, err := s.avatarService.GetPresignedGetUrl(r.Context(), user.AvatarKey)
		if err != nil {
			s.logger.Error(r.Context(), "error presigning avatar url", "error", err)
		} else {
			out.AvatarURL = url
		}
	}

	return out
}

// decodeBody reads a JSON request body. Bodies that do not decode are a
// validation failure, not a server fault.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", common.ErrorValidation)
	}
	return nil
}

// --- handlers ---

func (s *Server) handleForum(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, forumJSON{
		Title:       s.config.ForumTitle,
		Description: s.config.ForumDescription,
		BasePath:    s.config.BasePath,
		Debug:       s.config.Debug,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identification string `json:"identification"`
		Password       string `json:"password"`
		Remember       bool   `json:"remember"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.userService.Authenticate(r.Context(), req.Identification, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.tokenService.Issue(r.Context(), user.ID, req.Remember)
	if err != nil {
		writeError(w, err)
		return
	}

	// The session changed: re-bind the anti-forgery token to the new access
	// token so the client's rotated copy matches its next request.
	s.setCSRFHeader(w, token.ID)

	writeJSON(w, http.StatusOK, credentialsJSON{Token: token.ID, UserID: user.ID})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	if token == nil {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	if err := s.tokenService.Revoke(r.Context(), token.ID); err != nil {
		writeError(w, err)
		return
	}

	// Back to an anonymous session.
	s.setCSRFHeader(w, csrf.GuestSubject)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	// Registration responses include the email even though the request is
	// anonymous: the caller just proved they own the account.
	out := userJSON{ID: user.ID, Username: user.Username, Email: user.Email}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.userService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.userToJSON(r, user))
}

// handleUpdateUser records the avatar key after the client finished its
// presigned upload. Users can only update themselves.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	if token == nil {
		writeError(w, common.ErrorUnauthorized)
		return
	}
	if token.UserID != r.PathValue("id") {
		writeError(w, common.ErrorForbidden)
		return
	}

	var req struct {
		AvatarKey string `json:"avatarKey"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.userService.SetAvatarKey(r.Context(), token.UserID, req.AvatarKey)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.userToJSON(r, user))
}

func (s *Server) handleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	if token == nil {
		writeError(w, common.ErrorUnauthorized)
		return
	}
	if token.UserID != r.PathValue("id") {
		writeError(w, common.ErrorForbidden)
		return
	}

	key, url, err := s.avatarService.GetPresignedPutUrl(r.Context(), token.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "error presigning avatar upload", "error", err)
		writeError(w, common.ErrorInternal)
		return
	}

	writeJSON(w, http.StatusOK, avatarUploadJSON{Key: key, URL: url})
}

func (s *Server) handleListDiscussions(w http.ResponseWriter, r *http.Request) {
	list, err := s.discussionService.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]discussionJSON, 0, len(list))
	for i := range list {
		out = append(out, discussionToJSON(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateDiscussion(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	if token == nil {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	discussion, err := s.discussionService.Create(r.Context(), token.UserID, req.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := s.postService.Create(r.Context(), discussion.ID, token.UserID, req.Content); err != nil {
		writeError(w, err)
		return
	}

	// Re-read for the counters the opening post just bumped.
	discussion, err = s.discussionService.Get(r.Context(), discussion.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, discussionToJSON(discussion))
}

func (s *Server) handleGetDiscussion(w http.ResponseWriter, r *http.Request) {
	discussion, err := s.discussionService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, discussionToJSON(discussion))
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	list, err := s.postService.ListByDiscussion(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]postJSON, 0, len(list))
	for i := range list {
		out = append(out, postToJSON(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	if token == nil {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := s.postService.Create(r.Context(), r.PathValue("id"), token.UserID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, postToJSON(post))
}
