package forum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/forumkit/forumkit/internal/client/api"
	"github.com/forumkit/forumkit/internal/client/session"
)

// APIClient is the concrete Client backed by the request pipeline.
type APIClient struct {
	pipeline *api.Pipeline
}

func NewAPIClient(pipeline *api.Pipeline) *APIClient {
	return &APIClient{pipeline: pipeline}
}

// call executes the request and decodes the JSON result into out (skipped
// when out is nil).
func (c *APIClient) call(ctx context.Context, req api.Request, out any) error {
	raw, err := c.pipeline.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *APIClient) Forum(ctx context.Context) (*Forum, error) {
	var f Forum
	// Background: the boot-time meta fetch must not disturb user alerts.
	if err := c.call(ctx, api.Request{Method: "GET", Path: "/api/forum", Background: true}, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *APIClient) Register(ctx context.Context, username, email, password string) (*session.User, error) {
	var u session.User
	req := api.Request{
		Method: "POST",
		Path:   "/api/users",
		Body: map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		},
	}
	if err := c.call(ctx, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *APIClient) Login(ctx context.Context, identification, password string, remember bool) (*Credentials, error) {
	var creds Credentials
	req := api.Request{
		Method: "POST",
		Path:   "/api/token",
		Body: map[string]any{
			"identification": identification,
			"password":       password,
			"remember":       remember,
		},
	}
	if err := c.call(ctx, req, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Logout revokes the current access token. The DELETE verb travels as POST
// with a method-override header; the server folds it back.
func (c *APIClient) Logout(ctx context.Context) error {
	return c.call(ctx, api.Request{Method: "DELETE", Path: "/api/token"}, nil)
}

func (c *APIClient) User(ctx context.Context, id string) (*session.User, error) {
	var u session.User
	if err := c.call(ctx, api.Request{Method: "GET", Path: "/api/users/" + url.PathEscape(id)}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *APIClient) Discussions(ctx context.Context, sort string) ([]Discussion, error) {
	path := "/api/discussions"
	if sort != "" {
		path += "?sort=" + url.QueryEscape(sort)
	}
	var list []Discussion
	if err := c.call(ctx, api.Request{Method: "GET", Path: path}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *APIClient) Discussion(ctx context.Context, id string) (*Discussion, []Post, error) {
	var d Discussion
	if err := c.call(ctx, api.Request{Method: "GET", Path: "/api/discussions/" + url.PathEscape(id)}, &d); err != nil {
		return nil, nil, err
	}

	var posts []Post
	if err := c.call(ctx, api.Request{Method: "GET", Path: "/api/discussions/" + url.PathEscape(id) + "/posts"}, &posts); err != nil {
		return nil, nil, err
	}
	return &d, posts, nil
}

func (c *APIClient) CreateDiscussion(ctx context.Context, title, content string) (*Discussion, error) {
	var d Discussion
	req := api.Request{
		Method: "POST",
		Path:   "/api/discussions",
		Body:   map[string]string{"title": title, "content": content},
	}
	if err := c.call(ctx, req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *APIClient) CreatePost(ctx context.Context, discussionID, content string) (*Post, error) {
	var p Post
	req := api.Request{
		Method: "POST",
		Path:   "/api/discussions/" + url.PathEscape(discussionID) + "/posts",
		Body:   map[string]string{"content": content},
	}
	if err := c.call(ctx, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *APIClient) AvatarUploadURL(ctx context.Context, userID string) (*AvatarUpload, error) {
	var up AvatarUpload
	req := api.Request{
		Method: "POST",
		Path:   "/api/users/" + url.PathEscape(userID) + "/avatar",
	}
	if err := c.call(ctx, req, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

// ConfirmAvatar records the uploaded object key on the user. PATCH also
// exercises the method-override shim.
func (c *APIClient) ConfirmAvatar(ctx context.Context, userID, key string) (*session.User, error) {
	var u session.User
	req := api.Request{
		Method: "PATCH",
		Path:   "/api/users/" + url.PathEscape(userID),
		Body:   map[string]string{"avatarKey": key},
	}
	if err := c.call(ctx, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
