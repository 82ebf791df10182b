package forum

import (
	"context"

	"github.com/forumkit/forumkit/internal/client/session"
)

// Client defines the API operations the application and CLI depend on.
// All methods must honor context cancellation/timeouts.
type Client interface {
	Forum(ctx context.Context) (*Forum, error)
	Register(ctx context.Context, username, email, password string) (*session.User, error)
	Login(ctx context.Context, identification, password string, remember bool) (*Credentials, error)
	Logout(ctx context.Context) error
	User(ctx context.Context, id string) (*session.User, error)
	Discussions(ctx context.Context, sort string) ([]Discussion, error)
	Discussion(ctx context.Context, id string) (*Discussion, []Post, error)
	CreateDiscussion(ctx context.Context, title, content string) (*Discussion, error)
	CreatePost(ctx context.Context, discussionID, content string) (*Post, error)
	AvatarUploadURL(ctx context.Context, userID string) (*AvatarUpload, error)
	ConfirmAvatar(ctx context.Context, userID, key string) (*session.User, error)
}
