// Package forum is the typed API surface of the client: thin methods over
// the request pipeline, one per backend endpoint, plus the resource models
// they decode into.
package forum

import "time"

// Forum is the instance metadata served by GET /api/forum.
type Forum struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	BasePath    string `json:"basePath"`
	Debug       bool   `json:"debug"`
}

// Discussion is a thread started by a user.
type Discussion struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	UserID       string    `json:"userId"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	LastPostedAt time.Time `json:"lastPostedAt"`
}

// Post is a single comment within a discussion.
type Post struct {
	ID           string    `json:"id"`
	DiscussionID string    `json:"discussionId"`
	UserID       string    `json:"userId"`
	Number       int       `json:"number"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Credentials is the login result: the access token plus its owner.
type Credentials struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// AvatarUpload carries a presigned PUT target for an avatar file.
type AvatarUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
