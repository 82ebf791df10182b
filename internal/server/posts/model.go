package posts

import "time"

type Post struct {
	ID           string
	DiscussionID string
	UserID       string
	Number       int
	Content      string
	CreatedAt    time.Time
}
