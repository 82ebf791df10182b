package discussions

import "time"

type Discussion struct {
	ID           string
	Title        string
	UserID       string
	CommentCount int
	CreatedAt    time.Time
	LastPostedAt time.Time
}
