package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/forumkit/forumkit/internal/common"
	"github.com/forumkit/forumkit/internal/server/discussions"
)

type Service struct {
	repo           Repository
	discussionRepo discussions.Repository
}

func NewService(repo Repository, discussionRepo discussions.Repository) *Service {
	return &Service{repo: repo, discussionRepo: discussionRepo}
}

// Create adds a post to a discussion and records the activity on the
// discussion itself (comment counter and last-posted timestamp).
func (s *Service) Create(ctx context.Context, discussionID, userID, content string) (*Post, error) {

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrorValidation)
	}

	if _, err := s.discussionRepo.GetByID(ctx, discussionID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	post := &Post{
		ID:           uuid.NewString(),
		DiscussionID: discussionID,
		UserID:       userID,
		Content:      content,
	}

	post, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %v", err)
	}

	if err := s.discussionRepo.RecordPost(ctx, discussionID, post.CreatedAt); err != nil {
		return nil, fmt.Errorf("error recording post activity: %v", err)
	}

	return post, nil
}

// ListByDiscussion returns the posts of a discussion in posting order. The
// discussion must exist.
func (s *Service) ListByDiscussion(ctx context.Context, discussionID string) ([]Post, error) {

	if _, err := s.discussionRepo.GetByID(ctx, discussionID); err != nil {
		return nil, err
	}

	return s.repo.ListByDiscussion(ctx, discussionID)
}
