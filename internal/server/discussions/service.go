package discussions

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/forumkit/forumkit/internal/common"
)

const defaultListLimit = 50

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create starts a new discussion. The opening post is created separately by
// the posts service, which also bumps the comment counter.
func (s *Service) Create(ctx context.Context, userID string, title string) (*Discussion, error) {

	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	discussion := &Discussion{
		ID:     uuid.NewString(),
		Title:  title,
		UserID: userID,
	}

	discussion, err := s.repo.Create(ctx, discussion)
	if err != nil {
		return nil, fmt.Errorf("error creating discussion: %v", err)
	}

	return discussion, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Discussion, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns discussions in the requested sort order. Unknown sort values
// fall back to latest activity.
func (s *Service) List(ctx context.Context, sort string) ([]Discussion, error) {
	return s.repo.List(ctx, sort, defaultListLimit)
}
