package accesstokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forumkit/forumkit/internal/common"
	"github.com/forumkit/forumkit/internal/server/config"
)

// touchInterval throttles last-activity writes so hot tokens do not turn
// every request into an UPDATE.
const touchInterval = 10 * time.Second

type Service struct {
	repo             Repository
	sessionLifetime  time.Duration
	rememberLifetime time.Duration
	now              func() time.Time
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:             repo,
		sessionLifetime:  cfg.SessionTokenLifetime,
		rememberLifetime: cfg.RememberTokenLifetime,
		now:              time.Now,
	}
}

// Issue creates and stores a new token for the user. With remember set the
// token follows the long-lived policy.
func (s *Service) Issue(ctx context.Context, userID string, remember bool) (*AccessToken, error) {

	id, err := common.MakeRandHexString(20)
	if err != nil {
		return nil, common.ErrorInternal
	}

	tokenType := TypeSession
	if remember {
		tokenType = TypeSessionRemember
	}

	token := &AccessToken{
		ID:             id,
		UserID:         userID,
		Type:           tokenType,
		LastActivityAt: s.now(),
	}

	token, err = s.repo.Create(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error creating access token: %v", err)
	}

	return token, nil
}

// IssueDeveloper creates a titled token that never expires, for API scripts.
func (s *Service) IssueDeveloper(ctx context.Context, userID string, title string) (*AccessToken, error) {

	id, err := common.MakeRandHexString(20)
	if err != nil {
		return nil, common.ErrorInternal
	}

	token := &AccessToken{
		ID:             id,
		UserID:         userID,
		Type:           TypeDeveloper,
		Title:          title,
		LastActivityAt: s.now(),
	}

	token, err = s.repo.Create(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error creating access token: %v", err)
	}

	return token, nil
}

// Authenticate resolves a presented token string. Unknown tokens yield
// ErrInvalidToken; expired tokens are deleted and yield ErrTokenExpired.
// Valid tokens get their last activity bumped, throttled to touchInterval.
func (s *Service) Authenticate(ctx context.Context, id string) (*AccessToken, error) {

	token, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}

	now := s.now()

	if !token.ValidAt(now, s.sessionLifetime, s.rememberLifetime) {
		_ = s.repo.Delete(ctx, token.ID)
		return nil, common.ErrTokenExpired
	}

	if now.Sub(token.LastActivityAt) >= touchInterval {
		if err := s.repo.UpdateLastActivity(ctx, token.ID, now); err != nil {
			return nil, common.ErrorInternal
		}
		token.LastActivityAt = now
	}

	return token, nil
}

// Revoke deletes the token. Revoking an unknown token is not an error.
func (s *Service) Revoke(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error deleting access token: %v", err)
	}
	return nil
}

// CollectGarbage deletes all expired tokens and returns how many rows went.
func (s *Service) CollectGarbage(ctx context.Context) (int64, error) {
	now := s.now()
	return s.repo.DeleteExpired(ctx, now.Add(-s.sessionLifetime), now.Add(-s.rememberLifetime))
}
