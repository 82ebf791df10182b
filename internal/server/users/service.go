package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/forumkit/forumkit/internal/common"
)

const minPasswordLength = 8

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the signup fields, hashes the password with bcrypt, and
// stores the new user. Validation failures wrap common.ErrorValidation; a
// taken username or email surfaces as common.ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {

	if err := validateSignup(username, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return user, nil
}

// Authenticate verifies the credential pair. The identification may be
// either a username or an email address.
func (s *Service) Authenticate(ctx context.Context, identification, password string) (*User, error) {

	user, err := s.repo.GetByIdentification(ctx, identification)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// SetAvatarKey records the object-storage key of an uploaded avatar and
// returns the updated user.
func (s *Service) SetAvatarKey(ctx context.Context, id string, avatarKey string) (*User, error) {

	if strings.TrimSpace(avatarKey) == "" {
		return nil, fmt.Errorf("%w: avatar key is required", common.ErrorValidation)
	}

	if err := s.repo.UpdateAvatarKey(ctx, id, avatarKey); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func validateSignup(username, email, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrorValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is invalid", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	return nil
}
