package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forumkit/forumkit/internal/common"
)

type fakeRepo struct {
	created *User

	byID             map[string]*User
	byIdentification map[string]*User

	createErr error

	avatarID  string
	avatarKey string
	avatarErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:             map[string]*User{},
		byIdentification: map[string]*User{},
	}
}

func (f *fakeRepo) Create(ctx context.Context, user *User) (*User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = user
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByIdentification(ctx context.Context, identification string) (*User, error) {
	u, ok := f.byIdentification[identification]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeRepo) UpdateAvatarKey(ctx context.Context, id string, avatarKey string) error {
	if f.avatarErr != nil {
		return f.avatarErr
	}
	f.avatarID = id
	f.avatarKey = avatarKey
	if u, ok := f.byID[id]; ok {
		u.AvatarKey = avatarKey
	}
	return nil
}

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newFakeRepo()
		s := NewService(repo)

		user, err := s.Register(context.Background(), "alice", "alice@example.com", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice", user.Username)

		// a real hash is stored, not the plain password
		assert.NoError(t, bcrypt.CompareHashAndPassword(repo.created.PasswordHash, []byte("correct horse")))
	})

	t.Run("validation", func(t *testing.T) {
		s := NewService(newFakeRepo())

		tests := []struct {
			name     string
			username string
			email    string
			password string
		}{
			{"empty username", "", "a@b.c", "longenough"},
			{"bad email", "alice", "not-an-email", "longenough"},
			{"short password", "alice", "a@b.c", "short"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := s.Register(context.Background(), tt.username, tt.email, tt.password)
				assert.ErrorIs(t, err, common.ErrorValidation)
			})
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErr = common.ErrorAlreadyExists
		s := NewService(repo)

		_, err := s.Register(context.Background(), "alice", "alice@example.com", "longenough")
		assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	})
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secretpass"), bcrypt.MinCost)
	require.NoError(t, err)

	alice := &User{ID: "u1", Username: "alice", Email: "alice@example.com", PasswordHash: hash}

	repo := newFakeRepo()
	repo.byIdentification["alice"] = alice
	repo.byIdentification["alice@example.com"] = alice
	s := NewService(repo)

	t.Run("by username", func(t *testing.T) {
		user, err := s.Authenticate(context.Background(), "alice", "secretpass")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("by email", func(t *testing.T) {
		user, err := s.Authenticate(context.Background(), "alice@example.com", "secretpass")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Authenticate(context.Background(), "alice", "wrong")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Authenticate(context.Background(), "nobody", "secretpass")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})
}

func TestSetAvatarKey(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["u1"] = &User{ID: "u1", Username: "alice"}
	s := NewService(repo)

	user, err := s.SetAvatarKey(context.Background(), "u1", "avatars/a.png")
	require.NoError(t, err)
	assert.Equal(t, "avatars/a.png", user.AvatarKey)
	assert.Equal(t, "u1", repo.avatarID)

	_, err = s.SetAvatarKey(context.Background(), "u1", "  ")
	assert.ErrorIs(t, err, common.ErrorValidation)
}
