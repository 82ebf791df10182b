package users

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByIdentification(ctx context.Context, identification string) (*User, error)
	UpdateAvatarKey(ctx context.Context, id string, avatarKey string) error
}
