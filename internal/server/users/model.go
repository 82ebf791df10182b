package users

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	AvatarKey    string
	JoinedAt     time.Time
}
