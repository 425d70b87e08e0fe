package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PhotoURL     string    `json:"photo_url"`
	PasswordHash string    `json:"-"`
	GoogleID     *string   `json:"-"`
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Save(ctx context.Context, u *User) error
	// UpsertGoogle creates the user on first Google sign-in and refreshes
	// name/photo on subsequent ones. Matching is by google_id, then email.
	UpsertGoogle(ctx context.Context, u *User) (*User, error)
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error
}
