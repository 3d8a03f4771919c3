package users

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

// represents an authenticated user in the system
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Provider           string    `json:"provider"`
	ProviderID         string    `json:"-"`
	Name               string    `json:"name"`
	AvatarURL          string    `json:"avatar_url"`
	RegistrationNumber *int      `json:"registration_number,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// the identity returned by an OAuth provider
type ProviderIdentity struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
	AvatarURL  string
}

type Repository interface {
	FindOrCreateByProvider(ctx context.Context, id ProviderIdentity) (*User, error)
	FindByID(ctx context.Context, userID string) (*User, error)
}
