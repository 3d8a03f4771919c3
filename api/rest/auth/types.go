package auth

import "codeberg.org/satirist/server/satirist/users"

// AuthResponse returned after successful OAuth callback
type AuthResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}

// ProvidersResponse lists the sign-in options the server accepts
type ProvidersResponse struct {
	Providers []string `json:"providers"`
}
