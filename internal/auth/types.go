package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// settings for the OAuth providers and their session cookie
type ProviderOptions struct {
	SessionSecret      string
	BaseURL            string
	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string
}

const (
	contextUserID    = "user_id"
	contextUserEmail = "user_email"
	contextUserName  = "user_name"
)
