package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/errors"
)

// cookie set by the OAuth callback for browser clients
const TokenCookie = "satirist_token"

// validates JWT tokens and adds user info to context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			errors.Unauthorized(c, "authorization required")
			c.Abort()
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			errors.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// validates JWT if present but doesn't require it
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := extractToken(c); ok {
			if claims, err := ValidateJWT(token); err == nil {
				setClaims(c, claims)
			}
		}

		c.Next()
	}
}

// extracts user_id from context after AuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(contextUserID)
	return userID, userID != ""
}

// returns the authenticated user's id, email and name
func GetIdentity(c *gin.Context) (userID, email, name string, ok bool) {
	userID, ok = GetUserID(c)
	if !ok {
		return "", "", "", false
	}

	return userID, c.GetString(contextUserEmail), c.GetString(contextUserName), true
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(contextUserID, claims.UserID)
	c.Set(contextUserEmail, claims.Email)
	c.Set(contextUserName, claims.Name)
}

func extractToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}

		return parts[1], true
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}

	return "", false
}
