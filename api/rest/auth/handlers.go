package auth

import (
	stderrors "errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/internal/errors"
	"codeberg.org/satirist/server/internal/logger"
	"codeberg.org/satirist/server/satirist/users"
)

const tokenCookieMaxAge = 7 * 24 * 60 * 60

// ProvidersHandler godoc
// @Summary List sign-in providers
// @Tags auth
// @Produce json
// @Success 200 {object} ProvidersResponse
// @Router /api/v1/auth/providers [get]
func ProvidersHandler(providers []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ProvidersResponse{Providers: providers})
	}
}

// BeginAuthHandler godoc
// @Summary Start OAuth authentication
// @Description Begin OAuth authentication flow with specified provider (google, github)
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google, github)
// @Success 302 {string} string "Redirect to OAuth provider"
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider} [get]
func BeginAuthHandler(providers []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if !slices.Contains(providers, provider) {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Set("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// CallbackHandler godoc
// @Summary OAuth callback
// @Description OAuth provider callback. Returns user data and JWT token and sets the token cookie
// @Tags auth
// @Produce json
// @Param provider path string true "OAuth provider" Enums(google, github)
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider}/callback [get]
func CallbackHandler(userRepo users.Repository, providers []string, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if !slices.Contains(providers, provider) {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		q := c.Request.URL.Query()
		q.Set("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			errors.InternalError(c, "authentication failed", err)
			return
		}

		user, err := userRepo.FindOrCreateByProvider(c.Request.Context(), users.ProviderIdentity{
			Provider:   gothUser.Provider,
			ProviderID: gothUser.UserID,
			Email:      strings.ToLower(gothUser.Email),
			Name:       gothUser.Name,
			AvatarURL:  gothUser.AvatarURL,
		})
		if err != nil {
			errors.InternalError(c, "failed to create user", err)
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Email, user.Name)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(auth.TokenCookie, token, tokenCookieMaxAge, "/", "", secureCookie, true)

		logger.Info("user signed in", "user_id", user.ID, "provider", user.Provider)

		c.JSON(http.StatusOK, AuthResponse{
			User:  user,
			Token: token,
		})
	}
}

// GetCurrentUserHandler godoc
// @Summary Get current user
// @Description Get authenticated user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [get]
// @Security BearerAuth
func GetCurrentUserHandler(userRepo users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)

		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if stderrors.Is(err, users.ErrNotFound) {
			errors.NotFound(c, "user")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to load user", err)
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// LogoutHandler godoc
// @Summary Logout
// @Description Clear authentication session and token cookie
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/v1/auth/logout [post]
func LogoutHandler(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gothic.Logout(c.Writer, c.Request); err != nil {
			logger.ErrorErr(err, "failed to logout user from gothic session")
		}

		c.SetCookie(auth.TokenCookie, "", -1, "/", "", secureCookie, true)
		c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
	}
}
