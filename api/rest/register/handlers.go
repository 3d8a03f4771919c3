package register

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/internal/errors"
	"codeberg.org/satirist/server/internal/quota"
)

type Response struct {
	Success    bool   `json:"success"`
	UserNumber int    `json:"userNumber"`
	Message    string `json:"message"`
}

type Registrar interface {
	RegisterUser(ctx context.Context, id quota.Identity) (*quota.Registration, error)
}

// Handler godoc
// @Summary Claim an MVP seat
// @Description Assigns the next registration number. Repeat calls return the number already assigned. At capacity the client should offer the waitlist
// @Tags register
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.RegistrationErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/mvp-register [post]
// @Security BearerAuth
func Handler(registrar Registrar) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, _, ok := auth.GetIdentity(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		reg, err := registrar.RegisterUser(c.Request.Context(), quota.Identity{UserID: userID, Email: email})
		if err != nil {
			if stderrors.Is(err, quota.ErrCapacityReached) {
				errors.RegistrationClosed(c, "All MVP seats are taken. Join the waitlist and we'll let you know.")
				return
			}

			errors.InternalError(c, "failed to register", err)
			return
		}

		message := fmt.Sprintf("Welcome aboard! You are user #%d.", reg.Number)
		if reg.Existing {
			message = fmt.Sprintf("You are already registered as user #%d.", reg.Number)
		}

		c.JSON(http.StatusOK, Response{
			Success:    true,
			UserNumber: reg.Number,
			Message:    message,
		})
	}
}

func RegisterRoutes(router *gin.RouterGroup, registrar Registrar) {
	router.POST("/mvp-register", auth.AuthMiddleware(), Handler(registrar))
}
