package waitlist

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/errors"
	"codeberg.org/satirist/server/internal/logger"
	"codeberg.org/satirist/server/satirist/waitlist"
)

// JoinRequest is the body of POST /waitlist
type JoinRequest struct {
	Email string `json:"email" binding:"required,max=320"`
	Name  string `json:"name" binding:"max=200"`
}

type JoinResponse struct {
	Success  bool   `json:"success"`
	Position int    `json:"position"`
	Message  string `json:"message"`
}

type Store interface {
	Join(email, name string) (waitlist.Entry, bool, error)
}

// JoinHandler godoc
// @Summary Join the waitlist
// @Description Adds an email to the waitlist. Repeat submissions return the original position
// @Tags waitlist
// @Accept json
// @Produce json
// @Param request body JoinRequest true "Contact"
// @Success 200 {object} JoinResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/waitlist [post]
func JoinHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		entry, existing, err := store.Join(req.Email, req.Name)
		if err != nil {
			if stderrors.Is(err, waitlist.ErrInvalidEmail) {
				errors.BadRequest(c, err.Error(), nil)
				return
			}

			errors.InternalError(c, "failed to join waitlist", err)
			return
		}

		message := fmt.Sprintf("You're #%d on the waitlist. We'll email you when a seat opens.", entry.Position)
		if existing {
			message = fmt.Sprintf("You're already on the waitlist at #%d.", entry.Position)
		} else {
			logger.Info("waitlist joined", "position", entry.Position)
		}

		c.JSON(http.StatusOK, JoinResponse{
			Success:  true,
			Position: entry.Position,
			Message:  message,
		})
	}
}

func RegisterRoutes(router *gin.RouterGroup, store Store, throttle gin.HandlerFunc) {
	if throttle != nil {
		router.POST("/waitlist", throttle, JoinHandler(store))
		return
	}

	router.POST("/waitlist", JoinHandler(store))
}
