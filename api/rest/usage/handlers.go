package usage

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/internal/errors"
	"codeberg.org/satirist/server/internal/quota"
)

// CheckHandler godoc
// @Summary Check today's comic allowance
// @Description Returns how many comics the signed-in user created today and how many remain. Whitelisted users report -1 as limit
// @Tags usage
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/check-limit [get]
// @Router /api/v1/check-limit [post]
// @Router /api/v1/check-usage [get]
// @Security BearerAuth
func CheckHandler(quotas QuotaChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, _, ok := auth.GetIdentity(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		status, err := quotas.CheckDailyLimit(c.Request.Context(), quota.Identity{UserID: userID, Email: email})
		if err != nil {
			errors.InternalError(c, "failed to check usage", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Success:   true,
			Allowed:   status.Allowed,
			Current:   status.Current,
			Limit:     status.Limit,
			Remaining: status.Remaining,
			Message:   status.Message,
		})
	}
}
