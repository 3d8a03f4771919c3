package feedback

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/internal/errors"
	"codeberg.org/satirist/server/internal/logger"
	"codeberg.org/satirist/server/satirist/feedback"
)

// SubmitHandler godoc
// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Feedback"
// @Success 201 {object} SubmitResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/feedback [post]
// @Security BearerAuth
func SubmitHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, name, ok := auth.GetIdentity(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		var req SubmitRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		entry, err := store.Submit(feedback.Submission{
			UserID:       userID,
			Email:        email,
			Name:         name,
			FeedbackType: feedback.Type(req.FeedbackType),
			Rating:       req.Rating,
			Message:      req.Message,
			UserAgent:    c.Request.UserAgent(),
		})
		if err != nil {
			if isValidation(err) {
				errors.BadRequest(c, err.Error(), nil)
				return
			}

			errors.InternalError(c, "failed to save feedback", err)
			return
		}

		logger.Info("feedback received", "id", entry.ID, "type", entry.FeedbackType, "user_id", userID)

		c.JSON(http.StatusCreated, SubmitResponse{
			Success: true,
			ID:      entry.ID,
			Message: "Thanks for your feedback!",
		})
	}
}

// DownloadHandler godoc
// @Summary Download all feedback as CSV
// @Tags feedback
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/feedback/download [get]
// @Security BearerAuth
func DownloadHandler(store Store, writeCSV CSVWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := store.List()
		if err != nil {
			errors.InternalError(c, "failed to read feedback", err)
			return
		}

		var buf bytes.Buffer
		if err := writeCSV(&buf, entries); err != nil {
			errors.InternalError(c, "failed to encode feedback", err)
			return
		}

		filename := fmt.Sprintf("feedback-%s.csv", time.Now().UTC().Format("2006-01-02"))

		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}

func isValidation(err error) bool {
	return stderrors.Is(err, feedback.ErrInvalidType) ||
		stderrors.Is(err, feedback.ErrInvalidRating) ||
		stderrors.Is(err, feedback.ErrMissingMessage)
}
