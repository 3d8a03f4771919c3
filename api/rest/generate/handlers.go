package generate

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/satirist/server/internal/auth"
	"codeberg.org/satirist/server/internal/comics"
	"codeberg.org/satirist/server/internal/errors"
	"codeberg.org/satirist/server/internal/llm"
	"codeberg.org/satirist/server/internal/logger"
	"codeberg.org/satirist/server/internal/quota"
	"codeberg.org/satirist/server/internal/satire"
)

const missingSituation = "situation is required"

// QuoteHandler godoc
// @Summary Generate a satirical quote
// @Description Writes a short caption (at most 120 characters) for a political situation
// @Tags generate
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Situation"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/generate-quote [post]
func QuoteHandler(writer Writer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuoteRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if strings.TrimSpace(req.Situation) == "" {
			errors.BadRequest(c, missingSituation, nil)
			return
		}

		quote, err := writer.Quote(c.Request.Context(), req.Situation)
		if err != nil {
			textFailure(c, "failed to generate quote, please try again", err)
			return
		}

		c.JSON(http.StatusOK, QuoteResponse{Success: true, Quote: quote})
	}
}

// DescriptionHandler godoc
// @Summary Generate a scene description
// @Description Describes the cartoon panel for a situation and optional quote
// @Tags generate
// @Accept json
// @Produce json
// @Param request body DescriptionRequest true "Situation and quote"
// @Success 200 {object} DescriptionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/generate-description [post]
func DescriptionHandler(writer Writer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DescriptionRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if strings.TrimSpace(req.Situation) == "" {
			errors.BadRequest(c, missingSituation, nil)
			return
		}

		description, err := writer.Description(c.Request.Context(), req.Situation, req.Quote)
		if err != nil {
			textFailure(c, "failed to generate description, please try again", err)
			return
		}

		c.JSON(http.StatusOK, DescriptionResponse{Success: true, Description: description})
	}
}

// ComicHandler godoc
// @Summary Generate a cartoon
// @Description Produces the cartoon image. Falls back to the SVG placeholder when no image provider succeeds
// @Tags generate
// @Accept json
// @Produce json
// @Param request body ComicRequest true "Comic parameters"
// @Success 200 {object} ComicResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.QuotaErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/generate-comic [post]
// @Security BearerAuth
func ComicHandler(generator ComicGenerator, quotas QuotaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, _, ok := auth.GetIdentity(c)
		if !ok {
			errors.Unauthorized(c, "sign in to create comics")
			return
		}

		ctx := c.Request.Context()
		identity := quota.Identity{UserID: userID, Email: email}

		status, err := quotas.CheckDailyLimit(ctx, identity)
		if err != nil {
			errors.InternalError(c, "failed to check usage", err)
			return
		}

		if !status.Allowed {
			errors.QuotaExceeded(c, status.Current, status.Limit, status.Message)
			return
		}

		var req ComicRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if strings.TrimSpace(req.Situation) == "" {
			errors.BadRequest(c, missingSituation, nil)
			return
		}

		comic, err := generator.Generate(ctx, comics.Request{
			Situation:   req.Situation,
			Quote:       req.Quote,
			Description: req.Description,
			Characters:  req.Characters,
			Setting:     req.Setting,
			Tone:        req.Tone,
			Style:       req.Style,
		})
		if err != nil {
			textFailure(c, "failed to generate comic, please try again", err)
			return
		}

		// best effort: the comic is already made
		if err := quotas.IncrementCount(ctx, identity); err != nil {
			logger.ErrorErr(err, "failed to record comic usage", "user_id", userID)
		}

		logger.Info("comic generated",
			"user_id", userID,
			"comic_id", comic.ID,
			"ai_generated", comic.AIGenerated,
			"provider", comic.Provider,
		)

		c.JSON(http.StatusOK, ComicResponse{Success: true, Comic: comic})
	}
}

func textFailure(c *gin.Context, message string, err error) {
	switch {
	case stderrors.Is(err, satire.ErrEmptySituation):
		errors.BadRequest(c, missingSituation, nil)
	case stderrors.Is(err, llm.ErrUnavailable):
		errors.ServiceUnavailable(c, "text generation is not configured")
	default:
		errors.UpstreamFailure(c, message, err)
	}
}
