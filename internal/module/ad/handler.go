package ad

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adcraft/server/internal/model"
	apperrors "github.com/adcraft/server/internal/shared/errors"
	"github.com/adcraft/server/internal/shared/middleware"
)

// Handler exposes ad generation over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates an ad generation handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers ad generation routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/generate", h.Generate)
	r.POST("/generate-stream", h.GenerateStream)
}

// Generate handles non-streaming ad generation.
//
//	@Summary		Generate advertisement
//	@Description	Generate advertisement content for a product
//	@Tags			Advertisement
//	@Accept			json
//	@Produce		json
//	@Param			request	body		model.GenerationRequest	true	"Generation request"
//	@Success		200		{object}	model.GenerationResponse
//	@Failure		422		{object}	errors.ErrorResponse	"Invalid request"
//	@Failure		403		{object}	errors.ErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	errors.ErrorResponse	"Generation failed"
//	@Router			/generate [post]
func (h *Handler) Generate(c *gin.Context) {
	req, appErr := bindGenerationRequest(c)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateStream handles streaming ad generation. The response is
// newline-delimited JSON stream events over text/plain with buffering
// disabled end to end, so fragments reach the client as produced.
//
//	@Summary		Generate advertisement (streaming)
//	@Description	Generate advertisement content as a newline-delimited JSON event stream
//	@Tags			Advertisement
//	@Accept			json
//	@Produce		plain
//	@Param			request	body	model.GenerationRequest	true	"Generation request"
//	@Success		200		"Stream of generation events"
//	@Failure		422		{object}	errors.ErrorResponse	"Invalid request"
//	@Failure		403		{object}	errors.ErrorResponse	"Rate limit exceeded"
//	@Router			/generate-stream [post]
func (h *Handler) GenerateStream(c *gin.Context) {
	req, appErr := bindGenerationRequest(c)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	enc := json.NewEncoder(c.Writer)
	for ev := range h.service.GenerateStream(c.Request.Context(), req) {
		if err := enc.Encode(ev); err != nil {
			// Client went away; the service observes the cancelled
			// context and stops producing.
			return
		}
		c.Writer.Flush()
	}
}

// bindGenerationRequest binds and validates the request body, applying
// type and tone defaults before the values reach the prompt registry.
func bindGenerationRequest(c *gin.Context) (*model.GenerationRequest, *apperrors.AppError) {
	var req model.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if req.AdType == "" {
		req.AdType = model.DefaultAdType
	} else if _, err := model.ParseAdType(string(req.AdType)); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if req.AdTone == "" {
		req.AdTone = model.DefaultAdTone
	} else if _, err := model.ParseAdTone(string(req.AdTone)); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	return &req, nil
}

// handleError maps a service error onto the wire envelope.
func handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err.Error(), err)
	}
	respondError(c, appErr)
}

func respondError(c *gin.Context, appErr *apperrors.AppError) {
	requestID := middleware.GetRequestID(c)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	c.JSON(appErr.StatusCode, appErr.ToResponse(requestID))
}
