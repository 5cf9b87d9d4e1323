package image

import (
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adcraft/server/internal/model"
	apperrors "github.com/adcraft/server/internal/shared/errors"
	"github.com/adcraft/server/internal/shared/middleware"
)

// Handler exposes standalone image resolution and image retrieval.
type Handler struct {
	service *Service
}

// NewHandler creates an image handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers image routes on the limited group and the
// retrieval route on the open group. Serving stored files does not
// consume generation quota.
func (h *Handler) RegisterRoutes(limited, open *gin.RouterGroup) {
	limited.POST("/generate-image", h.GenerateImage)
	open.GET("/images/:file_name", h.GetImage)
}

// GenerateImage resolves a product image from an upload, a URL or the
// image model. Accepts JSON or multipart form bodies.
//
//	@Summary		Generate image
//	@Description	Resolve or generate a product image
//	@Tags			Image Generation
//	@Accept			json
//	@Accept			mpfd
//	@Produce		json
//	@Param			request	body		model.ImageGenerationRequest	true	"Image request"
//	@Success		200		{object}	model.ImageResult
//	@Failure		422		{object}	errors.ErrorResponse	"Invalid request"
//	@Failure		500		{object}	errors.ErrorResponse	"Image generation failed"
//	@Router			/generate-image [post]
func (h *Handler) GenerateImage(c *gin.Context) {
	in, appErr := bindImageRequest(c)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	result := h.service.Resolve(c.Request.Context(), *in)
	if result == nil {
		respondError(c, apperrors.NewAppError(
			"image_generation_failed",
			"image generation failed",
			http.StatusInternalServerError,
			apperrors.ErrGeneration,
		))
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetImage serves a stored image by file name.
//
//	@Summary		Get image
//	@Description	Retrieve a stored image by its file name
//	@Tags			Image Generation
//	@Produce		png
//	@Param			file_name	path	string	true	"Image file name"
//	@Success		200			"Image file"
//	@Failure		404			{object}	errors.ErrorResponse	"Image not found"
//	@Router			/images/{file_name} [get]
func (h *Handler) GetImage(c *gin.Context) {
	name := c.Param("file_name")

	path, err := h.service.store.Path(name)
	if err != nil || !h.service.store.Exists(name) {
		respondError(c, apperrors.NotFound("image"))
		return
	}

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		c.Header("Content-Type", ct)
	}
	c.File(path)
}

// bindImageRequest reads an image request from either a JSON body or a
// multipart form carrying the uploaded file under "file". A request
// that names no source at all defaults to generation, it is what the
// endpoint is for.
func bindImageRequest(c *gin.Context) (*ResolveInput, *apperrors.AppError) {
	in := &ResolveInput{}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in.ProductName = strings.TrimSpace(c.PostForm("product_name"))
		in.BrandName = strings.TrimSpace(c.PostForm("brand_name"))
		in.Description = strings.TrimSpace(c.PostForm("description"))
		in.ImageURL = strings.TrimSpace(c.PostForm("image_url"))
		if v := c.PostForm("generate_image"); v != "" {
			gen, err := strconv.ParseBool(v)
			if err != nil {
				return nil, apperrors.Validation("generate_image must be a boolean")
			}
			in.GenerateImage = gen
		}
		if fh, err := c.FormFile("file"); err == nil {
			in.Upload = fh
		}
		if in.ProductName == "" {
			return nil, apperrors.Validation("product_name is required")
		}
		if in.Upload == nil && in.ImageURL == "" && !in.GenerateImage {
			in.GenerateImage = true
		}
		return in, nil
	}

	var req model.ImageGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	in.ProductName = req.ProductName
	in.BrandName = req.BrandName
	in.Description = req.Description
	in.ImageURL = req.ImageURL
	in.GenerateImage = req.GenerateImage

	if in.ImageURL == "" && !in.GenerateImage {
		in.GenerateImage = true
	}
	return in, nil
}

func respondError(c *gin.Context, appErr *apperrors.AppError) {
	requestID := middleware.GetRequestID(c)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	c.JSON(appErr.StatusCode, appErr.ToResponse(requestID))
}
