package tutorial

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"drawing-tutor-backend/internal/models"
	"drawing-tutor-backend/internal/services"
	"drawing-tutor-backend/internal/utils"
	"drawing-tutor-backend/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Service       *services.TutorialService
	MaxUploadSize int64
}

func NewHandler(service *services.TutorialService, maxUploadSize int64) *Handler {
	return &Handler{
		Service:       service,
		MaxUploadSize: maxUploadSize,
	}
}

func (h *Handler) oversizeDetail() string {
	return fmt.Sprintf("Image size exceeds maximum allowed size of %dMB", h.MaxUploadSize/(1024*1024))
}

// GenerateTutorial godoc
// @Summary Generate a drawing tutorial
// @Description Generate a four-panel drawing tutorial from a topic or an uploaded photo
// @Tags tutorials
// @Accept json
// @Produce json
// @Param request body GenerateTutorialRequest true "Generation request"
// @Success 200 {object} TutorialResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /tutorials/generate [post]
func (h *Handler) GenerateTutorial(c *gin.Context) {
	var req GenerateTutorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
		return
	}

	if req.InputType == models.InputTypeTopic && req.Topic == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Topic is required for topic input type"))
		return
	}
	if req.InputType == models.InputTypeImage && req.Image == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Image is required for image input type"))
		return
	}

	var imageBytes []byte
	if req.Image != "" {
		var err error
		imageBytes, err = base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Image must be valid base64"))
			return
		}
		if int64(len(imageBytes)) > h.MaxUploadSize {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(h.oversizeDetail()))
			return
		}
	}

	result, err := h.Service.Generate(c.Request.Context(), services.GenerateParams{
		InputType:  req.InputType,
		Topic:      req.Topic,
		ImageBytes: imageBytes,
		APIKey:     req.APIKey,
		Model:      req.Model,
	})
	if err != nil {
		logger.Log.Error("Failed to generate tutorial", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to generate tutorial"))
		return
	}

	c.JSON(http.StatusOK, TutorialResponse{
		TutorialID:       result.TutorialID,
		Subject:          result.Subject,
		TutorialImageURL: result.TutorialImageURL,
		Steps:            result.Steps,
		CreatedAt:        result.CreatedAt,
	})
}

// GetTutorials godoc
// @Summary List tutorials
// @Description Get paginated tutorial history, newest first
// @Tags tutorials
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 50)" default(10)
// @Success 200 {object} TutorialListResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /tutorials [get]
func (h *Handler) GetTutorials(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid page number"))
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 50 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid limit number"))
		return
	}

	entries, total, pages, err := h.Service.List(c.Request.Context(), page, limit)
	if err != nil {
		logger.Log.Error("Failed to list tutorials", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve tutorials"))
		return
	}

	items := make([]TutorialListItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, TutorialListItem{
			TutorialID:   e.TutorialID,
			Subject:      e.Subject,
			ThumbnailURL: e.ThumbnailURL,
			CreatedAt:    e.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, TutorialListResponse{
		Tutorials: items,
		Total:     total,
		Page:      page,
		Pages:     pages,
	})
}

// GetTutorial godoc
// @Summary Get a tutorial by id
// @Tags tutorials
// @Produce json
// @Param id path string true "Tutorial ID"
// @Success 200 {object} TutorialResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /tutorials/{id} [get]
func (h *Handler) GetTutorial(c *gin.Context) {
	id := c.Param("id")

	result, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		logger.Log.Error("Failed to retrieve tutorial", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve tutorial"))
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Tutorial not found"))
		return
	}

	c.JSON(http.StatusOK, TutorialResponse{
		TutorialID:       result.TutorialID,
		Subject:          result.Subject,
		TutorialImageURL: result.TutorialImageURL,
		Steps:            result.Steps,
		CreatedAt:        result.CreatedAt,
	})
}

// UploadImage godoc
// @Summary Upload an image as multipart form data
// @Description Transcodes a multipart image upload to base64 for reuse with the generate endpoint
// @Tags tutorials
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} UploadImageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /tutorials/upload-image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("File is required"))
		return
	}

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("File must be an image"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Log.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to process image"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Log.Error("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to process image"))
		return
	}

	if int64(len(content)) > h.MaxUploadSize {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(h.oversizeDetail()))
		return
	}

	// Declared content type is not trusted, sniff the actual bytes too
	if !strings.HasPrefix(mimetype.Detect(content).String(), "image/") {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("File must be an image"))
		return
	}

	c.JSON(http.StatusOK, UploadImageResponse{
		Image: base64.StdEncoding.EncodeToString(content),
	})
}
