package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/services"
	"github.com/yigit/mentoraid/internal/middleware"
)

// UploadController receives roster data files
type UploadController struct {
	uploadService services.UploadService
	logger        zerolog.Logger
}

// NewUploadController creates a new UploadController
func NewUploadController(uploadService services.UploadService, logger zerolog.Logger) *UploadController {
	return &UploadController{
		uploadService: uploadService,
		logger:        logger,
	}
}

// Upload stores CSV and Excel files for processing
// @Summary Upload data files
// @Description Accepts .csv, .xlsx and .xls files up to 10MB each. Other files are skipped. Processing completes in the background and is announced as a notification.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "Data files"
// @Success 202 {object} dto.APIResponse{data=dto.UploadResponse} "Upload accepted"
// @Failure 400 {object} dto.ErrorResponse "No supported files"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /uploads [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	var files []*multipart.FileHeader

	form, err := ctx.MultipartForm()
	switch {
	case err == nil:
		files = form.File["files"]
	case errors.Is(err, http.ErrNotMultipart):
		// No form at all is reported like an empty selection
	default:
		c.logger.Warn().Err(err).Msg("Invalid multipart form")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid multipart form")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.uploadService.Upload(ctx.Request.Context(), files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.NewSuccessResponse(resp))
}
