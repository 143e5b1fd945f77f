package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/services"
	"github.com/yigit/mentoraid/internal/middleware"
	"github.com/yigit/mentoraid/internal/pkg/textgen"
)

// InsightController serves generated narratives and guardian emails
type InsightController struct {
	insightService services.InsightService
	emailService   services.EmailService
}

// NewInsightController creates a new InsightController
func NewInsightController(insightService services.InsightService, emailService services.EmailService) *InsightController {
	return &InsightController{
		insightService: insightService,
		emailService:   emailService,
	}
}

// GenerateInsight produces one narrative for a student
// @Summary Generate insight
// @Description Generates a risk story, resources, email draft, intervention plan or simplified syllabus. Only the syllabus kind reads the input text.
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param kind path string true "Insight kind" Enums(risk_story, resources, email_draft, intervention_plan, syllabus)
// @Param request body dto.InsightRequest false "Input text"
// @Success 200 {object} dto.APIResponse{data=dto.InsightResponse} "Generated text"
// @Failure 400 {object} dto.ErrorResponse "Empty syllabus text"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student or kind not found"
// @Failure 502 {object} dto.ErrorResponse "Generation failed"
// @Router /students/{id}/insights/{kind} [post]
func (c *InsightController) GenerateInsight(ctx *gin.Context) {
	var req dto.InsightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.insightService.Generate(ctx.Request.Context(), ctx.Param("id"), textgen.Kind(ctx.Param("kind")), req.Input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SendEmail delivers an email draft to a guardian
// @Summary Send guardian email
// @Description Sends an email about the student to a guardian
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.SendEmailRequest true "Email"
// @Success 200 {object} dto.APIResponse{data=dto.SendEmailResponse} "Email sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid email"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 502 {object} dto.ErrorResponse "Delivery failed"
// @Router /students/{id}/email [post]
func (c *InsightController) SendEmail(ctx *gin.Context) {
	var req dto.SendEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.emailService.SendToGuardian(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
