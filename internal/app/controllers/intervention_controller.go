package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/services"
	"github.com/yigit/mentoraid/internal/middleware"
)

// InterventionController handles the intervention log of a student
type InterventionController struct {
	interventionService services.InterventionService
	logger              zerolog.Logger
}

// NewInterventionController creates a new InterventionController
func NewInterventionController(interventionService services.InterventionService, logger zerolog.Logger) *InterventionController {
	return &InterventionController{
		interventionService: interventionService,
		logger:              logger,
	}
}

// ListInterventions returns a student's intervention history
// @Summary List interventions
// @Description Returns the intervention history of a student, newest first
// @Tags interventions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Intervention} "Interventions"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/interventions [get]
func (c *InterventionController) ListInterventions(ctx *gin.Context) {
	history, err := c.interventionService.List(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(history))
}

// LogIntervention records a new intervention by the signed-in user
// @Summary Log intervention
// @Description Adds an intervention to the student's history. Title and description are required.
// @Tags interventions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.CreateInterventionRequest true "Intervention"
// @Success 201 {object} dto.APIResponse{data=models.Intervention} "Intervention logged"
// @Failure 400 {object} dto.ErrorResponse "Missing fields"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/interventions [post]
func (c *InterventionController) LogIntervention(ctx *gin.Context) {
	var req dto.CreateInterventionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	mentor, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		))
		return
	}

	intervention, err := c.interventionService.Log(ctx.Request.Context(), ctx.Param("id"), mentor, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(intervention))
}
