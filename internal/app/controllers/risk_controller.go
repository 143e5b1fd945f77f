package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/risk"
	"github.com/yigit/mentoraid/internal/app/services"
	"github.com/yigit/mentoraid/internal/middleware"
)

// RiskController exposes the risk heuristics. Request bodies are bound by
// middleware.ValidateRequest on the route.
type RiskController struct {
	riskService services.RiskService
}

// NewRiskController creates a new RiskController
func NewRiskController(riskService services.RiskService) *RiskController {
	return &RiskController{riskService: riskService}
}

// Score applies the roster scoring rule
// @Summary Score risk
// @Description Scores attendance, average marks and fee status: (100-attendance)*0.6 + (100-marks)*0.4 + fee penalty
// @Tags risk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RiskScoreRequest true "Scoring input"
// @Success 200 {object} dto.APIResponse{data=dto.RiskScoreResponse} "Score"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /risk/score [post]
func (c *RiskController) Score(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.RiskScoreRequest](ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format"),
		))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.riskService.Score(*req)))
}

// Predict runs the enrollment-form predictor
// @Summary Predict dropout risk
// @Description Rule-based prediction over the enrollment form. Missing fields count as zero.
// @Tags risk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body risk.PredictorInput true "Enrollment form"
// @Success 200 {object} dto.APIResponse{data=risk.Prediction} "Prediction"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /risk/predict [post]
func (c *RiskController) Predict(ctx *gin.Context) {
	in, ok := middleware.ValidatedBody[risk.PredictorInput](ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format"),
		))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.riskService.Predict(*in)))
}

// PredictorDefaults returns the form defaults
// @Summary Predictor defaults
// @Description Returns the enrollment form values the predictor starts from
// @Tags risk
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=risk.PredictorInput} "Defaults"
// @Router /risk/predict/defaults [get]
func (c *RiskController) PredictorDefaults(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.riskService.PredictorDefaults()))
}
