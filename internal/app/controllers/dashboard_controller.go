package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/services"
	"github.com/yigit/mentoraid/internal/middleware"
)

// DashboardController serves the overview page
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetDashboard returns stats and charts
// @Summary Dashboard overview
// @Description Headline stats and chart series over the current roster. reload=true regenerates the roster first.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param reload query bool false "Regenerate the roster first"
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	reload, _ := strconv.ParseBool(ctx.DefaultQuery("reload", "false"))

	resp, err := c.dashboardService.GetDashboard(ctx.Request.Context(), reload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
