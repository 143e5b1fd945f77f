package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/middleware"
	"github.com/yigit/mentoraid/internal/pkg/notify"
)

const defaultNotificationLimit = 20

// NotificationController serves recent notifications for clients that do
// not hold a WebSocket open
type NotificationController struct {
	bus *notify.Bus
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(bus *notify.Bus) *NotificationController {
	return &NotificationController{bus: bus}
}

// ListNotifications returns the newest notifications visible to the session
// @Summary Recent notifications
// @Description Returns the newest notifications addressed to the current session or broadcast to everyone
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of notifications" default(20)
// @Success 200 {object} dto.APIResponse{data=[]notify.Notification} "Notifications"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultNotificationLimit)))
	if err != nil || limit <= 0 {
		limit = defaultNotificationLimit
	}

	recent := c.bus.Recent(ctx.GetString(middleware.ContextSessionID), limit)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(recent))
}
