package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/app/export"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/services"
	"github.com/yigit/mentoraid/internal/middleware"
	"github.com/yigit/mentoraid/internal/pkg/helpers"
)

// StudentController handles roster endpoints
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// ListStudents returns a filtered page of the roster
// @Summary List students
// @Description Returns the roster filtered by search text, risk level, class and department, sorted by risk score
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive match on name, email or student code"
// @Param riskLevel query string false "Risk level" Enums(all, low, medium, high)
// @Param class query string false "Class, e.g. 10A"
// @Param department query string false "Department, e.g. Science"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Students"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var filter dto.StudentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.studentService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetStudent returns one student with the detail view data
// @Summary Get student
// @Description Returns a student with metrics and progress charts
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentDetailResponse} "Student detail"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	detail, err := c.studentService.GetDetail(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// RegenerateRoster replaces the roster with new mock data
// @Summary Regenerate roster
// @Description Generates a fresh roster; intervention histories start over
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "New roster summary"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /students/regenerate [post]
func (c *StudentController) RegenerateRoster(ctx *gin.Context) {
	snap, err := c.studentService.Regenerate(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(services.ComputeStats(snap.Students())))
}

// ExportStudents downloads the filtered roster as CSV
// @Summary Export students
// @Description Downloads the filtered roster as CSV in view order
// @Tags students
// @Produce text/csv
// @Security BearerAuth
// @Param search query string false "Case-insensitive match on name, email or student code"
// @Param riskLevel query string false "Risk level" Enums(all, low, medium, high)
// @Param class query string false "Class"
// @Param department query string false "Department"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /students/export [get]
func (c *StudentController) ExportStudents(ctx *gin.Context) {
	var filter dto.StudentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	var buf bytes.Buffer
	rows, err := c.studentService.ExportCSV(ctx.Request.Context(), filter, &buf)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	ctx.Header("X-Total-Count", strconv.Itoa(rows))
	ctx.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
