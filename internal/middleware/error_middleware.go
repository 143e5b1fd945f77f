package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
)

// errorMapping ties a sentinel error to its HTTP response
type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Checked in order; the first match wins
var errorMappings = []errorMapping{
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrUnknownInsightKind, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Unknown insight kind"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Conflict"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrUnknownProvider, http.StatusBadRequest, dto.ErrorCodeUnknownProvider, "Unknown login provider"},
	{apperrors.ErrSessionNotFound, http.StatusUnauthorized, dto.ErrorCodeSessionNotFound, "Session not found"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token format"},
	{apperrors.ErrEmptySyllabus, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrNoFiles, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrUnsupportedFiles, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"},
	{apperrors.ErrGenerationFailed, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "Text generation failed"},
	{apperrors.ErrDeliveryFailed, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "Email delivery failed"},
	{context.Canceled, StatusClientClosedRequest, dto.ErrorCodeRequestCancelled, "Request cancelled"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, dto.ErrorCodeRequestCancelled, "Request timed out"},
}

// StatusClientClosedRequest is reported when the client went away mid-request
const StatusClientClosedRequest = 499

// HandleAPIError handles common API errors and returns appropriate responses.
// A CustomError message replaces the generic one so the dashboard can show it.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			status = m.status
			errorDetail = dto.NewErrorDetail(m.code, m.message)
			break
		}
	}

	if msg := apperrors.UserMessage(err); msg != "" {
		errorDetail.Message = msg
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityCritical)
	}

	c.JSON(status, dto.APIResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	})
}
