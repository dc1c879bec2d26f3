package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/validation"
)

const internalErrorMessage = "Internal server error"

// requireCaller returns the authenticated user id or writes a 401.
func requireCaller(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return "", false
	}
	return userID, true
}

// bindJSON binds the request body and writes a 400 with the first readable message on failure.
func bindJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Failed to bind JSON", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail(validation.BindingMessage(err)))
		return false
	}
	return true
}

// bindOptionalJSON binds the body when one is present. Every field of req must be optional.
func bindOptionalJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, logger, req)
}

// validationMessage extracts the client facing text of a validation failure.
func validationMessage(err error) string {
	var verrs apperrors.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Error()
	}
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// statusFor maps a service error onto an HTTP status for the CRUD endpoints.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the matching failure envelope.
// Unexpected errors are never echoed to the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, dto.Fail(internalErrorMessage))
	case http.StatusBadRequest:
		logger.Warn("Rejected request to "+action, slog.String("error", err.Error()))
		c.JSON(status, dto.Fail(validationMessage(err)))
	case http.StatusNotFound:
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(status, dto.Fail(apperrors.ErrNotFound.Error()))
	case http.StatusServiceUnavailable:
		logger.Warn("Feature unavailable", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(status, dto.Fail("Service unavailable"))
	default:
		logger.Warn("Request to "+action+" refused", slog.Int("status", status), slog.String("error", err.Error()))
		c.JSON(status, dto.Fail(validationMessage(err)))
	}
}
