package handler

import (
	"errors"
	"net/http"

	"workflowhub/internal/logger"
	"workflowhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func statusFor(code string) int {
	switch code {
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeVersionConflict:
		return http.StatusConflict
	case service.CodeTransitionNotAllowed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders a service error. Anything else is reported as a
// generic failure and logged.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := statusFor(svcErr.Code)
		if status >= http.StatusInternalServerError {
			logger.Error("HTTP: operation failed", err, zap.String("path", c.FullPath()))
			c.JSON(status, ErrorResponse{Error: svcErr.Code, Message: "operation failed"})
			return
		}
		logger.Warn("HTTP: business error",
			zap.String("error_code", svcErr.Code),
			zap.Int("http_status", status))
		c.JSON(status, ErrorResponse{Error: svcErr.Code, Message: svcErr.Message, Details: svcErr.Details})
		return
	}

	logger.Error("HTTP: operation failed", err, zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: service.CodePersistence, Message: "operation failed"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   service.CodeValidation,
		Message: "Invalid request",
		Details: map[string]any{"reason": err.Error()},
	})
}

// paramID parses a uuid path parameter, writing a 400 when it is malformed.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   service.CodeValidation,
			Message: "Invalid " + name + " format",
			Details: map[string]any{"field": name},
		})
		return uuid.Nil, false
	}
	return id, true
}
