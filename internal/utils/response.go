package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/types"
	"github.com/sednex/community-backend/pkg/logger"
	"gorm.io/gorm"
)

// SendSuccess writes {success:true, message, ...payload}.
func SendSuccess(c *gin.Context, statusCode int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for key, value := range payload {
		body[key] = value
	}
	c.JSON(statusCode, body)
}

func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

func SendValidationError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

// SendAppError answers with the status matching err's kind. Anything that
// is not an AppError is logged and reported as a 500 with fallback as the
// message.
func SendAppError(c *gin.Context, err error, fallback string) {
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		SendError(c, StatusFor(appErr.Kind), appErr.Message)
		return
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		SendError(c, http.StatusConflict, "Resource already exists")
		return
	}

	logger.WithFields(logger.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"error":  err.Error(),
	}).Error(fallback)
	SendError(c, http.StatusInternalServerError, fallback)
}

func StatusFor(kind types.ErrorKind) int {
	switch kind {
	case types.KindBadRequest:
		return http.StatusBadRequest
	case types.KindUnauthorized:
		return http.StatusUnauthorized
	case types.KindForbidden:
		return http.StatusForbidden
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
