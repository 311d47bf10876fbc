package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "residual-hub.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			appErr = domainerrors.NotFound(err.Error())
		case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrInvalidMonth):
			appErr = domainerrors.BadRequest(err.Error())
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			appErr = domainerrors.Conflict(err.Error())
		default:
			// Default to Internal Server Error
			appErr = domainerrors.InternalError(err)
		}
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

// ErrorWithStatus sends an error response with a specific status and message
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}
