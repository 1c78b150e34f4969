package utils

import (
	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, code int, message string, err error) {
	response := APIResponse{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(code, response)
}

// ConfigErrorResponse reports a missing-credential failure so the caller can
// render setup guidance instead of a generic 5xx message.
func ConfigErrorResponse(c *gin.Context, message string, err error) {
	c.JSON(500, gin.H{
		"success": false,
		"error":   "configuration_error",
		"message": message,
		"details": err.Error(),
	})
}
