package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response là envelope chung cho mọi endpoint
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success responses
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error responses
func Error(c *gin.Context, statusCode int, message, errMsg string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Error:   errMsg,
	})
}

// Common error responses
func BadRequest(c *gin.Context, message, errMsg string) {
	Error(c, http.StatusBadRequest, message, errMsg)
}

func NotFound(c *gin.Context, message, errMsg string) {
	Error(c, http.StatusNotFound, message, errMsg)
}

func Conflict(c *gin.Context, message, errMsg string) {
	Error(c, http.StatusConflict, message, errMsg)
}

func InternalServerError(c *gin.Context, message, errMsg string) {
	Error(c, http.StatusInternalServerError, message, errMsg)
}
