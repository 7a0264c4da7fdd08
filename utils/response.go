package utils

import (
	"auction-market/internal/auctionerrors"

	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response. The kind field names the
// error classification so clients can branch without parsing the message.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"kind":    auctionerrors.KindOf(err).String(),
		"error":   err.Error(),
	})
}
