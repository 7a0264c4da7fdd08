package server

import (
	model "auction-market/internal/models"
	"auction-market/services/auction/helpers"
	"auction-market/utils"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// IdentityMiddleware carries the upstream gateway's authenticated identity
// into the request context. Authentication itself happens before this
// service; absent headers simply yield an anonymous identity.
func IdentityMiddleware(c *gin.Context) {
	c.Set(helpers.IdentityKey, model.Identity{
		UserID:  c.GetHeader("X-User-ID"),
		IsAdmin: c.GetHeader("X-User-Admin") == "true",
	})
	c.Next()
}
