package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"merchly/shop-api/internal/identity"
)

// fail writes the JSON error body for err. Typed business errors carry
// their own status and message; anything else is logged and reported as a
// generic 500 so internals never leak to the caller.
func fail(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	var ie *identity.Error
	if errors.As(err, &ie) {
		c.JSON(ie.Status, gin.H{
			"success":   false,
			"error":     ie.Message,
			"requestID": requestID,
		})
		return
	}

	zap.L().Error("Unexpected error", zap.Error(err), zap.String("requestID", requestID))

	c.JSON(http.StatusInternalServerError, gin.H{
		"success":   false,
		"error":     "Internal server error",
		"requestID": requestID,
	})
}

// failWith writes an explicit status/message error body.
func failWith(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success":   false,
		"error":     msg,
		"requestID": c.GetString("requestID"),
	})
}
