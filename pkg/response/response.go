// Package response writes the JSON bodies shared by every handler
package response

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error aborts the request with {"error", "requestID"}
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":     msg,
		"requestID": c.GetString("requestID"),
	})
}

// Internal hides err from the caller and logs it
func Internal(c *gin.Context, logMsg string, err error) {
	requestID := c.GetString("requestID")

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"requestID": requestID,
	})

	zap.L().Error(logMsg, zap.Error(err), zap.String("requestID", requestID))
}

// Message writes a business message body
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// Result writes a store result as {key: value, "message"}. NotFound becomes
// a 404 error; Conflict is written with conflictStatus.
func Result[T any](c *gin.Context, res store.Result[T], key string, okStatus, conflictStatus int) {
	switch res.Status {
	case store.StatusOK:
		c.JSON(okStatus, gin.H{key: res.Value, "message": res.Message})
	case store.StatusNotFound:
		Error(c, http.StatusNotFound, res.Message)
	case store.StatusConflict:
		if conflictStatus >= http.StatusBadRequest {
			Error(c, conflictStatus, res.Message)
			return
		}

		c.JSON(conflictStatus, gin.H{key: res.Value, "message": res.Message})
	}
}
