package middleware

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewUserIDMiddleware validates the :userId path parameter and makes sure
// the user exists. The parsed id is stored as userID.
func NewUserIDMiddleware(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		userID, err := validators.IDValidator(c.Param("userId"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid user ID.",
				"requestID": requestID,
			})
			return
		}

		found, err := s.Exists(c.Request.Context(), store.EntityUser, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !found {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     store.EntityUser.Missing(userID),
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
