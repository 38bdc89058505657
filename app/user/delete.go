package user

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserDelete removes a user with everything they own and returns the user
// words that were deleted
func UserDelete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	res, err := d.Store.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "Failed to delete user", err)
		return
	}

	response.Result(c, res, "userWords", http.StatusOK, http.StatusConflict)
}
