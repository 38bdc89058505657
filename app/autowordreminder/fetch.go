package autowordreminder

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"

	"github.com/gin-gonic/gin"
)

func AutoWordReminderFetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	res, err := d.Store.GetAutoWordReminderByUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "Failed to lookup auto word reminder", err)
		return
	}

	response.Result(c, res, "autoWordReminder", http.StatusOK, http.StatusConflict)
}
