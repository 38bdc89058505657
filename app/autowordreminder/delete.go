package autowordreminder

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
)

func AutoWordReminderDelete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	id, err := validators.IDValidator(c.Param("autoWordReminderId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid auto word reminder ID.")
		return
	}

	res, err := d.Store.DeleteAutoWordReminder(c.Request.Context(), userID, id)
	if err != nil {
		response.Internal(c, "Failed to delete auto word reminder", err)
		return
	}

	response.Result(c, res, "autoWordReminder", http.StatusOK, http.StatusConflict)
}
