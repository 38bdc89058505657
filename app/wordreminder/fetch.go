package wordreminder

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
)

func WordReminderFetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	id, err := validators.IDValidator(c.Param("wordReminderId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid word reminder ID.")
		return
	}

	res, err := d.Store.GetWordReminder(c.Request.Context(), userID, id)
	if err != nil {
		response.Internal(c, "Failed to lookup word reminder", err)
		return
	}

	response.Result(c, res, "wordReminder", http.StatusOK, http.StatusConflict)
}
