package wordreminder

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
)

func WordReminderList(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	q, err := validators.ListQueryValidator(c.Request.URL.Query(), "word_reminders")
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	list, err := d.Store.ListWordRemindersByUser(c.Request.Context(), userID, q)
	if err != nil {
		response.Internal(c, "Failed to list word reminders", err)
		return
	}

	c.JSON(http.StatusOK, list)
}
