package wordreminder

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
)

func WordReminderDelete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	id, err := validators.IDValidator(c.Param("wordReminderId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid word reminder ID.")
		return
	}

	res, err := d.Store.DeleteWordReminder(c.Request.Context(), userID, id)
	if err != nil {
		response.Internal(c, "Failed to delete word reminder", err)
		return
	}

	response.Result(c, res, "wordReminder", http.StatusOK, http.StatusConflict)
}

// WordReminderDeleteAll removes every reminder a user owns
func WordReminderDeleteAll(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	reminders, err := d.Store.DeleteWordRemindersByUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "Failed to delete word reminders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wordReminders": reminders,
		"message":       "Success!",
	})
}
