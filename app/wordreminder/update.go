package wordreminder

import (
	"net/http"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WordReminderUpdate rewrites a reminder and replaces its user words
func WordReminderUpdate(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)
	requestID := c.GetString("requestID")

	id, err := validators.IDValidator(c.Param("wordReminderId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid word reminder ID.")
		return
	}

	var data reminderBody
	if err := c.ShouldBindJSON(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	in, err := data.explicit(time.Now())
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := d.Composer.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		response.Internal(c, "Failed to update word reminder", err)
		return
	}

	response.Result(c, res, "wordReminder", http.StatusOK, http.StatusConflict)
}
