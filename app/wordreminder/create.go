package wordreminder

import (
	"net/http"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WordReminderCreate builds a reminder either from the user words listed in
// the body or, with auto set, from a selection of the user's dictionary
func WordReminderCreate(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)
	requestID := c.GetString("requestID")

	var data reminderBody
	if err := c.ShouldBindJSON(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var (
		res store.Result[*model.WordReminder]
		err error
	)

	if data.Auto {
		in, verr := data.auto()
		if verr != nil {
			response.Error(c, http.StatusBadRequest, verr.Error())
			return
		}

		res, err = d.Composer.Auto(c.Request.Context(), userID, in)
	} else {
		in, verr := data.explicit(time.Now())
		if verr != nil {
			response.Error(c, http.StatusBadRequest, verr.Error())
			return
		}

		res, err = d.Composer.Explicit(c.Request.Context(), userID, in)
	}

	if err != nil {
		response.Internal(c, "Failed to create word reminder", err)
		return
	}

	response.Result(c, res, "wordReminder", http.StatusOK, http.StatusConflict)
}
