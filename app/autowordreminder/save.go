package autowordreminder

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/service"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func AutoWordReminderCreate(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	data, fields, ok := bindSettings(c)
	if !ok {
		return
	}

	res, err := d.Store.CreateAutoWordReminder(c.Request.Context(), userID, fields)
	if err != nil {
		response.Internal(c, "Failed to create auto word reminder", err)
		return
	}

	respond(c, d, userID, res, *data.CreateNow, http.StatusCreated)
}

func AutoWordReminderUpdate(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	id, err := validators.IDValidator(c.Param("autoWordReminderId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid auto word reminder ID.")
		return
	}

	data, fields, ok := bindSettings(c)
	if !ok {
		return
	}

	res, err := d.Store.UpdateAutoWordReminder(c.Request.Context(), userID, id, fields)
	if err != nil {
		response.Internal(c, "Failed to update auto word reminder", err)
		return
	}

	respond(c, d, userID, res, *data.CreateNow, http.StatusOK)
}

func bindSettings(c *gin.Context) (*settingsBody, store.AutoWordReminderFields, bool) {
	var data settingsBody
	if err := c.ShouldBindJSON(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return nil, store.AutoWordReminderFields{}, false
	}

	fields, err := data.fields()
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return nil, store.AutoWordReminderFields{}, false
	}

	return &data, fields, true
}

// respond writes the saved settings. With createNow a word reminder is
// generated from them and returned alongside.
func respond(c *gin.Context, d *internal.Deps, userID uint, res store.Result[*model.AutoWordReminder], createNow bool, okStatus int) {
	if !res.OK() || !createNow {
		response.Result(c, res, "autoWordReminder", okStatus, http.StatusConflict)
		return
	}

	generated, err := d.Composer.Auto(c.Request.Context(), userID, service.AutoReminderFrom(res.Value))
	if err != nil {
		response.Internal(c, "Failed to generate word reminder", err)
		return
	}

	if !generated.OK() {
		response.Result(c, generated, "wordReminder", okStatus, http.StatusConflict)
		return
	}

	c.JSON(okStatus, gin.H{
		"autoWordReminder": res.Value,
		"wordReminder":     generated.Value,
		"message":          res.Message,
	})
}
