package userword

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
)

type updateBody struct {
	Learned *bool `json:"learned"`
}

func UserWordUpdate(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	id, err := validators.IDValidator(c.Param("userWordId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user word ID.")
		return
	}

	var data updateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		response.Error(c, http.StatusBadRequest, "'learned' must be a boolean.")
		return
	}

	if data.Learned == nil {
		response.Error(c, http.StatusBadRequest, "'learned' must be specified.")
		return
	}

	res, err := d.Store.SetLearned(c.Request.Context(), userID, id, *data.Learned)
	if err != nil {
		response.Internal(c, "Failed to update user word", err)
		return
	}

	response.Result(c, res, "userWord", http.StatusOK, http.StatusOK)
}
