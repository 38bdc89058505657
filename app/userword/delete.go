package userword

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
)

func UserWordDelete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	id, err := validators.IDValidator(c.Param("userWordId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user word ID.")
		return
	}

	res, err := d.Store.DeleteUserWord(c.Request.Context(), userID, id)
	if err != nil {
		response.Internal(c, "Failed to delete user word", err)
		return
	}

	response.Result(c, res, "userWord", http.StatusOK, http.StatusOK)
}
