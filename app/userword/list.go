package userword

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
)

var sortTables = []string{"user_words", "words"}

func UserWordList(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	q, err := validators.ListQueryValidator(c.Request.URL.Query(), sortTables...)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	opts := store.ListUserWordsOptions{Query: q}

	if v, ok := c.GetQuery("learned"); ok {
		learned, err := strconv.ParseBool(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "'learned' must be a boolean.")
			return
		}
		opts.Learned = &learned
	}

	if v, ok := c.GetQuery("search"); ok {
		opts.Search = strings.TrimSpace(v)
		if opts.Search == "" {
			response.Error(c, http.StatusBadRequest, "'search' must be a non-empty string.")
			return
		}
	}

	list, err := d.Store.ListUserWords(c.Request.Context(), userID, opts)
	if err != nil {
		response.Internal(c, "Failed to list user words", err)
		return
	}

	c.JSON(http.StatusOK, list)
}
