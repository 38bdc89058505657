package word

import (
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
)

// WordFetch returns a stored dictionary entry. It never calls the lookup
// service.
func WordFetch(c *gin.Context, d *internal.Deps) {
	w, err := validators.WordValidator(c.Param("word"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := d.Store.GetWordByWord(c.Request.Context(), w)
	if err != nil {
		response.Internal(c, "Failed to lookup word", err)
		return
	}

	response.Result(c, res, "word", http.StatusOK, http.StatusOK)
}

// WordFetchByID returns a stored dictionary entry by its primary key
func WordFetchByID(c *gin.Context, d *internal.Deps) {
	id, err := validators.IDValidator(c.Param("wordId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid word ID.")
		return
	}

	res, err := d.Store.GetWord(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to lookup word", err)
		return
	}

	response.Result(c, res, "word", http.StatusOK, http.StatusOK)
}
