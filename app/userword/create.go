package userword

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/service"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserWordCreate adds words to a user's dictionary from either a csv file or
// a single word form field. The file wins when both are sent.
func UserWordCreate(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	fh, err := c.FormFile("csv")

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
		return
	}

	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		zap.L().Debug("Can't read multipart form", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
		response.Error(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	if fh != nil {
		importCSV(c, d, userID, fh)
		return
	}

	word, err := validators.WordValidator(c.PostForm("word"))
	if err != nil {
		response.Message(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := d.Importer.ImportWord(c.Request.Context(), userID, word)
	if err != nil {
		var notAWord *service.NotAWordError
		if errors.As(err, &notAWord) {
			response.Message(c, http.StatusBadRequest, notAWord.Error())
			return
		}

		importError(c, err)
		return
	}

	response.Result(c, res, "userWord", http.StatusOK, http.StatusOK)
}

func importCSV(c *gin.Context, d *internal.Deps, userID uint, fh *multipart.FileHeader) {
	status, f, err := validators.CSVValidator(fh, d.MaxUploadSize)
	if err != nil {
		if status == http.StatusInternalServerError {
			response.Internal(c, "Failed to read uploaded csv", err)
			return
		}

		response.Error(c, status, err.Error())
		return
	}
	defer f.Close()

	report, err := d.Importer.ImportCSV(c.Request.Context(), userID, f)
	if err != nil {
		importError(c, err)
		return
	}

	if report.HasInvalid() {
		response.Message(c, http.StatusBadRequest, report.Message())
		return
	}

	response.Message(c, http.StatusOK, report.Message())
}

// importError maps a failed import onto a response
func importError(c *gin.Context, err error) {
	var parseErr *service.CSVParseError

	switch {
	case errors.Is(err, service.ErrCSVEmpty):
		response.Message(c, http.StatusBadRequest, service.MsgCSVEmpty)
	case errors.As(err, &parseErr):
		response.Message(c, http.StatusBadRequest, parseErr.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, store.EntityUser.Missing(c.MustGet("userID").(uint)))
	case errors.Is(err, service.ErrLookupTimeout):
		response.Error(c, http.StatusGatewayTimeout, "The dictionary took too long to respond. Please try again.")
	case errors.Is(err, service.ErrLookupUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "The dictionary is temporarily unavailable. Please try again later.")
	case errors.Is(err, service.ErrLookupFailed):
		response.Error(c, http.StatusBadGateway, "The dictionary could not be reached. Please try again later.")
	default:
		response.Internal(c, "Failed to import words", err)
	}
}
