package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileTypeUnsupported = errors.New("The uploaded file must be a CSV file.")
)

// CSVValidator sniffs an uploaded file and returns it rewound when it is a
// text file no larger than maxSize. The returned status code matches the
// error.
func CSVValidator(fh *multipart.FileHeader, maxSize int64) (int, multipart.File, error) {
	if fh.Size > maxSize {
		return http.StatusRequestEntityTooLarge, nil, ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	if !isText(mime) {
		f.Close()
		return http.StatusBadRequest, nil, ErrFileTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	return http.StatusOK, f, nil
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}

	return false
}
