package validators

import (
	"errors"
	"strconv"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/pagination"
)

const MaxLimit = 250

var (
	ErrPageIncomplete = errors.New("'page' and 'limit' must both be provided for pagination.")
	ErrPageInvalid    = errors.New("'page' must be a positive integer.")
	ErrLimitInvalid   = errors.New("'limit' must be a positive integer.")
	ErrLimitTooLarge  = errors.New("'limit' must be smaller than 250.")
)

// PageValidator checks the page and limit query parameters. Both are
// optional but must be given together; when neither is given the returned
// window is unbounded.
func PageValidator(page string, hasPage bool, limit string, hasLimit bool) (pagination.Window, error) {
	if !hasPage && !hasLimit {
		return pagination.Window{}, nil
	}

	if !hasPage || !hasLimit {
		return pagination.Window{}, ErrPageIncomplete
	}

	p, err := strconv.Atoi(page)
	if err != nil || p <= 0 {
		return pagination.Window{}, ErrPageInvalid
	}

	l, err := strconv.Atoi(limit)
	if err != nil || l <= 0 {
		return pagination.Window{}, ErrLimitInvalid
	}

	if l > MaxLimit {
		return pagination.Window{}, ErrLimitTooLarge
	}

	return pagination.Window{Page: p, Limit: l}, nil
}
