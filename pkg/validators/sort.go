package validators

import (
	"errors"
	"strconv"
	"strings"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/pagination"
)

var ErrSortIncomplete = errors.New("'column', 'direction', and 'table' must all be provided together for sorting.")

// SortValidator resolves the table, column and direction query parameters
// against the sort allow-list. A nil order means no sort was requested.
// allowed restricts the tables a given endpoint may sort by.
func SortValidator(table, column, direction string, allowed ...string) (*pagination.Order, error) {
	table = strings.TrimSpace(table)
	column = strings.TrimSpace(column)
	direction = strings.TrimSpace(direction)

	if table == "" && column == "" && direction == "" {
		return nil, nil
	}

	if table == "" || column == "" || direction == "" {
		return nil, ErrSortIncomplete
	}

	d, err := strconv.Atoi(direction)
	if err != nil {
		return nil, pagination.ErrSortDirection
	}

	dir, err := pagination.ParseDirection(d)
	if err != nil {
		return nil, err
	}

	key, err := pagination.LookupSort(table, column, allowed...)
	if err != nil {
		return nil, err
	}

	return &pagination.Order{Key: key, Direction: dir}, nil
}
