package validators

import (
	"net/url"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/pagination"
)

// ListQueryValidator builds a pagination query from the page, limit,
// table, column and direction query parameters
func ListQueryValidator(q url.Values, allowedTables ...string) (pagination.Query, error) {
	window, err := PageValidator(q.Get("page"), q.Has("page"), q.Get("limit"), q.Has("limit"))
	if err != nil {
		return pagination.Query{}, err
	}

	order, err := SortValidator(q.Get("table"), q.Get("column"), q.Get("direction"), allowedTables...)
	if err != nil {
		return pagination.Query{}, err
	}

	return pagination.NewQuery().WithOrder(order).WithWindow(window), nil
}
