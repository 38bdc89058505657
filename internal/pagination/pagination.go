// Package pagination turns page/limit/sort requests into bounded, ordered
// queries and the previous/next cursors returned by every list endpoint
package pagination

import "gorm.io/gorm"

const (
	DefaultPage  = 1
	DefaultLimit = 8
)

// Page is a cursor handed back to the caller. It is re-issued verbatim as
// the page and limit query parameters of the next request.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Window is the requested slice of a result set. The zero Window is
// unbounded.
type Window struct {
	Page  int
	Limit int
}

func (w Window) Bounded() bool {
	return w.Page > 0 && w.Limit > 0
}

func (w Window) Offset() int {
	if !w.Bounded() {
		return 0
	}

	return (w.Page - 1) * w.Limit
}

// Meta is the cursor metadata attached to a list response
type Meta struct {
	TotalRows int64 `json:"totalRows"`
	Previous  *Page `json:"previous,omitempty"`
	Next      *Page `json:"next,omitempty"`
}

type List[T any] struct {
	Items []T `json:"items"`
	Meta
}

// Cursors computes the previous and next cursors for a window over
// totalRows rows. A non-positive page or limit falls back to the defaults.
func Cursors(totalRows int64, page, limit int) (previous, next *Page) {
	if totalRows <= 0 {
		return nil, nil
	}
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	if (page-1)*limit > 0 {
		previous = &Page{Page: page - 1, Limit: limit}
	}

	if int64(page)*int64(limit) < totalRows {
		next = &Page{Page: page + 1, Limit: limit}
	}

	return previous, next
}

// Query is an immutable description of the ordering and window applied to a
// base query. The With methods return modified copies.
type Query struct {
	order  *Order
	window Window
}

func NewQuery() Query {
	return Query{}
}

func (q Query) WithOrder(o *Order) Query {
	q.order = o
	return q
}

func (q Query) WithWindow(w Window) Query {
	q.window = w
	return q
}

func (q Query) Window() Window {
	return q.window
}

// Apply renders the ordering and, for bounded windows, LIMIT/OFFSET onto db.
// fallback orders the rows when the caller did not ask for a sort. Every
// ordering ends on the primary key so pages never overlap.
func (q Query) Apply(db *gorm.DB, fallback Order) *gorm.DB {
	o := fallback
	if q.order != nil {
		o = *q.order
	}

	db = db.Order(o.Clause()).Order(o.tiebreak())

	if q.window.Bounded() {
		db = db.Limit(q.window.Limit).Offset(q.window.Offset())
	}

	return db
}

// Meta builds the response metadata for totalRows pre-limit rows. Unbounded
// windows get no cursors.
func (q Query) Meta(totalRows int64) Meta {
	m := Meta{TotalRows: totalRows}
	if q.window.Bounded() {
		m.Previous, m.Next = Cursors(totalRows, q.window.Page, q.window.Limit)
	}

	return m
}

// NewList wraps items and metadata, never returning a nil item slice
func NewList[T any](items []T, m Meta) List[T] {
	if items == nil {
		items = []T{}
	}

	return List[T]{Items: items, Meta: m}
}
