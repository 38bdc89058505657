package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursors(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		page     int
		limit    int
		previous *Page
		next     *Page
	}{
		{name: "no rows", total: 0, page: 1, limit: 8},
		{name: "single page", total: 3, page: 1, limit: 8},
		{name: "exact fit", total: 8, page: 1, limit: 8},
		{name: "first of many", total: 20, page: 1, limit: 8, next: &Page{Page: 2, Limit: 8}},
		{name: "middle", total: 20, page: 2, limit: 8, previous: &Page{Page: 1, Limit: 8}, next: &Page{Page: 3, Limit: 8}},
		{name: "last", total: 20, page: 3, limit: 8, previous: &Page{Page: 2, Limit: 8}},
		{name: "past the end", total: 5, page: 4, limit: 2, previous: &Page{Page: 3, Limit: 2}},
		{name: "defaults", total: 9, page: 0, limit: 0, next: &Page{Page: 2, Limit: DefaultLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous, next := Cursors(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.previous, previous)
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestQueryMeta(t *testing.T) {
	t.Run("unbounded has no cursors", func(t *testing.T) {
		m := NewQuery().Meta(100)
		assert.Equal(t, int64(100), m.TotalRows)
		assert.Nil(t, m.Previous)
		assert.Nil(t, m.Next)
	})

	t.Run("bounded", func(t *testing.T) {
		m := NewQuery().WithWindow(Window{Page: 2, Limit: 10}).Meta(25)
		assert.Equal(t, &Page{Page: 1, Limit: 10}, m.Previous)
		assert.Equal(t, &Page{Page: 3, Limit: 10}, m.Next)
	})

	t.Run("with methods copy", func(t *testing.T) {
		base := NewQuery()
		_ = base.WithWindow(Window{Page: 1, Limit: 1})
		assert.False(t, base.Window().Bounded())
	})
}

func TestNewListNeverNil(t *testing.T) {
	l := NewList[int](nil, Meta{})
	require.NotNil(t, l.Items)
	assert.Empty(t, l.Items)
}

func TestLookupSort(t *testing.T) {
	k, err := LookupSort("words", "word")
	require.NoError(t, err)
	assert.Equal(t, WordsWord, k)
	assert.Equal(t, "words", k.Table())
	assert.Equal(t, "word", k.Column())

	_, err = LookupSort("words", "word", "word_reminders")
	assert.ErrorIs(t, err, ErrSortUnknown)

	_, err = LookupSort("users", "password_hash")
	assert.ErrorIs(t, err, ErrSortUnknown)

	_, err = LookupSort("user_words", "created_at; DROP TABLE users")
	assert.ErrorIs(t, err, ErrSortUnknown)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(1)
	require.NoError(t, err)
	assert.Equal(t, Ascending, d)

	d, err = ParseDirection(-1)
	require.NoError(t, err)
	assert.Equal(t, Descending, d)

	_, err = ParseDirection(0)
	assert.ErrorIs(t, err, ErrSortDirection)
}

func TestOrderClause(t *testing.T) {
	o := Order{Key: WordsWord, Direction: Descending}

	c := o.Clause()
	assert.Equal(t, "words", c.Column.Table)
	assert.Equal(t, "word", c.Column.Name)
	assert.True(t, c.Desc)

	tb := o.tiebreak()
	assert.Equal(t, "user_words", tb.Column.Table)
	assert.Equal(t, "id", tb.Column.Name)
}
