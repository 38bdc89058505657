package pagination

import (
	"errors"
	"slices"

	"gorm.io/gorm/clause"
)

var (
	ErrSortUnknown   = errors.New("sorting by this table and column is not supported")
	ErrSortDirection = errors.New("'direction' must be either 1 or -1")
)

// SortKey is a closed enum of the (table, column) pairs list endpoints may be
// sorted by. Caller input is only ever matched against it, never rendered.
type SortKey int

const (
	UserWordsCreatedAt SortKey = iota + 1
	UserWordsUpdatedAt
	UserWordsLearned
	WordsWord
	WordRemindersCreatedAt
	WordRemindersUpdatedAt
	WordRemindersFinish
)

type sortColumn struct {
	table  string
	column string
}

var sortColumns = map[SortKey]sortColumn{
	UserWordsCreatedAt:     {"user_words", "created_at"},
	UserWordsUpdatedAt:     {"user_words", "updated_at"},
	UserWordsLearned:       {"user_words", "learned"},
	WordsWord:              {"words", "word"},
	WordRemindersCreatedAt: {"word_reminders", "created_at"},
	WordRemindersUpdatedAt: {"word_reminders", "updated_at"},
	WordRemindersFinish:    {"word_reminders", "finish"},
}

// tiebreakTables maps a sorted table to the table whose primary key settles
// ties. Words are joined onto user_words so ties fall back to user_words.id.
var tiebreakTables = map[string]string{
	"user_words":     "user_words",
	"words":          "user_words",
	"word_reminders": "word_reminders",
}

func (k SortKey) Table() string {
	return sortColumns[k].table
}

func (k SortKey) Column() string {
	return sortColumns[k].column
}

// LookupSort resolves a caller supplied table and column. Only tables listed
// in allowed are considered; an empty allowed list accepts every table.
func LookupSort(table, column string, allowed ...string) (SortKey, error) {
	if len(allowed) > 0 && !slices.Contains(allowed, table) {
		return 0, ErrSortUnknown
	}

	for k, c := range sortColumns {
		if c.table == table && c.column == column {
			return k, nil
		}
	}

	return 0, ErrSortUnknown
}

type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

func ParseDirection(d int) (Direction, error) {
	switch Direction(d) {
	case Ascending, Descending:
		return Direction(d), nil
	default:
		return 0, ErrSortDirection
	}
}

type Order struct {
	Key       SortKey
	Direction Direction
}

func (o Order) Clause() clause.OrderByColumn {
	c := sortColumns[o.Key]
	return clause.OrderByColumn{
		Column: clause.Column{Table: c.table, Name: c.column},
		Desc:   o.Direction == Descending,
	}
}

func (o Order) tiebreak() clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Table: tiebreakTables[o.Key.Table()], Name: "id"},
		Desc:   o.Direction == Descending,
	}
}
