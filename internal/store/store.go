// Package store is the single point of truth for existence checks and CRUD
// on users, words, user words, word reminders and the links between them.
//
// Expected business outcomes (a missing reference, a duplicate) are reported
// through Result. Only infrastructure failures are returned as errors.
package store

import (
	"context"
	"fmt"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"gorm.io/gorm"
)

type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusConflict
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of a store operation. On Conflict, Value
// holds the row that already existed.
type Result[T any] struct {
	Value   T
	Status  Status
	Message string
}

func (r Result[T]) OK() bool {
	return r.Status == StatusOK
}

func ok[T any](v T, msg string) Result[T] {
	return Result[T]{Value: v, Status: StatusOK, Message: msg}
}

func conflict[T any](v T, msg string) Result[T] {
	return Result[T]{Value: v, Status: StatusConflict, Message: msg}
}

func notFound[T any](e Entity, id uint) Result[T] {
	return Result[T]{Status: StatusNotFound, Message: e.Missing(id)}
}

// Entity names a table the store guards with existence checks
type Entity string

const (
	EntityUser             Entity = "User"
	EntityWord             Entity = "Word"
	EntityUserWord         Entity = "User word"
	EntityWordReminder     Entity = "Word reminder"
	EntityAutoWordReminder Entity = "Auto word reminder"
)

func (e Entity) Missing(id uint) string {
	return fmt.Sprintf("%s with ID %d does not exist.", e, id)
}

func (e Entity) model() (any, error) {
	switch e {
	case EntityUser:
		return &model.User{}, nil
	case EntityWord:
		return &model.Word{}, nil
	case EntityUserWord:
		return &model.UserWord{}, nil
	case EntityWordReminder:
		return &model.WordReminder{}, nil
	case EntityAutoWordReminder:
		return &model.AutoWordReminder{}, nil
	default:
		return nil, fmt.Errorf("unknown entity %q", string(e))
	}
}

const (
	msgSuccess      = "Success!"
	msgAlreadyAdded = "You have already added this word in your dictionary."
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a store bound to a single database
// transaction. Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Exists reports whether a row with the given primary key exists
func (s *Store) Exists(ctx context.Context, e Entity, id uint) (bool, error) {
	m, err := e.model()
	if err != nil {
		return false, err
	}

	var n int64
	err = s.conn(ctx).
		Model(m).
		Where("id = ?", id).
		Count(&n).
		Error
	if err != nil {
		return false, fmt.Errorf("failed to check if %s exists, %w", e, err)
	}

	return n > 0, nil
}

// ExistsForUser reports whether a row exists and is owned by userID. It is
// only valid for entities carrying a user_id column.
func (s *Store) ExistsForUser(ctx context.Context, e Entity, id, userID uint) (bool, error) {
	if e == EntityUser || e == EntityWord {
		return false, fmt.Errorf("%s is not owned by a user", e)
	}

	m, err := e.model()
	if err != nil {
		return false, err
	}

	var n int64
	err = s.conn(ctx).
		Model(m).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&n).
		Error
	if err != nil {
		return false, fmt.Errorf("failed to check if %s exists, %w", e, err)
	}

	return n > 0, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// preloadWord loads a word's child rows under the given association path
func preloadWord(db *gorm.DB, path string) *gorm.DB {
	prefix := ""
	if path != "" {
		prefix = path + "."
	}

	if path != "" {
		db = db.Preload(path)
	}

	return db.
		Preload(prefix+"Meanings", orderByID).
		Preload(prefix+"Meanings.Definitions", orderByID).
		Preload(prefix+"Phonetics", orderByID).
		Preload(prefix+"Images", orderByID)
}
