package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
)

// ExplicitReminder is a reminder over user words the caller picked
type ExplicitReminder struct {
	Reminder          string
	IsActive          bool
	HasReminderOnload bool
	Finish            time.Time
	UserWordIDs       []uint
}

func (r ExplicitReminder) fields() store.WordReminderFields {
	return store.WordReminderFields{
		Reminder:          r.Reminder,
		IsActive:          r.IsActive,
		HasReminderOnload: r.HasReminderOnload,
		Finish:            r.Finish,
	}
}

// AutoReminder describes a reminder whose words are selected from the
// user's dictionary. Duration is in milliseconds.
type AutoReminder struct {
	Reminder          string
	IsActive          bool
	HasReminderOnload bool
	HasLearnedWords   bool
	SortMode          model.SortMode
	WordCount         int
	Duration          int64
}

// AutoReminderFrom builds a reminder request from stored settings
func AutoReminderFrom(a *model.AutoWordReminder) AutoReminder {
	return AutoReminder{
		Reminder:          a.Reminder,
		IsActive:          a.IsActive,
		HasReminderOnload: a.HasReminderOnload,
		HasLearnedWords:   a.HasLearnedWords,
		SortMode:          a.SortMode,
		WordCount:         a.WordCount,
		Duration:          a.Duration,
	}
}

// Composer builds word reminders and their links. Every operation writes
// the reminder and its links in one transaction and returns the reminder
// with its user words resolved.
type Composer struct {
	store *store.Store
	now   func() time.Time
}

func NewComposer(s *store.Store) *Composer {
	return &Composer{store: s, now: time.Now}
}

// Explicit creates a reminder over the given user words. Every id must be
// a user word owned by userID.
func (c *Composer) Explicit(ctx context.Context, userID uint, in ExplicitReminder) (store.Result[*model.WordReminder], error) {
	var res store.Result[*model.WordReminder]

	err := c.store.Transaction(ctx, func(tx *store.Store) error {
		ids := uniqueIDs(in.UserWordIDs)

		missing, err := firstMissingUserWord(ctx, tx, userID, ids)
		if err != nil {
			return err
		}
		if missing != nil {
			res = *missing
			return nil
		}

		res, err = compose(ctx, tx, userID, in.fields(), ids)
		return err
	})
	if err != nil {
		return store.Result[*model.WordReminder]{}, err
	}

	return res, nil
}

// Auto creates a reminder over up to WordCount of the user's words picked
// by SortMode. The reminder finishes Duration after now.
func (c *Composer) Auto(ctx context.Context, userID uint, in AutoReminder) (store.Result[*model.WordReminder], error) {
	if !in.SortMode.Valid() {
		return store.Result[*model.WordReminder]{}, fmt.Errorf("unknown sort mode %q", string(in.SortMode))
	}

	fields := store.WordReminderFields{
		Reminder:          in.Reminder,
		IsActive:          in.IsActive,
		HasReminderOnload: in.HasReminderOnload,
		Finish:            c.now().Add(time.Duration(in.Duration) * time.Millisecond),
	}

	var res store.Result[*model.WordReminder]

	err := c.store.Transaction(ctx, func(tx *store.Store) error {
		userWords, err := tx.SelectUserWords(ctx, userID, in.WordCount, in.HasLearnedWords, in.SortMode)
		if err != nil {
			return err
		}

		ids := make([]uint, len(userWords))
		for i, uw := range userWords {
			ids[i] = uw.ID
		}

		res, err = compose(ctx, tx, userID, fields, ids)
		return err
	})
	if err != nil {
		return store.Result[*model.WordReminder]{}, err
	}

	return res, nil
}

// Update rewrites a reminder's fields and replaces its links with the given
// user words
func (c *Composer) Update(ctx context.Context, userID, id uint, in ExplicitReminder) (store.Result[*model.WordReminder], error) {
	var res store.Result[*model.WordReminder]

	err := c.store.Transaction(ctx, func(tx *store.Store) error {
		ids := uniqueIDs(in.UserWordIDs)

		missing, err := firstMissingUserWord(ctx, tx, userID, ids)
		if err != nil {
			return err
		}
		if missing != nil {
			res = *missing
			return nil
		}

		updated, err := tx.UpdateWordReminder(ctx, userID, id, in.fields())
		if err != nil {
			return err
		}
		if !updated.OK() {
			res = updated
			return nil
		}

		if _, err := tx.UnlinkAllByReminder(ctx, id); err != nil {
			return err
		}

		if err := linkAll(ctx, tx, id, ids); err != nil {
			return err
		}

		res, err = tx.GetWordReminder(ctx, userID, id)
		return err
	})
	if err != nil {
		return store.Result[*model.WordReminder]{}, err
	}

	return res, nil
}

func compose(ctx context.Context, tx *store.Store, userID uint, fields store.WordReminderFields, ids []uint) (store.Result[*model.WordReminder], error) {
	created, err := tx.CreateWordReminder(ctx, userID, fields)
	if err != nil || !created.OK() {
		return created, err
	}

	if err := linkAll(ctx, tx, created.Value.ID, ids); err != nil {
		return store.Result[*model.WordReminder]{}, err
	}

	return tx.GetWordReminder(ctx, userID, created.Value.ID)
}

func linkAll(ctx context.Context, tx *store.Store, wordReminderID uint, userWordIDs []uint) error {
	for _, id := range userWordIDs {
		res, err := tx.Link(ctx, id, wordReminderID)
		if err != nil {
			return err
		}
		if res.Status == store.StatusNotFound {
			return fmt.Errorf("failed to link user word %d, %s", id, res.Message)
		}
	}

	return nil
}

func firstMissingUserWord(ctx context.Context, tx *store.Store, userID uint, ids []uint) (*store.Result[*model.WordReminder], error) {
	for _, id := range ids {
		found, err := tx.ExistsForUser(ctx, store.EntityUserWord, id, userID)
		if err != nil {
			return nil, err
		}

		if !found {
			return &store.Result[*model.WordReminder]{
				Status:  store.StatusNotFound,
				Message: store.EntityUserWord.Missing(id),
			}, nil
		}
	}

	return nil, nil
}

// uniqueIDs drops repeated ids, keeping first occurrence order
func uniqueIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	return out
}
