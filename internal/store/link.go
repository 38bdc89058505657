package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgAlreadyLinked = "This word is already part of the word reminder."

// Link associates a user word with a word reminder. Linking an existing pair
// returns the stored link with a Conflict status. The lookup is only a fast
// path: the unique (user_word_id, word_reminder_id) index keeps concurrent
// callers from inserting two rows.
func (s *Store) Link(ctx context.Context, userWordID, wordReminderID uint) (Result[*model.UserWordReminderLink], error) {
	found, err := s.Exists(ctx, EntityUserWord, userWordID)
	if err != nil {
		return Result[*model.UserWordReminderLink]{}, err
	}
	if !found {
		return notFound[*model.UserWordReminderLink](EntityUserWord, userWordID), nil
	}

	found, err = s.Exists(ctx, EntityWordReminder, wordReminderID)
	if err != nil {
		return Result[*model.UserWordReminderLink]{}, err
	}
	if !found {
		return notFound[*model.UserWordReminderLink](EntityWordReminder, wordReminderID), nil
	}

	existing, err := s.findLink(ctx, userWordID, wordReminderID)
	if err != nil {
		return Result[*model.UserWordReminderLink]{}, err
	}
	if existing != nil {
		return conflict(existing, msgAlreadyLinked), nil
	}

	link := &model.UserWordReminderLink{
		UserWordID:     userWordID,
		WordReminderID: wordReminderID,
	}

	r := s.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_word_id"}, {Name: "word_reminder_id"}},
			DoNothing: true,
		}).
		Omit(clause.Associations).
		Create(link)
	if r.Error != nil {
		return Result[*model.UserWordReminderLink]{}, fmt.Errorf("failed to create link, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		existing, err := s.findLink(ctx, userWordID, wordReminderID)
		if err != nil {
			return Result[*model.UserWordReminderLink]{}, err
		}
		if existing == nil {
			return Result[*model.UserWordReminderLink]{}, errors.New("link vanished after conflicting insert")
		}

		return conflict(existing, msgAlreadyLinked), nil
	}

	return ok(link, msgSuccess), nil
}

func (s *Store) findLink(ctx context.Context, userWordID, wordReminderID uint) (*model.UserWordReminderLink, error) {
	var link model.UserWordReminderLink

	err := s.conn(ctx).
		Where("user_word_id = ? AND word_reminder_id = ?", userWordID, wordReminderID).
		First(&link).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to lookup link, %w", err)
	}

	return &link, nil
}

// UnlinkAllByUser deletes every link whose user word belongs to userID and
// returns the deleted rows
func (s *Store) UnlinkAllByUser(ctx context.Context, userID uint) ([]model.UserWordReminderLink, error) {
	return s.unlink(ctx, func(db *gorm.DB) *gorm.DB {
		owned := db.
			Model(&model.UserWord{}).
			Select("id").
			Where("user_id = ?", userID)

		return db.Where("user_word_id IN (?)", owned)
	})
}

// UnlinkAllByReminder deletes every link of a word reminder and returns the
// deleted rows
func (s *Store) UnlinkAllByReminder(ctx context.Context, wordReminderID uint) ([]model.UserWordReminderLink, error) {
	return s.unlink(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("word_reminder_id = ?", wordReminderID)
	})
}

func (s *Store) unlink(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]model.UserWordReminderLink, error) {
	links := []model.UserWordReminderLink{}

	err := s.Transaction(ctx, func(tx *Store) error {
		err := scope(tx.conn(ctx)).
			Order("id").
			Find(&links).
			Error
		if err != nil {
			return fmt.Errorf("failed to lookup links, %w", err)
		}

		if len(links) == 0 {
			return nil
		}

		ids := make([]uint, len(links))
		for i, l := range links {
			ids[i] = l.ID
		}

		err = tx.conn(ctx).
			Where("id IN ?", ids).
			Delete(&model.UserWordReminderLink{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete links, %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return links, nil
}

// linkedUserWords resolves the user words of each reminder, keyed by
// reminder ID, in link order
func (s *Store) linkedUserWords(ctx context.Context, wordReminderIDs []uint) (map[uint][]model.UserWord, error) {
	out := make(map[uint][]model.UserWord, len(wordReminderIDs))
	if len(wordReminderIDs) == 0 {
		return out, nil
	}

	var links []model.UserWordReminderLink

	err := preloadWord(s.conn(ctx), "UserWord.Word").
		Preload("UserWord").
		Where("word_reminder_id IN ?", wordReminderIDs).
		Order("id").
		Find(&links).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to lookup linked user words, %w", err)
	}

	for _, l := range links {
		if l.UserWord == nil {
			continue
		}
		out[l.WordReminderID] = append(out[l.WordReminderID], *l.UserWord)
	}

	return out, nil
}
