package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WordReminderFields are the caller editable columns of a word reminder
type WordReminderFields struct {
	Reminder          string
	IsActive          bool
	HasReminderOnload bool
	Finish            time.Time
}

var defaultWordReminderOrder = pagination.Order{
	Key:       pagination.WordRemindersCreatedAt,
	Direction: pagination.Descending,
}

func (s *Store) CreateWordReminder(ctx context.Context, userID uint, f WordReminderFields) (Result[*model.WordReminder], error) {
	found, err := s.Exists(ctx, EntityUser, userID)
	if err != nil {
		return Result[*model.WordReminder]{}, err
	}
	if !found {
		return notFound[*model.WordReminder](EntityUser, userID), nil
	}

	wr := &model.WordReminder{
		UserID:            userID,
		Reminder:          f.Reminder,
		IsActive:          f.IsActive,
		HasReminderOnload: f.HasReminderOnload,
		Finish:            f.Finish.UTC(),
		UserWords:         []model.UserWord{},
	}

	if err := s.conn(ctx).Omit(clause.Associations).Create(wr).Error; err != nil {
		return Result[*model.WordReminder]{}, fmt.Errorf("failed to create word reminder, %w", err)
	}

	return ok(wr, msgSuccess), nil
}

// GetWordReminder returns a reminder owned by userID with its user words
func (s *Store) GetWordReminder(ctx context.Context, userID, id uint) (Result[*model.WordReminder], error) {
	var wr model.WordReminder

	err := s.conn(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&wr).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound[*model.WordReminder](EntityWordReminder, id), nil
		}

		return Result[*model.WordReminder]{}, fmt.Errorf("failed to lookup word reminder, %w", err)
	}

	linked, err := s.linkedUserWords(ctx, []uint{wr.ID})
	if err != nil {
		return Result[*model.WordReminder]{}, err
	}

	wr.UserWords = linked[wr.ID]
	if wr.UserWords == nil {
		wr.UserWords = []model.UserWord{}
	}

	return ok(&wr, msgSuccess), nil
}

func (s *Store) UpdateWordReminder(ctx context.Context, userID, id uint, f WordReminderFields) (Result[*model.WordReminder], error) {
	found, err := s.ExistsForUser(ctx, EntityWordReminder, id, userID)
	if err != nil {
		return Result[*model.WordReminder]{}, err
	}
	if !found {
		return notFound[*model.WordReminder](EntityWordReminder, id), nil
	}

	err = s.conn(ctx).
		Model(&model.WordReminder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"reminder":            f.Reminder,
			"is_active":           f.IsActive,
			"has_reminder_onload": f.HasReminderOnload,
			"finish":              f.Finish.UTC(),
			"updated_at":          time.Now(),
		}).
		Error
	if err != nil {
		return Result[*model.WordReminder]{}, fmt.Errorf("failed to update word reminder, %w", err)
	}

	return s.GetWordReminder(ctx, userID, id)
}

// DeleteWordReminder removes a reminder and its links. The returned reminder
// still lists the user words it held.
func (s *Store) DeleteWordReminder(ctx context.Context, userID, id uint) (Result[*model.WordReminder], error) {
	var res Result[*model.WordReminder]

	err := s.Transaction(ctx, func(tx *Store) error {
		got, err := tx.GetWordReminder(ctx, userID, id)
		if err != nil {
			return err
		}
		if !got.OK() {
			res = got
			return nil
		}

		if _, err := tx.UnlinkAllByReminder(ctx, id); err != nil {
			return err
		}

		err = tx.conn(ctx).
			Where("id = ?", id).
			Delete(&model.WordReminder{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete word reminder, %w", err)
		}

		res = ok(got.Value, msgSuccess)
		return nil
	})
	if err != nil {
		return Result[*model.WordReminder]{}, err
	}

	return res, nil
}

// DeleteWordRemindersByUser removes every reminder a user owns and their
// links
func (s *Store) DeleteWordRemindersByUser(ctx context.Context, userID uint) ([]model.WordReminder, error) {
	reminders := []model.WordReminder{}

	err := s.Transaction(ctx, func(tx *Store) error {
		err := tx.conn(ctx).
			Where("user_id = ?", userID).
			Order("id").
			Find(&reminders).
			Error
		if err != nil {
			return fmt.Errorf("failed to lookup word reminders, %w", err)
		}

		if len(reminders) == 0 {
			return nil
		}

		ids := make([]uint, len(reminders))
		for i, r := range reminders {
			ids[i] = r.ID
		}

		err = tx.conn(ctx).
			Where("word_reminder_id IN ?", ids).
			Delete(&model.UserWordReminderLink{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete word reminder links, %w", err)
		}

		err = tx.conn(ctx).
			Where("id IN ?", ids).
			Delete(&model.WordReminder{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete word reminders, %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range reminders {
		reminders[i].UserWords = []model.UserWord{}
	}

	return reminders, nil
}

// ListWordRemindersByUser returns a window of a user's reminders, each carrying its
// linked user words and their word details. Reminders without links carry
// an empty list.
func (s *Store) ListWordRemindersByUser(ctx context.Context, userID uint, q pagination.Query) (pagination.List[model.WordReminder], error) {
	base := s.conn(ctx).
		Model(&model.WordReminder{}).
		Where("word_reminders.user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return pagination.List[model.WordReminder]{}, fmt.Errorf("failed to count word reminders, %w", err)
	}

	reminders := []model.WordReminder{}
	if total == 0 {
		return pagination.NewList(reminders, q.Meta(total)), nil
	}

	if err := q.Apply(base, defaultWordReminderOrder).Find(&reminders).Error; err != nil {
		return pagination.List[model.WordReminder]{}, fmt.Errorf("failed to list word reminders, %w", err)
	}

	ids := make([]uint, len(reminders))
	for i, r := range reminders {
		ids[i] = r.ID
	}

	linked, err := s.linkedUserWords(ctx, ids)
	if err != nil {
		return pagination.List[model.WordReminder]{}, err
	}

	for i := range reminders {
		reminders[i].UserWords = linked[reminders[i].ID]
		if reminders[i].UserWords == nil {
			reminders[i].UserWords = []model.UserWord{}
		}
	}

	return pagination.NewList(reminders, q.Meta(total)), nil
}

// DeactivateExpired switches off every active reminder whose finish is
// before now and reports how many were changed
func (s *Store) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	r := s.conn(ctx).
		Model(&model.WordReminder{}).
		Where("is_active = ? AND finish < ?", true, now.UTC()).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if r.Error != nil {
		return 0, fmt.Errorf("failed to deactivate expired word reminders, %w", r.Error)
	}

	return r.RowsAffected, nil
}
