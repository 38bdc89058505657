package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgAutoReminderExists = "You already have an auto word reminder. Update it instead."

// AutoWordReminderFields are the caller editable columns of an auto word
// reminder
type AutoWordReminderFields struct {
	Reminder          string
	IsActive          bool
	HasReminderOnload bool
	HasLearnedWords   bool
	SortMode          model.SortMode
	WordCount         int
	Duration          int64
}

func (f AutoWordReminderFields) apply(a *model.AutoWordReminder) {
	a.Reminder = f.Reminder
	a.IsActive = f.IsActive
	a.HasReminderOnload = f.HasReminderOnload
	a.HasLearnedWords = f.HasLearnedWords
	a.SortMode = f.SortMode
	a.WordCount = f.WordCount
	a.Duration = f.Duration
}

// CreateAutoWordReminder stores a user's auto reminder settings. A user has
// at most one; a second create returns the existing row as a Conflict.
func (s *Store) CreateAutoWordReminder(ctx context.Context, userID uint, f AutoWordReminderFields) (Result[*model.AutoWordReminder], error) {
	found, err := s.Exists(ctx, EntityUser, userID)
	if err != nil {
		return Result[*model.AutoWordReminder]{}, err
	}
	if !found {
		return notFound[*model.AutoWordReminder](EntityUser, userID), nil
	}

	a := &model.AutoWordReminder{UserID: userID}
	f.apply(a)

	r := s.conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(a)
	if r.Error != nil {
		return Result[*model.AutoWordReminder]{}, fmt.Errorf("failed to create auto word reminder, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		existing, err := s.GetAutoWordReminderByUser(ctx, userID)
		if err != nil {
			return Result[*model.AutoWordReminder]{}, err
		}

		return conflict(existing.Value, msgAutoReminderExists), nil
	}

	return ok(a, msgSuccess), nil
}

func (s *Store) GetAutoWordReminderByUser(ctx context.Context, userID uint) (Result[*model.AutoWordReminder], error) {
	var a model.AutoWordReminder

	err := s.conn(ctx).
		Where("user_id = ?", userID).
		First(&a).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result[*model.AutoWordReminder]{
				Status:  StatusNotFound,
				Message: fmt.Sprintf("User with ID %d does not have an auto word reminder.", userID),
			}, nil
		}

		return Result[*model.AutoWordReminder]{}, fmt.Errorf("failed to lookup auto word reminder, %w", err)
	}

	return ok(&a, msgSuccess), nil
}

func (s *Store) getAutoWordReminder(ctx context.Context, userID, id uint) (Result[*model.AutoWordReminder], error) {
	var a model.AutoWordReminder

	err := s.conn(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&a).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound[*model.AutoWordReminder](EntityAutoWordReminder, id), nil
		}

		return Result[*model.AutoWordReminder]{}, fmt.Errorf("failed to lookup auto word reminder, %w", err)
	}

	return ok(&a, msgSuccess), nil
}

func (s *Store) UpdateAutoWordReminder(ctx context.Context, userID, id uint, f AutoWordReminderFields) (Result[*model.AutoWordReminder], error) {
	got, err := s.getAutoWordReminder(ctx, userID, id)
	if err != nil || !got.OK() {
		return got, err
	}

	a := got.Value
	f.apply(a)

	if err := s.conn(ctx).Save(a).Error; err != nil {
		return Result[*model.AutoWordReminder]{}, fmt.Errorf("failed to update auto word reminder, %w", err)
	}

	return ok(a, msgSuccess), nil
}

func (s *Store) DeleteAutoWordReminder(ctx context.Context, userID, id uint) (Result[*model.AutoWordReminder], error) {
	got, err := s.getAutoWordReminder(ctx, userID, id)
	if err != nil || !got.OK() {
		return got, err
	}

	err = s.conn(ctx).
		Where("id = ?", id).
		Delete(&model.AutoWordReminder{}).
		Error
	if err != nil {
		return Result[*model.AutoWordReminder]{}, fmt.Errorf("failed to delete auto word reminder, %w", err)
	}

	return got, nil
}
