package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgUsernameTaken = "This username is already taken. Please choose a different one."

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (Result[*model.User], error) {
	u := &model.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	r := s.conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Omit(clause.Associations).
		Create(u)
	if r.Error != nil {
		return Result[*model.User]{}, fmt.Errorf("failed to create user, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return conflict[*model.User](nil, msgUsernameTaken), nil
	}

	return ok(u, msgSuccess), nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (Result[*model.User], error) {
	var u model.User

	err := s.conn(ctx).
		Where("id = ?", id).
		First(&u).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound[*model.User](EntityUser, id), nil
		}

		return Result[*model.User]{}, fmt.Errorf("failed to lookup user, %w", err)
	}

	return ok(&u, msgSuccess), nil
}

// DeleteUser removes a user together with everything they own. The deleted
// user words are returned.
func (s *Store) DeleteUser(ctx context.Context, id uint) (Result[[]model.UserWord], error) {
	var res Result[[]model.UserWord]

	err := s.Transaction(ctx, func(tx *Store) error {
		found, err := tx.Exists(ctx, EntityUser, id)
		if err != nil {
			return err
		}

		if !found {
			res = notFound[[]model.UserWord](EntityUser, id)
			return nil
		}

		userWords, err := tx.DeleteUserWordsByUser(ctx, id)
		if err != nil {
			return err
		}

		if _, err := tx.DeleteWordRemindersByUser(ctx, id); err != nil {
			return err
		}

		err = tx.conn(ctx).
			Where("user_id = ?", id).
			Delete(&model.AutoWordReminder{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete auto word reminder, %w", err)
		}

		err = tx.conn(ctx).
			Where("id = ?", id).
			Delete(&model.User{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete user, %w", err)
		}

		res = ok(userWords, msgSuccess)
		return nil
	})
	if err != nil {
		return Result[[]model.UserWord]{}, err
	}

	return res, nil
}
