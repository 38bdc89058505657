package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListUserWordsOptions filters a user's dictionary. A nil Learned matches
// both learned and unlearned words.
type ListUserWordsOptions struct {
	Learned *bool
	Search  string
	Query   pagination.Query
}

var defaultUserWordOrder = pagination.Order{
	Key:       pagination.UserWordsCreatedAt,
	Direction: pagination.Descending,
}

// CreateUserWord adds a word to a user's dictionary. Adding the same word
// twice is not an error: the existing row is returned with a Conflict status.
// The unique (user_id, word_id) index is what guarantees a single row when
// requests race.
func (s *Store) CreateUserWord(ctx context.Context, userID, wordID uint) (Result[*model.UserWord], error) {
	found, err := s.Exists(ctx, EntityUser, userID)
	if err != nil {
		return Result[*model.UserWord]{}, err
	}
	if !found {
		return notFound[*model.UserWord](EntityUser, userID), nil
	}

	found, err = s.Exists(ctx, EntityWord, wordID)
	if err != nil {
		return Result[*model.UserWord]{}, err
	}
	if !found {
		return notFound[*model.UserWord](EntityWord, wordID), nil
	}

	existing, err := s.findUserWord(ctx, userID, wordID)
	if err != nil {
		return Result[*model.UserWord]{}, err
	}
	if existing != nil {
		return conflict(existing, msgAlreadyAdded), nil
	}

	uw := &model.UserWord{UserID: userID, WordID: wordID}

	r := s.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
			DoNothing: true,
		}).
		Omit(clause.Associations).
		Create(uw)
	if r.Error != nil {
		return Result[*model.UserWord]{}, fmt.Errorf("failed to create user word, %w", r.Error)
	}

	created := r.RowsAffected > 0

	uw, err = s.findUserWord(ctx, userID, wordID)
	if err != nil {
		return Result[*model.UserWord]{}, err
	}
	if uw == nil {
		return Result[*model.UserWord]{}, errors.New("user word vanished after create")
	}

	if !created {
		return conflict(uw, msgAlreadyAdded), nil
	}

	return ok(uw, msgSuccess), nil
}

func (s *Store) findUserWord(ctx context.Context, userID, wordID uint) (*model.UserWord, error) {
	var uw model.UserWord

	err := preloadWord(s.conn(ctx), "Word").
		Where("user_id = ? AND word_id = ?", userID, wordID).
		First(&uw).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to lookup user word, %w", err)
	}

	return &uw, nil
}

// GetUserWord returns a user word owned by userID with its word details
func (s *Store) GetUserWord(ctx context.Context, userID, id uint) (Result[*model.UserWord], error) {
	var uw model.UserWord

	err := preloadWord(s.conn(ctx), "Word").
		Where("id = ? AND user_id = ?", id, userID).
		First(&uw).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound[*model.UserWord](EntityUserWord, id), nil
		}

		return Result[*model.UserWord]{}, fmt.Errorf("failed to lookup user word, %w", err)
	}

	return ok(&uw, msgSuccess), nil
}

func (s *Store) SetLearned(ctx context.Context, userID, id uint, learned bool) (Result[*model.UserWord], error) {
	r := s.conn(ctx).
		Model(&model.UserWord{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("learned", learned)
	if r.Error != nil {
		return Result[*model.UserWord]{}, fmt.Errorf("failed to update user word, %w", r.Error)
	}

	// Unchanged values report zero rows on some drivers, so existence is
	// decided by the read below
	return s.GetUserWord(ctx, userID, id)
}

// DeleteUserWord removes a user word and every link to it
func (s *Store) DeleteUserWord(ctx context.Context, userID, id uint) (Result[*model.UserWord], error) {
	var res Result[*model.UserWord]

	err := s.Transaction(ctx, func(tx *Store) error {
		got, err := tx.GetUserWord(ctx, userID, id)
		if err != nil {
			return err
		}
		if !got.OK() {
			res = got
			return nil
		}

		err = tx.conn(ctx).
			Where("user_word_id = ?", id).
			Delete(&model.UserWordReminderLink{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete user word links, %w", err)
		}

		err = tx.conn(ctx).
			Where("id = ?", id).
			Delete(&model.UserWord{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete user word, %w", err)
		}

		res = ok(got.Value, msgSuccess)
		return nil
	})
	if err != nil {
		return Result[*model.UserWord]{}, err
	}

	return res, nil
}

// DeleteUserWordsByUser removes every user word a user owns along with
// their links. Deleting for a user with no words returns an empty slice.
func (s *Store) DeleteUserWordsByUser(ctx context.Context, userID uint) ([]model.UserWord, error) {
	userWords := []model.UserWord{}

	err := s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.UnlinkAllByUser(ctx, userID); err != nil {
			return err
		}

		err := tx.conn(ctx).
			Where("user_id = ?", userID).
			Order("id").
			Find(&userWords).
			Error
		if err != nil {
			return fmt.Errorf("failed to lookup user words, %w", err)
		}

		if len(userWords) == 0 {
			return nil
		}

		err = tx.conn(ctx).
			Where("user_id = ?", userID).
			Delete(&model.UserWord{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete user words, %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return userWords, nil
}

// ListUserWords returns a window of a user's dictionary joined with the word
// details. totalRows counts every matching row before the window is applied.
func (s *Store) ListUserWords(ctx context.Context, userID uint, opts ListUserWordsOptions) (pagination.List[model.UserWord], error) {
	base := s.conn(ctx).
		Model(&model.UserWord{}).
		Joins("JOIN words ON words.id = user_words.word_id").
		Where("user_words.user_id = ?", userID)

	if opts.Learned != nil {
		base = base.Where("user_words.learned = ?", *opts.Learned)
	}

	if search := normalizeWord(opts.Search); search != "" {
		base = base.Where("words.word LIKE ? ESCAPE '!'", "%"+escapeLike(search)+"%")
	}

	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return pagination.List[model.UserWord]{}, fmt.Errorf("failed to count user words, %w", err)
	}

	items := []model.UserWord{}
	if total > 0 {
		err := preloadWord(opts.Query.Apply(base, defaultUserWordOrder), "Word").
			Find(&items).
			Error
		if err != nil {
			return pagination.List[model.UserWord]{}, fmt.Errorf("failed to list user words, %w", err)
		}
	}

	return pagination.NewList(items, opts.Query.Meta(total)), nil
}

// SelectUserWords picks up to count of a user's words with the given learned
// flag, ordered by mode. It backs automatically generated reminders.
func (s *Store) SelectUserWords(ctx context.Context, userID uint, count int, learned bool, mode model.SortMode) ([]model.UserWord, error) {
	q := preloadWord(s.conn(ctx), "Word").
		Where("user_id = ? AND learned = ?", userID, learned).
		Limit(count)

	switch mode {
	case model.SortModeNewest:
		q = q.Order("created_at DESC").Order("id DESC")
	case model.SortModeOldest:
		q = q.Order("created_at ASC").Order("id ASC")
	case model.SortModeRandom:
		q = q.Order(s.randomFunc())
	default:
		return nil, fmt.Errorf("unknown sort mode %q", string(mode))
	}

	userWords := []model.UserWord{}
	if err := q.Find(&userWords).Error; err != nil {
		return nil, fmt.Errorf("failed to select user words, %w", err)
	}

	return userWords, nil
}

func (s *Store) randomFunc() string {
	if s.db.Dialector.Name() == "mysql" {
		return "RAND()"
	}

	return "RANDOM()"
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
