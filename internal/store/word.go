package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgWordExists = "This word already exists."

func normalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// GetWordByWord looks a word up case-insensitively
func (s *Store) GetWordByWord(ctx context.Context, word string) (Result[*model.Word], error) {
	word = normalizeWord(word)

	var w model.Word

	err := preloadWord(s.conn(ctx), "").
		Where("word = ?", word).
		First(&w).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result[*model.Word]{
				Status:  StatusNotFound,
				Message: fmt.Sprintf("Word %q does not exist.", word),
			}, nil
		}

		return Result[*model.Word]{}, fmt.Errorf("failed to lookup word, %w", err)
	}

	return ok(&w, msgSuccess), nil
}

func (s *Store) GetWord(ctx context.Context, id uint) (Result[*model.Word], error) {
	var w model.Word

	err := preloadWord(s.conn(ctx), "").
		Where("id = ?", id).
		First(&w).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound[*model.Word](EntityWord, id), nil
		}

		return Result[*model.Word]{}, fmt.Errorf("failed to lookup word, %w", err)
	}

	return ok(&w, msgSuccess), nil
}

// CreateWord persists a word with its meanings, definitions and phonetics as
// one unit. When the word already exists, including when a concurrent
// request inserted it first, the stored row is returned with a Conflict
// status.
func (s *Store) CreateWord(ctx context.Context, w *model.Word) (Result[*model.Word], error) {
	if w == nil || normalizeWord(w.Word) == "" {
		return Result[*model.Word]{}, errors.New("word is empty")
	}

	w.Word = normalizeWord(w.Word)
	created := false

	err := s.Transaction(ctx, func(tx *Store) error {
		r := tx.conn(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "word"}}, DoNothing: true}).
			Omit(clause.Associations).
			Create(w)
		if r.Error != nil {
			return fmt.Errorf("failed to create word, %w", r.Error)
		}

		if r.RowsAffected == 0 {
			return nil
		}
		created = true

		for i := range w.Meanings {
			w.Meanings[i].WordID = w.ID
		}
		if len(w.Meanings) > 0 {
			if err := tx.conn(ctx).Create(&w.Meanings).Error; err != nil {
				return fmt.Errorf("failed to create meanings, %w", err)
			}
		}

		for i := range w.Phonetics {
			w.Phonetics[i].WordID = w.ID
		}
		if len(w.Phonetics) > 0 {
			if err := tx.conn(ctx).Create(&w.Phonetics).Error; err != nil {
				return fmt.Errorf("failed to create phonetics, %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return Result[*model.Word]{}, err
	}

	stored, err := s.GetWordByWord(ctx, w.Word)
	if err != nil {
		return Result[*model.Word]{}, err
	}

	if !stored.OK() {
		return Result[*model.Word]{}, fmt.Errorf("word %q vanished after create", w.Word)
	}

	if !created {
		return conflict(stored.Value, msgWordExists), nil
	}

	return stored, nil
}

// AddImages attaches images to a word. Images whose URL is already stored
// are skipped. The word's full image list is returned.
func (s *Store) AddImages(ctx context.Context, wordID uint, images []model.Image) ([]model.Image, error) {
	found, err := s.Exists(ctx, EntityWord, wordID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("word %d does not exist", wordID)
	}

	if len(images) > 0 {
		for i := range images {
			images[i].ID = 0
			images[i].WordID = wordID
		}

		err := s.conn(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "url"}}, DoNothing: true}).
			Create(&images).
			Error
		if err != nil {
			return nil, fmt.Errorf("failed to create images, %w", err)
		}
	}

	stored := []model.Image{}
	err = s.conn(ctx).
		Where("word_id = ?", wordID).
		Order("id").
		Find(&stored).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch images, %w", err)
	}

	return stored, nil
}
