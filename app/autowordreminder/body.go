package autowordreminder

import (
	"errors"
	"strings"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"
)

type settingsBody struct {
	Reminder          string         `json:"reminder"`
	IsActive          *bool          `json:"isActive"`
	HasReminderOnload *bool          `json:"hasReminderOnload"`
	HasLearnedWords   *bool          `json:"hasLearnedWords"`
	SortMode          model.SortMode `json:"sortMode"`
	WordCount         int            `json:"wordCount"`
	Duration          int64          `json:"duration"`
	CreateNow         *bool          `json:"createNow"`
}

func (b *settingsBody) fields() (store.AutoWordReminderFields, error) {
	b.Reminder = strings.TrimSpace(b.Reminder)
	if err := validators.ReminderValidator(b.Reminder); err != nil {
		return store.AutoWordReminderFields{}, err
	}

	switch {
	case b.IsActive == nil:
		return store.AutoWordReminderFields{}, errors.New("'isActive' must be specified.")
	case b.HasReminderOnload == nil:
		return store.AutoWordReminderFields{}, errors.New("'hasReminderOnload' must be specified.")
	case b.HasLearnedWords == nil:
		return store.AutoWordReminderFields{}, errors.New("'hasLearnedWords' must be specified.")
	case b.CreateNow == nil:
		return store.AutoWordReminderFields{}, errors.New("'createNow' must be specified.")
	}

	if err := validators.AutoReminderValidator(b.SortMode, b.WordCount, b.Duration); err != nil {
		return store.AutoWordReminderFields{}, err
	}

	return store.AutoWordReminderFields{
		Reminder:          b.Reminder,
		IsActive:          *b.IsActive,
		HasReminderOnload: *b.HasReminderOnload,
		HasLearnedWords:   *b.HasLearnedWords,
		SortMode:          b.SortMode,
		WordCount:         b.WordCount,
		Duration:          b.Duration,
	}, nil
}
