package wordreminder

import (
	"errors"
	"strings"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/service"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"
)

var (
	errIsActiveMissing          = errors.New("'isActive' must be specified.")
	errHasReminderOnloadMissing = errors.New("'hasReminderOnload' must be specified.")
	errHasLearnedWordsMissing   = errors.New("'hasLearnedWords' must be specified.")
	errUserWordsMissing         = errors.New("'userWords' must be specified.")
)

// reminderBody is the request of both creation modes. Auto selects which
// group of fields is read.
type reminderBody struct {
	Auto              bool       `json:"auto"`
	Reminder          string     `json:"reminder"`
	IsActive          *bool      `json:"isActive"`
	HasReminderOnload *bool      `json:"hasReminderOnload"`
	Finish            *time.Time `json:"finish"`
	UserWords         []uint     `json:"userWords"`

	WordCount       int            `json:"wordCount"`
	HasLearnedWords *bool          `json:"hasLearnedWords"`
	SortMode        model.SortMode `json:"sortMode"`
	Duration        int64          `json:"duration"`
}

func (b *reminderBody) common() error {
	b.Reminder = strings.TrimSpace(b.Reminder)
	if err := validators.ReminderValidator(b.Reminder); err != nil {
		return err
	}

	if b.IsActive == nil {
		return errIsActiveMissing
	}

	if b.HasReminderOnload == nil {
		return errHasReminderOnloadMissing
	}

	return nil
}

func (b *reminderBody) explicit(now time.Time) (service.ExplicitReminder, error) {
	if err := b.common(); err != nil {
		return service.ExplicitReminder{}, err
	}

	var finish time.Time
	if b.Finish != nil {
		finish = *b.Finish
	}

	if err := validators.FinishValidator(finish, now); err != nil {
		return service.ExplicitReminder{}, err
	}

	if b.UserWords == nil {
		return service.ExplicitReminder{}, errUserWordsMissing
	}

	return service.ExplicitReminder{
		Reminder:          b.Reminder,
		IsActive:          *b.IsActive,
		HasReminderOnload: *b.HasReminderOnload,
		Finish:            finish,
		UserWordIDs:       b.UserWords,
	}, nil
}

func (b *reminderBody) auto() (service.AutoReminder, error) {
	if err := b.common(); err != nil {
		return service.AutoReminder{}, err
	}

	if b.HasLearnedWords == nil {
		return service.AutoReminder{}, errHasLearnedWordsMissing
	}

	if err := validators.AutoReminderValidator(b.SortMode, b.WordCount, b.Duration); err != nil {
		return service.AutoReminder{}, err
	}

	return service.AutoReminder{
		Reminder:          b.Reminder,
		IsActive:          *b.IsActive,
		HasReminderOnload: *b.HasReminderOnload,
		HasLearnedWords:   *b.HasLearnedWords,
		SortMode:          b.SortMode,
		WordCount:         b.WordCount,
		Duration:          b.Duration,
	}, nil
}
