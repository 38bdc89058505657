package validators

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"github.com/robfig/cron/v3"
)

var (
	ErrReminderEmpty    = errors.New("'reminder' must be specified.")
	ErrFinishEmpty      = errors.New("'finish' must be specified.")
	ErrFinishPast       = errors.New("'finish' must come after the current date.")
	ErrSortModeInvalid  = fmt.Errorf("'sort_mode' must be a value in this enum: %s.", joinSortModes())
	ErrWordCountInvalid = errors.New("'word_count' must be a positive integer.")
	ErrDurationInvalid  = errors.New("'duration' must be a positive integer.")
)

// Cron specs may carry an optional seconds field
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ReminderValidator checks that a reminder is a valid cron expression
func ReminderValidator(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return ErrReminderEmpty
	}

	if _, err := cronParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid reminder, %w", err)
	}

	return nil
}

func FinishValidator(finish time.Time, now time.Time) error {
	if finish.IsZero() {
		return ErrFinishEmpty
	}

	if !finish.After(now) {
		return ErrFinishPast
	}

	return nil
}

// AutoReminderValidator checks the settings used to generate reminders
func AutoReminderValidator(mode model.SortMode, wordCount int, duration int64) error {
	if !mode.Valid() {
		return ErrSortModeInvalid
	}

	if wordCount <= 0 {
		return ErrWordCountInvalid
	}

	if duration <= 0 {
		return ErrDurationInvalid
	}

	return nil
}

func joinSortModes() string {
	modes := make([]string, len(model.SortModes))
	for i, m := range model.SortModes {
		modes[i] = string(m)
	}

	return strings.Join(modes, ",")
}
