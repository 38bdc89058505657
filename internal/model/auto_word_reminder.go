package model

import (
	"slices"
	"time"
)

type SortMode string

const (
	SortModeNewest SortMode = "newest"
	SortModeOldest SortMode = "oldest"
	SortModeRandom SortMode = "random"
)

var SortModes = []SortMode{SortModeNewest, SortModeOldest, SortModeRandom}

func (m SortMode) Valid() bool {
	return slices.Contains(SortModes, m)
}

// AutoWordReminder holds the settings used to generate word reminders
// automatically. A user has at most one.
type AutoWordReminder struct {
	ID                uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            uint     `gorm:"not null;uniqueIndex" json:"user_id"`
	Reminder          string   `gorm:"size:128;not null" json:"reminder"`
	IsActive          bool     `gorm:"not null" json:"is_active"`
	HasReminderOnload bool     `gorm:"not null" json:"has_reminder_onload"`
	HasLearnedWords   bool     `gorm:"not null" json:"has_learned_words"`
	SortMode          SortMode `gorm:"size:16;not null" json:"sort_mode"`
	WordCount         int      `gorm:"not null" json:"word_count"`
	// Milliseconds between creation and finish of every generated reminder
	Duration  int64     `gorm:"not null" json:"duration"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *AutoWordReminder) FinishDuration() time.Duration {
	return time.Duration(a.Duration) * time.Millisecond
}
