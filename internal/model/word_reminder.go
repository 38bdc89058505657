package model

import "time"

type WordReminder struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	// Cron expression describing how often the reminder fires
	Reminder          string    `gorm:"size:128;not null" json:"reminder"`
	IsActive          bool      `gorm:"not null" json:"is_active"`
	HasReminderOnload bool      `gorm:"not null" json:"has_reminder_onload"`
	Finish            time.Time `gorm:"not null;index" json:"finish"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Resolved through user_words_word_reminders, never persisted directly
	UserWords []UserWord `gorm:"-" json:"user_words"`
}

// UserWordReminderLink is the junction row between a user word and a word
// reminder. The pair is unique.
type UserWordReminderLink struct {
	ID             uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserWordID     uint `gorm:"not null;uniqueIndex:idx_user_words_word_reminders_pair" json:"user_word_id"`
	WordReminderID uint `gorm:"not null;uniqueIndex:idx_user_words_word_reminders_pair;index" json:"word_reminder_id"`

	UserWord     *UserWord     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	WordReminder *WordReminder `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (UserWordReminderLink) TableName() string {
	return "user_words_word_reminders"
}
