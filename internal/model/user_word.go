package model

import "time"

// UserWord means "this user has this word in their dictionary". The
// (user_id, word_id) pair is unique.
type UserWord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_words_user_word" json:"user_id"`
	WordID    uint      `gorm:"not null;uniqueIndex:idx_user_words_user_word;index" json:"word_id"`
	Learned   bool      `gorm:"not null;default:false" json:"learned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Word *Word `gorm:"constraint:OnDelete:CASCADE" json:"word,omitempty"`
}
