// Package model defines database models
package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	UserWords        []UserWord        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	WordReminders    []WordReminder    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AutoWordReminder *AutoWordReminder `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
