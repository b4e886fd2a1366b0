package models

import "time"

type MoodEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Mood      string `gorm:"size:20;not null" json:"mood"` // happy|sad|anxious|angry|neutral
	Intensity int    `gorm:"not null" json:"intensity"`    // 1..10
	Notes     string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
