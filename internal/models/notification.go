package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Type  string `gorm:"size:30;not null" json:"type"` // e.g. "appointment"
	Title string `gorm:"size:200;not null" json:"title"`
	Body  string `gorm:"size:500" json:"body"`

	// JSON payload (appointment id, counterpart id, ...)
	Data string `gorm:"type:text" json:"data"`

	Read bool `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
