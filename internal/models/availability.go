package models

import "time"

// AvailabilityWindow is a recurring weekly range during which a therapist
// accepts bookings. From/To are zero-padded "HH:MM" strings; the zero
// padding is what makes lexicographic comparison valid.
type AvailabilityWindow struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TherapistID uint `gorm:"index" json:"therapist_id"`
	Therapist   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Day  string `gorm:"size:10;not null" json:"day"`
	From string `gorm:"size:5;not null" json:"from"`
	To   string `gorm:"size:5;not null" json:"to"`

	CreatedAt time.Time `json:"created_at"`
}
