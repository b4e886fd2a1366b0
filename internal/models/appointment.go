package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TherapistID uint `gorm:"index" json:"therapist_id"`
	Therapist   User `gorm:"foreignKey:TherapistID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	PatientID uint `gorm:"index" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date string `gorm:"size:10;not null" json:"date"` // YYYY-MM-DD
	Time string `gorm:"size:5;not null" json:"time"`  // HH:MM

	SessionType string `gorm:"size:20;default:'video-call'" json:"session_type"`
	Status      string `gorm:"size:20;default:'pending'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
