package models

import "time"

const (
	RoleAdmin     = "admin"
	RolePatient   = "patient"
	RoleTherapist = "therapist"
)

const (
	TherapistPending  = "pending"
	TherapistApproved = "approved"
	TherapistRejected = "rejected"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'patient'" json:"role"`

	Age    int    `json:"age"`
	Gender string `gorm:"size:20" json:"gender"`

	// Therapist-only fields
	Specialization  string `gorm:"size:100" json:"specialization"`
	CertificateURL  string `gorm:"size:500" json:"certificate_url"`
	TherapistStatus string `gorm:"size:20" json:"therapist_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
