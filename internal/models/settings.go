package models

import "time"

// Settings is a singleton row keyed by "global".
type Settings struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	Key string `gorm:"size:20;uniqueIndex;default:'global'" json:"key"`

	BrandName        string `gorm:"size:100;default:'Healio'" json:"brand_name"`
	LogoURL          string `gorm:"size:500" json:"logo_url"`
	EmailFromName    string `gorm:"size:100;default:'Healio Admin'" json:"email_from_name"`
	EmailFromAddress string `gorm:"size:100;default:'no-reply@healio.local'" json:"email_from_address"`

	AllowSelfRegistration bool `gorm:"default:true" json:"allow_self_registration"`
	AutoApproveTherapists bool `gorm:"default:false" json:"auto_approve_therapists"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
