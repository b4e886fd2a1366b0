package handlers

import (
	"gorm.io/gorm"

	"github.com/healio-platform/healio-api/internal/models"
)

// loadSettings returns the singleton settings row, creating it with
// defaults on first access.
func loadSettings(db *gorm.DB) *models.Settings {
	var s models.Settings
	db.Where(models.Settings{Key: "global"}).FirstOrCreate(&s)
	return &s
}
