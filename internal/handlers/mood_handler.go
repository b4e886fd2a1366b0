package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/httpresp"
	"github.com/healio-platform/healio-api/internal/middleware"
	"github.com/healio-platform/healio-api/internal/models"
)

type MoodHandler struct {
	db *gorm.DB
}

func NewMoodHandler(db *gorm.DB) *MoodHandler {
	return &MoodHandler{db: db}
}

type CreateMoodRequest struct {
	Mood      string `json:"mood" binding:"required,oneof=happy sad anxious angry neutral"`
	Intensity int    `json:"intensity" binding:"required,min=1,max=10"`
	Notes     string `json:"notes" binding:"max=500"`
}

func (h *MoodHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var entries []models.MoodEntry
	if err := h.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		httperr.Internal(c, "failed_to_list_moods", "Could not list mood entries.")
		return
	}

	httpresp.List(c, entries)
}

func (h *MoodHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	entry := models.MoodEntry{
		UserID:    userID,
		Mood:      req.Mood,
		Intensity: req.Intensity,
		Notes:     req.Notes,
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_mood", "Could not save mood entry.")
		return
	}

	httpresp.Created(c, entry)
}
