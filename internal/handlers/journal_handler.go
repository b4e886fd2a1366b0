package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/httpresp"
	"github.com/healio-platform/healio-api/internal/middleware"
	"github.com/healio-platform/healio-api/internal/models"
)

type JournalHandler struct {
	db *gorm.DB
}

func NewJournalHandler(db *gorm.DB) *JournalHandler {
	return &JournalHandler{db: db}
}

type CreateJournalRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
	Mood    string `json:"mood" binding:"omitempty,oneof=happy sad anxious angry neutral"`
}

type UpdateJournalRequest struct {
	Title   string `json:"title" binding:"omitempty,max=200"`
	Content string `json:"content"`
	Mood    string `json:"mood" binding:"omitempty,oneof=happy sad anxious angry neutral"`
}

func (h *JournalHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var entries []models.JournalEntry
	if err := h.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		httperr.Internal(c, "failed_to_list_journal", "Could not list journal entries.")
		return
	}

	httpresp.List(c, entries)
}

func (h *JournalHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	entry := models.JournalEntry{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}
	if req.Mood != "" {
		entry.Mood = req.Mood
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_journal", "Could not save journal entry.")
		return
	}

	httpresp.Created(c, entry)
}

func (h *JournalHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be numeric.")
		return
	}

	var req UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var entry models.JournalEntry
	if err := h.db.
		Where("id = ? AND user_id = ?", uint(id), userID).
		First(&entry).Error; err != nil {
		httperr.NotFound(c, "entry_not_found", "Journal entry not found.")
		return
	}

	if req.Title != "" {
		entry.Title = req.Title
	}
	if req.Content != "" {
		entry.Content = req.Content
	}
	if req.Mood != "" {
		entry.Mood = req.Mood
	}

	if err := h.db.Save(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_update_journal", "Could not update journal entry.")
		return
	}

	httpresp.OK(c, entry)
}

func (h *JournalHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be numeric.")
		return
	}

	res := h.db.
		Where("id = ? AND user_id = ?", uint(id), userID).
		Delete(&models.JournalEntry{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_journal", "Could not delete journal entry.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "entry_not_found", "Journal entry not found.")
		return
	}

	httpresp.Success(c)
}
