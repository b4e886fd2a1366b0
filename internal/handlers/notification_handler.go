package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/middleware"
	"github.com/healio-platform/healio-api/internal/models"
)

const notificationPageSize = 50

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// List returns the caller's most recent notifications plus the unread
// count. ?unread=true narrows the list to unread ones.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		q = q.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := q.
		Order("created_at DESC").
		Limit(notificationPageSize).
		Find(&notifications).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Could not list notifications.")
		return
	}

	var unread int64
	h.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&unread)

	c.JSON(200, gin.H{
		"data":   notifications,
		"total":  len(notifications),
		"unread": unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be numeric.")
		return
	}

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", uint(id), userID).
		Update("read", true)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_mark_read", "Could not update notification.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notification not found.")
		return
	}

	c.JSON(200, gin.H{"success": true})
}
