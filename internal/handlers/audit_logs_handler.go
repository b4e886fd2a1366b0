package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/httpresp"
	"github.com/healio-platform/healio-api/internal/models"
)

const auditLogDefaultLimit = 100

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the newest audit entries. Supports ?action= and ?limit=.
func (h *AuditLogsHandler) List(c *gin.Context) {
	limit := auditLogDefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			httperr.BadRequest(c, "invalid_limit", "limit must be between 1 and 500.")
			return
		}
		limit = parsed
	}

	q := h.db.Order("created_at DESC").Limit(limit)
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
