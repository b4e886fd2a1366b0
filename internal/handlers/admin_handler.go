package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/healio-platform/healio-api/internal/audit"
	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/httpresp"
	"github.com/healio-platform/healio-api/internal/mailer"
	"github.com/healio-platform/healio-api/internal/middleware"
	"github.com/healio-platform/healio-api/internal/models"
	"github.com/healio-platform/healio-api/internal/timezone"
)

type AdminHandler struct {
	db      *gorm.DB
	mail    mailer.Mailer
	audit   *audit.Dispatcher
	baseURL string
	log     *zap.Logger
}

func NewAdminHandler(
	db *gorm.DB,
	mail mailer.Mailer,
	auditor *audit.Dispatcher,
	baseURL string,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		db:      db,
		mail:    mail,
		audit:   auditor,
		baseURL: baseURL,
		log:     log,
	}
}

// ======================================================
// Users & Therapists
// ======================================================

func (h *AdminHandler) Users(c *gin.Context) {
	q := h.db.Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	httpresp.List(c, users)
}

func (h *AdminHandler) Therapists(c *gin.Context) {
	q := h.db.Where("role = ?", models.RoleTherapist).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("therapist_status = ?", status)
	}

	var therapists []models.User
	if err := q.Find(&therapists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_therapists", "Could not list therapists.")
		return
	}

	httpresp.List(c, therapists)
}

type UpdateTherapistRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// UpdateTherapist moves a therapist through the review workflow. An
// approval triggers a best-effort email; a mail failure never rolls the
// status back.
func (h *AdminHandler) UpdateTherapist(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be numeric.")
		return
	}

	var req UpdateTherapistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var therapist models.User
	if err := h.db.
		Where("id = ? AND role = ?", uint(id), models.RoleTherapist).
		First(&therapist).Error; err != nil {
		httperr.NotFound(c, "therapist_not_found", "Therapist not found.")
		return
	}

	previous := therapist.TherapistStatus
	therapist.TherapistStatus = req.Status
	if err := h.db.Save(&therapist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_therapist", "Could not update therapist.")
		return
	}

	if req.Status == models.TherapistApproved && previous != models.TherapistApproved {
		subject, body := mailer.TherapistApproval(therapist.Name, h.baseURL)
		if err := h.mail.Send(therapist.Email, subject, body); err != nil {
			h.log.Warn("approval email failed",
				zap.Uint("therapist_id", therapist.ID),
				zap.Error(err),
			)
		}
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "therapist_status_changed",
		Entity:   "user",
		EntityID: &therapist.ID,
		Metadata: map[string]string{"from": previous, "to": req.Status},
	})

	httpresp.OK(c, therapist)
}

// ======================================================
// Stats & Reports
// ======================================================

func (h *AdminHandler) Stats(c *gin.Context) {
	var (
		totalUsers        int64
		patients          int64
		therapists        int64
		pendingTherapists int64
		appointments      int64
		moodEntries       int64
		journalEntries    int64
	)

	h.db.Model(&models.User{}).Count(&totalUsers)
	h.db.Model(&models.User{}).Where("role = ?", models.RolePatient).Count(&patients)
	h.db.Model(&models.User{}).Where("role = ?", models.RoleTherapist).Count(&therapists)
	h.db.Model(&models.User{}).
		Where("role = ? AND therapist_status = ?", models.RoleTherapist, models.TherapistPending).
		Count(&pendingTherapists)
	h.db.Model(&models.Appointment{}).Count(&appointments)
	h.db.Model(&models.MoodEntry{}).Count(&moodEntries)
	h.db.Model(&models.JournalEntry{}).Count(&journalEntries)

	var recent []models.AuditLog
	h.db.Order("created_at DESC").Limit(10).Find(&recent)

	c.JSON(http.StatusOK, gin.H{
		"total_users":        totalUsers,
		"patients":           patients,
		"therapists":         therapists,
		"pending_therapists": pendingTherapists,
		"appointments":       appointments,
		"mood_entries":       moodEntries,
		"journal_entries":    journalEntries,
		"recent_activity":    recent,
	})
}

type dayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type therapistLoad struct {
	TherapistID uint   `json:"therapist_id"`
	Name        string `json:"name"`
	Count       int64  `json:"count"`
}

// Reports aggregates platform activity over the last ?days=N days
// (default 30, capped at 365).
func (h *AdminHandler) Reports(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httperr.BadRequest(c, "invalid_days", "days must be a positive integer.")
			return
		}
		days = parsed
	}
	if days > 365 {
		days = 365
	}

	since := timezone.Now().AddDate(0, 0, -days)

	var usersByDay []dayCount
	h.db.Model(&models.User{}).
		Select("to_char(created_at, 'YYYY-MM-DD') AS day, count(*) AS count").
		Where("created_at >= ?", since).
		Group("day").Order("day ASC").
		Scan(&usersByDay)

	var sessionsByDay []dayCount
	h.db.Model(&models.Appointment{}).
		Select("to_char(created_at, 'YYYY-MM-DD') AS day, count(*) AS count").
		Where("created_at >= ?", since).
		Group("day").Order("day ASC").
		Scan(&sessionsByDay)

	var statusDistribution []statusCount
	h.db.Model(&models.Appointment{}).
		Select("status, count(*) AS count").
		Where("created_at >= ?", since).
		Group("status").
		Scan(&statusDistribution)

	var total, cancelled int64
	for _, s := range statusDistribution {
		total += s.Count
		if s.Status == "cancelled" {
			cancelled = s.Count
		}
	}
	cancellationRate := 0.0
	if total > 0 {
		cancellationRate = float64(cancelled) / float64(total)
	}

	var topTherapists []therapistLoad
	h.db.Model(&models.Appointment{}).
		Select("appointments.therapist_id, users.name, count(*) AS count").
		Joins("JOIN users ON users.id = appointments.therapist_id").
		Where("appointments.created_at >= ?", since).
		Group("appointments.therapist_id, users.name").
		Order("count DESC").
		Limit(5).
		Scan(&topTherapists)

	c.JSON(http.StatusOK, gin.H{
		"days":                days,
		"since":               timezone.DayString(since),
		"users_by_day":        usersByDay,
		"sessions_by_day":     sessionsByDay,
		"status_distribution": statusDistribution,
		"cancellation_rate":   cancellationRate,
		"top_therapists":      topTherapists,
	})
}

// ======================================================
// Settings
// ======================================================

type UpdateSettingsRequest struct {
	BrandName        *string `json:"brand_name" binding:"omitempty,max=100"`
	LogoURL          *string `json:"logo_url" binding:"omitempty,max=500"`
	EmailFromName    *string `json:"email_from_name" binding:"omitempty,max=100"`
	EmailFromAddress *string `json:"email_from_address" binding:"omitempty,email"`

	AllowSelfRegistration *bool `json:"allow_self_registration"`
	AutoApproveTherapists *bool `json:"auto_approve_therapists"`
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	httpresp.OK(c, loadSettings(h.db))
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	settings := loadSettings(h.db)

	if req.BrandName != nil {
		settings.BrandName = *req.BrandName
	}
	if req.LogoURL != nil {
		settings.LogoURL = *req.LogoURL
	}
	if req.EmailFromName != nil {
		settings.EmailFromName = *req.EmailFromName
	}
	if req.EmailFromAddress != nil {
		settings.EmailFromAddress = *req.EmailFromAddress
	}
	if req.AllowSelfRegistration != nil {
		settings.AllowSelfRegistration = *req.AllowSelfRegistration
	}
	if req.AutoApproveTherapists != nil {
		settings.AutoApproveTherapists = *req.AutoApproveTherapists
	}

	settings.UpdatedAt = time.Now()
	if err := h.db.Save(settings).Error; err != nil {
		httperr.Internal(c, "failed_to_update_settings", "Could not update settings.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &adminID,
		Action: "settings_updated",
		Entity: "settings",
	})

	httpresp.OK(c, settings)
}
