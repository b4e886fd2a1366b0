package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/healio-platform/healio-api/internal/domain/booking"
	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/httpresp"
	"github.com/healio-platform/healio-api/internal/middleware"
	"github.com/healio-platform/healio-api/internal/models"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

type CreateWindowRequest struct {
	Day  string `json:"day" binding:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// List returns a given approved therapist's windows when ?therapistId= is
// set (how patients see bookable slots). Without the parameter it returns
// the caller's own windows, which only makes sense for therapists.
func (h *AvailabilityHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	therapistID := userID
	raw := c.Query("therapistId")
	if raw == "" && c.GetString(middleware.ContextUserRole) != models.RoleTherapist {
		httperr.Forbidden(c, "forbidden", "Only therapists can list their own windows.")
		return
	}
	if raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_therapist_id", "therapistId must be numeric.")
			return
		}
		therapistID = uint(parsed)

		var therapist models.User
		if err := h.db.First(&therapist, therapistID).Error; err != nil ||
			therapist.Role != models.RoleTherapist ||
			therapist.TherapistStatus != models.TherapistApproved {
			httperr.NotFound(c, "therapist_not_found", "Therapist not found.")
			return
		}
	}

	var windows []models.AvailabilityWindow
	if err := h.db.
		Where("therapist_id = ?", therapistID).
		Order(`day ASC, "from" ASC`).
		Find(&windows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_availability", "Could not list availability.")
		return
	}

	httpresp.List(c, windows)
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !domain.ValidTime(req.From) || !domain.ValidTime(req.To) {
		httperr.BadRequest(c, "invalid_time", "from/to must be zero-padded HH:MM.")
		return
	}

	window := models.AvailabilityWindow{
		TherapistID: userID,
		Day:         req.Day,
		From:        req.From,
		To:          req.To,
	}

	if err := h.db.Create(&window).Error; err != nil {
		httperr.Internal(c, "failed_to_create_window", "Could not save availability window.")
		return
	}

	httpresp.Created(c, window)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be numeric.")
		return
	}

	res := h.db.
		Where("id = ? AND therapist_id = ?", uint(id), userID).
		Delete(&models.AvailabilityWindow{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_window", "Could not delete availability window.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "window_not_found", "Availability window not found.")
		return
	}

	httpresp.Success(c)
}
