package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/healio-platform/healio-api/internal/domain/booking"
	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/httpresp"
	"github.com/healio-platform/healio-api/internal/middleware"
	"github.com/healio-platform/healio-api/internal/models"
	booking "github.com/healio-platform/healio-api/internal/usecase/booking"
)

type AppointmentHandler struct {
	book       *booking.BookAppointment
	confirm    *booking.ConfirmAppointment
	reschedule *booking.RescheduleAppointment
	cancel     *booking.CancelAppointment
	list       *booking.ListAppointments
}

func NewAppointmentHandler(
	book *booking.BookAppointment,
	confirm *booking.ConfirmAppointment,
	reschedule *booking.RescheduleAppointment,
	cancel *booking.CancelAppointment,
	list *booking.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:       book,
		confirm:    confirm,
		reschedule: reschedule,
		cancel:     cancel,
		list:       list,
	}
}

// --------- Requests ---------

type BookAppointmentRequest struct {
	TherapistID uint   `json:"therapist_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	SessionType string `json:"session_type"`
}

type UpdateAppointmentRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=confirmed"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	views, err := h.list.Execute(c.Request.Context(), userID, role)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, views)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), domain.BookInput{
		TherapistID: req.TherapistID,
		PatientID:   userID,
		Date:        req.Date,
		Time:        req.Time,
		SessionType: req.SessionType,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// Update handles the therapist-side PATCH. A request may confirm, move
// the slot, or both; when both are present the slot moves first so a
// confirmation always applies to the new slot.
func (h *AppointmentHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be numeric.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Status == "" && req.Date == "" && req.Time == "" {
		httperr.BadRequest(c, "empty_update", "Nothing to update.")
		return
	}
	if (req.Date == "") != (req.Time == "") {
		httperr.BadRequest(c, "incomplete_reschedule", "Rescheduling needs both date and time.")
		return
	}

	var ap *models.Appointment

	if req.Date != "" {
		ap, err = h.reschedule.Execute(c.Request.Context(), domain.RescheduleInput{
			AppointmentID: uint(id),
			TherapistID:   userID,
			Date:          req.Date,
			Time:          req.Time,
		})
		if err != nil {
			writeBookingError(c, err)
			return
		}
	}

	if req.Status == string(domain.StatusConfirmed) {
		ap, err = h.confirm.Execute(c.Request.Context(), userID, uint(id))
		if err != nil {
			writeBookingError(c, err)
			return
		}
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be numeric.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), userID, role, uint(id))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// writeBookingError maps validator outcomes onto HTTP statuses.
func writeBookingError(c *gin.Context, err error) {
	code, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch code {
	case httperr.CodeInvalidDate, httperr.CodeInvalidTime, httperr.CodeInvalidTherapist:
		httperr.BadRequest(c, code, "The requested booking is not valid.")
	case httperr.CodeAvailabilityViolation:
		httperr.Conflict(c, code, "The therapist is not available at that time.")
	case httperr.CodeSlotConflict:
		httperr.Conflict(c, code, "That slot is already booked.")
	case httperr.CodeInvalidState:
		httperr.Conflict(c, code, "The appointment cannot change to that state.")
	case httperr.CodeAppointmentNotFound:
		httperr.NotFound(c, code, "Appointment not found.")
	default:
		httperr.BadRequest(c, code, "The request could not be processed.")
	}
}
