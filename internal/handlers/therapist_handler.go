package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/httpresp"
	"github.com/healio-platform/healio-api/internal/models"
)

type TherapistHandler struct {
	db *gorm.DB
}

func NewTherapistHandler(db *gorm.DB) *TherapistHandler {
	return &TherapistHandler{db: db}
}

type TherapistView struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Avatar         string `json:"avatar"`
}

// List is the public-facing directory: approved therapists only.
func (h *TherapistHandler) List(c *gin.Context) {
	var therapists []models.User
	if err := h.db.
		Where("role = ? AND therapist_status = ?", models.RoleTherapist, models.TherapistApproved).
		Order("name ASC").
		Find(&therapists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_therapists", "Could not list therapists.")
		return
	}

	views := make([]TherapistView, 0, len(therapists))
	for _, t := range therapists {
		name := t.Name
		if name == "" {
			name = t.Email
		}
		views = append(views, TherapistView{
			ID:             t.ID,
			Name:           name,
			Specialization: t.Specialization,
			Avatar:         initials(name),
		})
	}

	httpresp.List(c, views)
}

// initials builds the two-letter avatar placeholder from a display name.
func initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "?"
	}

	first := strings.ToUpper(parts[0][:1])
	if len(parts) == 1 {
		return first
	}
	return first + strings.ToUpper(parts[len(parts)-1][:1])
}
