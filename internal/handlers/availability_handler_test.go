package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/healio-platform/healio-api/internal/middleware"
	"github.com/healio-platform/healio-api/internal/models"
)

func listContext(t *testing.T, role, query string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/availability"+query, nil)
	c.Set(middleware.ContextUserID, uint(5))
	c.Set(middleware.ContextUserRole, role)
	return c, rec
}

func TestAvailabilityList(t *testing.T) {
	h := NewAvailabilityHandler(nil)

	t.Run("Patient Without TherapistId Is Forbidden", func(t *testing.T) {
		c, rec := listContext(t, models.RolePatient, "")
		h.List(c)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Rejects Non Numeric TherapistId", func(t *testing.T) {
		c, rec := listContext(t, models.RolePatient, "?therapistId=abc")
		h.List(c)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
