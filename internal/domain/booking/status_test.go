package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	t.Run("Confirm", func(t *testing.T) {
		assert.NoError(t, CanConfirm(StatusPending))
		assert.Error(t, CanConfirm(StatusConfirmed))
		assert.Error(t, CanConfirm(StatusCancelled))
	})

	t.Run("Cancel", func(t *testing.T) {
		assert.NoError(t, CanCancel(StatusPending))
		assert.NoError(t, CanCancel(StatusConfirmed))
		assert.Error(t, CanCancel(StatusCancelled), "cancelled is terminal")
	})

	t.Run("Reschedule", func(t *testing.T) {
		assert.NoError(t, CanReschedule(StatusPending))
		assert.NoError(t, CanReschedule(StatusConfirmed))
		assert.Error(t, CanReschedule(StatusCancelled))
	})
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus())
}
