package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonvoice/booking-api/internal/httperr"
	"github.com/salonvoice/booking-api/internal/models"
)

func TestStatusTransitions(t *testing.T) {
	assert.NoError(t, CanCancel(StatusPending))
	assert.NoError(t, CanCancel(StatusConfirmed))
	assert.True(t, httperr.IsKind(CanCancel(StatusCancelled), httperr.KindAlreadyCancelled))
	assert.True(t, httperr.IsKind(CanCancel(StatusCompleted), httperr.KindValidation))

	assert.NoError(t, CanConfirm(StatusPending))
	assert.Error(t, CanConfirm(StatusConfirmed))
	assert.Error(t, CanConfirm(StatusCancelled))

	assert.NoError(t, CanComplete(StatusPending))
	assert.NoError(t, CanComplete(StatusConfirmed))
	assert.Error(t, CanComplete(StatusCompleted))
}

func TestCancelSetsStatusAndTimestamp(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}
	now := time.Now()

	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.True(t, ap.CancelledAt.Equal(now))
}

func TestCancelTwiceKeepsStatus(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Cancel(ap, time.Now()))

	err := Cancel(ap, time.Now())
	assert.True(t, httperr.IsKind(err, httperr.KindAlreadyCancelled))
	assert.Equal(t, string(StatusCancelled), ap.Status)
}

func TestConfirmThenComplete(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}
	now := time.Now()

	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)

	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
}
