package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

func TestCancelSetsStatusAndTimestamp(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}
	now := time.Now()

	require.NoError(t, Cancel(ap, now))

	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)
}

func TestCancelRejectsNonScheduled(t *testing.T) {
	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}

		err := Cancel(ap, time.Now())

		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		assert.Equal(t, string(status), ap.Status)
	}
}

func TestCompleteSetsStatusAndTimestamp(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}
	now := time.Now()

	require.NoError(t, Complete(ap, now))

	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestCompleteRejectsNonScheduled(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusCancelled)}

	err := Complete(ap, time.Now())

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
