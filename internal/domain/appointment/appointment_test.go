package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"Scheduled": StatusScheduled,
		"completed": StatusCompleted,
		"CANCELLED": StatusCancelled,
		" canceled": StatusCancelled,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseStatus("Done")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestWindowAndOverlap(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	s, e := Window(start, 0)
	assert.Equal(t, start.Add(30*time.Minute), e)

	// back-to-back slots do not overlap
	s2, e2 := Window(e, 45)
	assert.False(t, Overlaps(s, e, s2, e2))

	s3, e3 := Window(start.Add(15*time.Minute), 30)
	assert.True(t, Overlaps(s, e, s3, e3))
	assert.True(t, Overlaps(s, e, s, e))
}

func TestSchedule(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	ap := &models.Appointment{
		AppointmentTime: time.Date(2026, 3, 10, 11, 0, 0, 0, loc),
		Status:          "Completed",
	}
	Schedule(ap)

	assert.Equal(t, DefaultDuration, ap.Duration)
	assert.Equal(t, time.UTC, ap.AppointmentTime.Location())
	assert.Equal(t, 10, ap.AppointmentTime.Hour())
	assert.Equal(t, ap.AppointmentTime.Add(30*time.Minute), ap.EndTime)
	assert.Equal(t, string(StatusScheduled), ap.Status)
}
