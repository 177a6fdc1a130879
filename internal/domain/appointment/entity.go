package appointment

import (
	"time"

	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

const DefaultDuration = 30

// NormalizeDuration falls back to DefaultDuration for missing or
// non-positive values.
func NormalizeDuration(minutes int) int {
	if minutes <= 0 {
		return DefaultDuration
	}
	return minutes
}

// Window returns the half-open interval [start, end) an appointment occupies.
func Window(start time.Time, minutes int) (time.Time, time.Time) {
	start = start.UTC()
	return start, start.Add(time.Duration(NormalizeDuration(minutes)) * time.Minute)
}

func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ===============================
// Domain Actions
// ===============================

func Schedule(ap *models.Appointment) {
	ap.Duration = NormalizeDuration(ap.Duration)
	ap.AppointmentTime, ap.EndTime = Window(ap.AppointmentTime, ap.Duration)
	ap.Status = string(InitialStatus())
}

func SetStatus(ap *models.Appointment, status Status, now time.Time) {
	ap.Status = string(status)
	ap.UpdatedAt = now
}
