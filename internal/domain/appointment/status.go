package appointment

import (
	"strings"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus accepts any casing and returns the canonical value.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled":
		return StatusScheduled, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	}
	return "", httperr.ErrValidation("invalid_status")
}

func InitialStatus() Status {
	return StatusScheduled
}

// Blocking reports whether an appointment in this status holds its slot.
func (s Status) Blocking() bool {
	return s != StatusCancelled
}
