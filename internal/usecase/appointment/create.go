package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/appointment"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/metrics"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	BarberID  uint
	ServiceID uint
	Time      time.Time
	// Duration in minutes; zero or negative means the default.
	Duration int
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.Time.IsZero() {
		return nil, httperr.ErrValidation("invalid_appointment_time")
	}

	ap := &models.Appointment{
		ClientID:        in.ClientID,
		BarberID:        in.BarberID,
		ServiceID:       in.ServiceID,
		AppointmentTime: in.Time,
		Duration:        in.Duration,
	}
	domain.Schedule(ap)

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		// --------------------------------------------------
		// References
		// --------------------------------------------------
		if _, err := tx.GetClient(ctx, in.ClientID); err != nil {
			return err
		}
		if _, err := tx.GetService(ctx, in.ServiceID); err != nil {
			return err
		}

		// --------------------------------------------------
		// Conflict (barber locked until commit)
		// --------------------------------------------------
		if _, err := tx.LockBarber(ctx, in.BarberID); err != nil {
			return err
		}
		busy, err := tx.HasTimeConflict(ctx, ap.BarberID, ap.AppointmentTime, ap.EndTime, 0)
		if err != nil {
			return err
		}
		if busy {
			return httperr.ErrConflict("time_conflict")
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			metrics.IncAppointmentConflict()
		}
		return nil, err
	}

	metrics.IncAppointmentCreated()

	uc.audit.DispatchCtx(ctx, audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id":        ap.BarberID,
			"client_id":        ap.ClientID,
			"appointment_time": ap.AppointmentTime,
		},
	})

	return ap, nil
}
