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

// UpdateAppointmentInput changes only the fields that are set.
type UpdateAppointmentInput struct {
	BarberID  *uint
	ServiceID *uint
	Time      *time.Time
	Duration  *int
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForUpdate(ctx, id)
		if err != nil {
			return err
		}

		reslot := false

		if in.BarberID != nil && *in.BarberID != ap.BarberID {
			barber, err := tx.GetBarber(ctx, *in.BarberID)
			if err != nil {
				return err
			}
			ap.BarberID = barber.ID
			ap.Barber = *barber
			reslot = true
		}

		if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
			service, err := tx.GetService(ctx, *in.ServiceID)
			if err != nil {
				return err
			}
			ap.ServiceID = service.ID
			ap.Service = *service
		}

		if in.Time != nil {
			if in.Time.IsZero() {
				return httperr.ErrValidation("invalid_appointment_time")
			}
			ap.AppointmentTime = *in.Time
			reslot = true
		}

		if in.Duration != nil {
			ap.Duration = domain.NormalizeDuration(*in.Duration)
			reslot = true
		}

		ap.AppointmentTime, ap.EndTime = domain.Window(ap.AppointmentTime, ap.Duration)

		if reslot && domain.Status(ap.Status).Blocking() {
			if _, err := tx.LockBarber(ctx, ap.BarberID); err != nil {
				return err
			}
			busy, err := tx.HasTimeConflict(ctx, ap.BarberID, ap.AppointmentTime, ap.EndTime, ap.ID)
			if err != nil {
				return err
			}
			if busy {
				metrics.IncAppointmentConflict()
				return httperr.ErrConflict("time_conflict")
			}
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
