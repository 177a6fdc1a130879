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

type UpdateAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute sets the status. Moving a cancelled appointment back to a status
// that holds the slot re-checks the barber's calendar first.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	id uint,
	status string,
) (*models.Appointment, error) {

	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		ap   *models.Appointment
		prev string
	)

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForUpdate(ctx, id)
		if err != nil {
			return err
		}
		prev = ap.Status

		if !domain.Status(prev).Blocking() && st.Blocking() {
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

		domain.SetStatus(ap, st, uc.now())
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": prev, "to": ap.Status},
	})

	return ap, nil
}
