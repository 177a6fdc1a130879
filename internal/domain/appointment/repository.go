package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type ListFilter struct {
	BarberID *uint
	ClientID *uint
	// From and To bound appointment_time as [From, To).
	From *time.Time
	To   *time.Time
	// OwnerUID keeps appointments with barbers of that admin's shops.
	OwnerUID string
}

type Repository interface {
	// WithinTx runs fn against a repository bound to one transaction.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	// -------- References --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	// LockBarber row-locks the barber until the transaction ends. Every
	// booking path takes it before the conflict check so two bookings on
	// an empty slot serialize.
	LockBarber(ctx context.Context, id uint) (*models.Barber, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// -------- Appointment (create / conflict) --------
	// HasTimeConflict locks the barber's overlapping rows. excludeID
	// skips the appointment being rescheduled; zero means none.
	HasTimeConflict(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) (bool, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Appointment (read / change) --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	// GetAppointmentForUpdate row-locks the appointment until the
	// transaction ends.
	GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error

	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)
	ListUpcomingForBarber(ctx context.Context, barberID uint, now time.Time) ([]models.Appointment, error)
}
