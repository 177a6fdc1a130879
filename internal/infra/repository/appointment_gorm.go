package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/appointment"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := first(ctx, r.db, &client, id, "client_not_found"); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var barber models.Barber
	if err := first(ctx, r.db, &barber, id, "barber_not_found"); err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) LockBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var barber models.Barber
	if err := first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), &barber, id, "barber_not_found"); err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := first(ctx, r.db, &service, id, "service_not_found"); err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) HasTimeConflict(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barber_id = ? AND status <> ? AND appointment_time < ? AND end_time > ?",
			barberID,
			string(domain.StatusCancelled),
			end,
			start,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	// Postgres refuses FOR UPDATE on aggregates, so lock and pluck ids.
	var ids []uint
	if err := q.Pluck("id", &ids).Error; err != nil {
		return false, httperr.FromStore(err, "")
	}

	return len(ids) > 0, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error; err != nil {
		if httperr.IsUniqueViolation(err) || httperr.IsExclusionConflict(err) {
			return httperr.ErrConflict("time_conflict")
		}
		return httperr.FromStore(err, "")
	}
	return nil
}

// --------------------------------------------------
// Appointment (read / change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withRefs(ctx).First(&ap, id).Error; err != nil {
		return nil, httperr.FromStore(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withRefs(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {
		return nil, httperr.FromStore(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error; err != nil {
		if httperr.IsUniqueViolation(err) || httperr.IsExclusionConflict(err) {
			return httperr.ErrConflict("time_conflict")
		}
		return httperr.FromStore(err, "appointment_not_found")
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Appointment{}, id, "appointment_not_found")
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.withRefs(ctx)
	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.From != nil {
		q = q.Where("appointment_time >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("appointment_time < ?", f.To.UTC())
	}
	if f.OwnerUID != "" {
		fresh := r.db.Session(&gorm.Session{NewDB: true})
		q = q.Where("barber_id IN (?)", fresh.Unscoped().
			Model(&models.Barber{}).
			Select("id").
			Where("barbershop_id IN (?)", fresh.Model(&models.Barbershop{}).
				Select("id").
				Where("admin_id = ?", f.OwnerUID)))
	}

	var apps []models.Appointment
	if err := q.Order("appointment_time ASC").Find(&apps).Error; err != nil {
		return nil, httperr.FromStore(err, "")
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListUpcomingForBarber(
	ctx context.Context,
	barberID uint,
	now time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.withRefs(ctx).
		Where("barber_id = ? AND appointment_time > ?", barberID, now.UTC()).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.FromStore(err, "")
	}
	return apps, nil
}

// withRefs preloads the client and service, archived rows included, so
// history still shows who booked what.
func (r *AppointmentGormRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client", unscoped).
		Preload("Barber", unscoped).
		Preload("Service")
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
