package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	"github.com/BruksfildServices01/afritrim-api/internal/db/dbtest"
	apdomain "github.com/BruksfildServices01/afritrim-api/internal/domain/appointment"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/infra/repository"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type fixture struct {
	db      *gorm.DB
	repo    *repository.AppointmentGormRepository
	client  *models.Client
	barber  *models.Barber
	barber2 *models.Barber
	service *models.Service
	create  *CreateAppointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	shop := dbtest.Barbershop(t, db, "owner")
	repo := repository.NewAppointmentGormRepository(db)

	return &fixture{
		db:      db,
		repo:    repo,
		client:  dbtest.Client(t, db, "c1"),
		barber:  dbtest.Barber(t, db, "b1", &shop.ID),
		barber2: dbtest.Barber(t, db, "b2", &shop.ID),
		service: dbtest.Service(t, db, shop.ID, 25),
		create:  NewCreateAppointment(repo, audit.NewNop()),
	}
}

func (f *fixture) book(t *testing.T, barberID uint, at time.Time, minutes int) (*models.Appointment, error) {
	t.Helper()
	return f.create.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  f.client.ID,
		BarberID:  barberID,
		ServiceID: f.service.ID,
		Time:      at,
		Duration:  minutes,
	})
}

var tenAM = time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)

	ap, err := f.book(t, f.barber.ID, tenAM, 0)
	require.NoError(t, err)
	assert.Equal(t, "Scheduled", ap.Status)
	assert.Equal(t, 30, ap.Duration)
	assert.Equal(t, tenAM.Add(30*time.Minute), ap.EndTime)
}

func TestCreateAppointmentSameSlotConflicts(t *testing.T) {
	f := newFixture(t)

	_, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)

	_, err = f.book(t, f.barber.ID, tenAM, 30)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	var count int64
	require.NoError(t, f.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// another barber is free at the same time
	_, err = f.book(t, f.barber2.ID, tenAM, 30)
	assert.NoError(t, err)
}

func TestCreateAppointmentOverlapConflicts(t *testing.T) {
	f := newFixture(t)

	_, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)

	_, err = f.book(t, f.barber.ID, tenAM.Add(15*time.Minute), 30)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	_, err = f.book(t, f.barber.ID, tenAM.Add(-15*time.Minute), 30)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	// back-to-back is fine
	_, err = f.book(t, f.barber.ID, tenAM.Add(30*time.Minute), 30)
	assert.NoError(t, err)
}

func TestCancelledAppointmentFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)

	_, err = NewUpdateAppointmentStatus(f.repo, audit.NewNop()).Execute(ctx, ap.ID, "cancelled")
	require.NoError(t, err)

	_, err = f.book(t, f.barber.ID, tenAM, 30)
	assert.NoError(t, err)
}

func TestCreateAppointmentMissingReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, CreateAppointmentInput{
		ClientID: 999, BarberID: f.barber.ID, ServiceID: f.service.ID, Time: tenAM,
	})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = f.create.Execute(ctx, CreateAppointmentInput{
		ClientID: f.client.ID, BarberID: 999, ServiceID: f.service.ID, Time: tenAM,
	})
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	_, err = f.create.Execute(ctx, CreateAppointmentInput{
		ClientID: f.client.ID, BarberID: f.barber.ID, ServiceID: 999, Time: tenAM,
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestUpdateAppointmentStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewUpdateAppointmentStatus(f.repo, audit.NewNop())

	ap, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)

	updated, err := uc.Execute(ctx, ap.ID, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, "Completed", updated.Status)

	var stored models.Appointment
	require.NoError(t, f.db.First(&stored, ap.ID).Error)
	assert.Equal(t, "Completed", stored.Status)

	_, err = uc.Execute(ctx, ap.ID, "Done")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = uc.Execute(ctx, 999, "Completed")
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestUpdateAppointmentReschedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewUpdateAppointment(f.repo, audit.NewNop())

	first, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)
	second, err := f.book(t, f.barber.ID, tenAM.Add(time.Hour), 30)
	require.NoError(t, err)

	// shifting within its own old slot only overlaps itself
	shifted := tenAM.Add(70 * time.Minute)
	moved, err := uc.Execute(ctx, second.ID, UpdateAppointmentInput{Time: &shifted})
	require.NoError(t, err)
	assert.Equal(t, shifted.Add(30*time.Minute), moved.EndTime)

	// stretching the first one into the second conflicts
	long := 90
	_, err = uc.Execute(ctx, first.ID, UpdateAppointmentInput{Duration: &long})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	// moving it to the other barber does not
	_, err = uc.Execute(ctx, first.ID, UpdateAppointmentInput{BarberID: &f.barber2.ID, Duration: &long})
	assert.NoError(t, err)

	_, err = uc.Execute(ctx, 999, UpdateAppointmentInput{})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestListUpcomingForBarber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Date(2030, 1, 15, 12, 0, 0, 0, time.UTC)

	_, err := f.book(t, f.barber.ID, now.Add(-2*time.Hour), 30)
	require.NoError(t, err)
	late, err := f.book(t, f.barber.ID, now.Add(3*time.Hour), 30)
	require.NoError(t, err)
	soon, err := f.book(t, f.barber.ID, now.Add(time.Hour), 30)
	require.NoError(t, err)
	_, err = f.book(t, f.barber2.ID, now.Add(time.Hour), 30)
	require.NoError(t, err)

	uc := NewListUpcomingForBarber(f.repo)
	uc.now = func() time.Time { return now }

	got, err := uc.Execute(ctx, f.barber.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, soon.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)
	assert.Equal(t, f.client.Name, got[0].ClientName)
	assert.Equal(t, f.service.Name, got[0].ServiceName)

	_, err = uc.Execute(ctx, 999)
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}

func TestListAppointmentsByDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)
	_, err = f.book(t, f.barber.ID, tenAM.AddDate(0, 0, 1), 30)
	require.NoError(t, err)

	uc := NewListAppointments(f.repo, "UTC")

	all, err := uc.Execute(ctx, ListAppointmentsInput{BarberID: &f.barber.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	day := tenAM
	one, err := uc.Execute(ctx, ListAppointmentsInput{Date: &day})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, tenAM, one[0].AppointmentTime.UTC())
}

func TestGetAndDeleteAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)

	got, err := NewGetAppointment(f.repo).Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, f.barber.Name, got.BarberName)

	del := NewDeleteAppointment(f.repo, audit.NewNop())
	require.NoError(t, del.Execute(ctx, ap.ID))

	err = del.Execute(ctx, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = NewGetAppointment(f.repo).Execute(ctx, ap.ID)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestReviveCancelledAppointmentOnTakenSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewUpdateAppointmentStatus(f.repo, audit.NewNop())

	first, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)
	_, err = uc.Execute(ctx, first.ID, "Cancelled")
	require.NoError(t, err)

	second, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)

	for _, status := range []string{"Scheduled", "Completed"} {
		t.Run(status, func(t *testing.T) {
			_, err := uc.Execute(ctx, first.ID, status)
			assert.True(t, httperr.IsBusiness(err, "time_conflict"))

			var stored models.Appointment
			require.NoError(t, f.db.First(&stored, first.ID).Error)
			assert.Equal(t, "Cancelled", stored.Status)
		})
	}

	// once the slot is free again the old booking can come back
	_, err = uc.Execute(ctx, second.ID, "Cancelled")
	require.NoError(t, err)

	revived, err := uc.Execute(ctx, first.ID, "scheduled")
	require.NoError(t, err)
	assert.Equal(t, "Scheduled", revived.Status)
}

func TestCompletingScheduledAppointmentSkipsConflictCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)

	done, err := NewUpdateAppointmentStatus(f.repo, audit.NewNop()).Execute(ctx, ap.ID, "Completed")
	require.NoError(t, err)
	assert.Equal(t, "Completed", done.Status)
}

func TestSlotIndexRejectsDuplicateLiveBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.book(t, f.barber.ID, tenAM, 30)
	require.NoError(t, err)

	// a writer that skipped the conflict check still cannot double-book
	dup := &models.Appointment{
		ClientID: f.client.ID, BarberID: f.barber.ID, ServiceID: f.service.ID,
		AppointmentTime: tenAM, EndTime: tenAM.Add(30 * time.Minute), Duration: 30, Status: "Scheduled",
	}
	err = f.repo.CreateAppointment(ctx, dup)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	// cancelled rows do not hold the slot
	dup.ID = 0
	dup.Status = "Cancelled"
	assert.NoError(t, f.repo.CreateAppointment(ctx, dup))
}

func TestLockBarber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.repo.WithinTx(ctx, func(tx apdomain.Repository) error {
		b, err := tx.LockBarber(ctx, f.barber.ID)
		require.NoError(t, err)
		assert.Equal(t, f.barber.ID, b.ID)

		_, err = tx.LockBarber(ctx, 999)
		return err
	})
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}
