package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	"github.com/BruksfildServices01/afritrim-api/internal/db/dbtest"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/review"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/infra/repository"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

func TestAverageRating(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewReviewGormRepository(db)
	barber := dbtest.Barber(t, db, "b1", nil)
	ctx := context.Background()

	avg := NewGetAverageRatingForBarber(repo)
	got, err := avg.Execute(ctx, barber.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	create := NewCreateReview(repo, audit.NewNop())
	for _, r := range []int{5, 4, 3} {
		_, err := create.Execute(ctx, CreateReviewInput{BarberID: barber.ID, Rating: r})
		require.NoError(t, err)
	}

	got, err = avg.Execute(ctx, barber.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got, 1e-9)
}

func TestCreateReviewValidation(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewReviewGormRepository(db)
	barber := dbtest.Barber(t, db, "b1", nil)
	uc := NewCreateReview(repo, audit.NewNop())
	ctx := context.Background()

	for _, r := range []int{0, 6} {
		_, err := uc.Execute(ctx, CreateReviewInput{BarberID: barber.ID, Rating: r})
		assert.True(t, httperr.IsBusiness(err, "invalid_rating"))
	}

	_, err := uc.Execute(ctx, CreateReviewInput{BarberID: 999, Rating: 4})
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	var n int64
	require.NoError(t, db.Model(&models.Review{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpdateListDeleteReview(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewReviewGormRepository(db)
	b1 := dbtest.Barber(t, db, "b1", nil)
	b2 := dbtest.Barber(t, db, "b2", nil)
	ctx := context.Background()

	create := NewCreateReview(repo, audit.NewNop())
	rv, err := create.Execute(ctx, CreateReviewInput{BarberID: b1.ID, Rating: 2, Comment: "meh"})
	require.NoError(t, err)
	_, err = create.Execute(ctx, CreateReviewInput{BarberID: b2.ID, Rating: 5})
	require.NoError(t, err)

	five, comment := 5, "great fade"
	updated, err := NewUpdateReview(repo, audit.NewNop()).Execute(ctx, rv.ID, UpdateReviewInput{
		Rating: &five, Comment: &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	seven := 7
	_, err = NewUpdateReview(repo, audit.NewNop()).Execute(ctx, rv.ID, UpdateReviewInput{Rating: &seven})
	assert.True(t, httperr.IsBusiness(err, "invalid_rating"))

	list, err := NewListReviews(repo).Execute(ctx, domain.Filter{BarberID: &b1.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "great fade", list[0].Comment)

	require.NoError(t, NewDeleteReview(repo, audit.NewNop()).Execute(ctx, rv.ID))
	_, err = NewGetReview(repo).Execute(ctx, rv.ID)
	assert.True(t, httperr.IsBusiness(err, "review_not_found"))
}

func TestCanUserLeaveReview(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewReviewGormRepository(db)
	shop := dbtest.Barbershop(t, db, "owner")
	barber := dbtest.Barber(t, db, "b1", &shop.ID)
	client := dbtest.Client(t, db, "c1")
	service := dbtest.Service(t, db, shop.ID, 20)
	ctx := context.Background()

	uc := NewCanUserLeaveReview(repo)

	ok, err := uc.Execute(ctx, client.ID, barber.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2030, 2, 1, 9, 0, 0, 0, time.UTC)
	ap := &models.Appointment{
		ClientID: client.ID, BarberID: barber.ID, ServiceID: service.ID,
		AppointmentTime: at, EndTime: at.Add(30 * time.Minute), Duration: 30, Status: "Scheduled",
	}
	require.NoError(t, db.Omit("Client", "Barber", "Service").Create(ap).Error)

	ok, err = uc.Execute(ctx, client.ID, barber.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Model(ap).Update("status", "Completed").Error)

	ok, got, err := uc.ForUID(ctx, "c1", barber.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, client.ID, got.ID)

	ok, got, err = uc.ForUID(ctx, "stranger", barber.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}
