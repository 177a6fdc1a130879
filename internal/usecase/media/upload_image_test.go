package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	"github.com/BruksfildServices01/afritrim-api/internal/db/dbtest"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/infra/imaging"
	"github.com/BruksfildServices01/afritrim-api/internal/infra/repository"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, size)
	return args.String(0), args.Error(1)
}

func pngBytes(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return &buf
}

func TestUploadImage(t *testing.T) {
	db := dbtest.Open(t)
	barber := dbtest.Barber(t, db, "b1", nil)

	store := new(mockStore)
	store.On("Upload", mock.Anything, "images/barber/1.webp", "image/webp", mock.AnythingOfType("int64")).
		Return("https://cdn.example/images/barber/1.webp", nil).Once()

	uc := NewUploadImage(repository.NewMediaGormRepository(db), store, imaging.NewEncoder(0), audit.NewNop(), zerolog.Nop())

	require.Equal(t, uint(1), barber.ID)
	url, err := uc.Execute(context.Background(), "barber", barber.ID, pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/images/barber/1.webp", url)

	var stored models.Barber
	require.NoError(t, db.First(&stored, barber.ID).Error)
	assert.Equal(t, url, stored.PhotoURL)
	store.AssertExpectations(t)
}

func TestUploadImageRejects(t *testing.T) {
	db := dbtest.Open(t)
	shop := dbtest.Barbershop(t, db, "owner")
	store := new(mockStore)
	uc := NewUploadImage(repository.NewMediaGormRepository(db), store, imaging.NewEncoder(0), audit.NewNop(), zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, "client", 1, pngBytes(t))
	assert.True(t, httperr.IsBusiness(err, "invalid_model"))

	_, err = uc.Execute(ctx, "service", 42, pngBytes(t))
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	_, err = uc.Execute(ctx, "barbershop", shop.ID, strings.NewReader("plain text"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))

	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadImageStoreFailure(t *testing.T) {
	db := dbtest.Open(t)
	shop := dbtest.Barbershop(t, db, "owner")

	store := new(mockStore)
	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("s3 down"))

	uc := NewUploadImage(repository.NewMediaGormRepository(db), store, imaging.NewEncoder(0), audit.NewNop(), zerolog.Nop())

	_, err := uc.Execute(context.Background(), "barbershop", shop.ID, pngBytes(t))
	assert.Equal(t, httperr.KindStorage, httperr.KindOf(err))

	var stored models.Barbershop
	require.NoError(t, db.First(&stored, shop.ID).Error)
	assert.Empty(t, stored.PhotoURL)
}
