package user

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	"github.com/BruksfildServices01/afritrim-api/internal/db/dbtest"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/infra/repository"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type mockClaims struct {
	mock.Mock
}

func (m *mockClaims) SetClaims(ctx context.Context, uid string, c identity.Claims) error {
	return m.Called(ctx, uid, c).Error(0)
}

func (m *mockClaims) DeleteAccount(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func newRepo(t *testing.T) (*gorm.DB, *repository.UserGormRepository) {
	t.Helper()
	db := dbtest.Open(t)
	return db, repository.NewUserGormRepository(db)
}

func count(t *testing.T, db *gorm.DB, model any, unscoped bool) int64 {
	t.Helper()
	q := db.Model(model)
	if unscoped {
		q = q.Unscoped()
	}
	var n int64
	require.NoError(t, q.Count(&n).Error)
	return n
}

// ======================================================
// CreateUser
// ======================================================

func TestCreateUserPushesClaims(t *testing.T) {
	db, repo := newRepo(t)
	claims := new(mockClaims)
	claims.On("SetClaims", mock.Anything, "u1", identity.Claims{Barber: true}).Return(nil).Once()

	rec, err := NewCreateUser(repo, claims, audit.NewNop()).Execute(context.Background(), domain.Data{
		UID: "u1", Name: "Yaw", Email: "yaw@example.com",
	}, "barber")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleBarber, rec.Role)
	require.NotNil(t, rec.Barber)
	assert.NotZero(t, rec.Barber.ID)

	assert.EqualValues(t, 1, count(t, db, &models.Barber{}, false))
	claims.AssertExpectations(t)
}

func TestCreateUserRejects(t *testing.T) {
	db, repo := newRepo(t)
	dbtest.Client(t, db, "taken")
	claims := new(mockClaims)
	uc := NewCreateUser(repo, claims, audit.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, domain.Data{UID: "x", Name: "X"}, "owner")
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))

	_, err = uc.Execute(ctx, domain.Data{UID: "taken", Name: "T", Email: "t@example.com"}, "admin")
	assert.True(t, httperr.IsBusiness(err, "uid_already_registered"))
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	_, err = uc.Execute(ctx, domain.Data{UID: "y", Name: "Y", Email: "not-an-email"}, "client")
	assert.True(t, httperr.IsBusiness(err, "invalid_email"))

	claims.AssertNotCalled(t, "SetClaims", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUserRollsBackWhenClaimsFail(t *testing.T) {
	db, repo := newRepo(t)
	claims := new(mockClaims)
	claims.On("SetClaims", mock.Anything, "u2", mock.Anything).Return(errors.New("provider down"))

	_, err := NewCreateUser(repo, claims, audit.NewNop()).Execute(context.Background(), domain.Data{
		UID: "u2", Name: "Esi", Email: "esi@example.com",
	}, "client")
	assert.True(t, httperr.IsBusiness(err, "identity_claims_failed"))

	assert.Zero(t, count(t, db, &models.Client{}, true))
}

// ======================================================
// GetUserByUID
// ======================================================

func TestGetUserByUIDProbeOrder(t *testing.T) {
	db, repo := newRepo(t)
	uc := NewGetUserByUID(repo)
	ctx := context.Background()

	dbtest.Admin(t, db, "dual")
	dbtest.Client(t, db, "dual")
	dbtest.Barber(t, db, "barber-only", nil)

	rec, err := uc.Execute(ctx, "dual")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, rec.Role)

	rec, err = uc.Execute(ctx, "barber-only")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleBarber, rec.Role)

	rec, err = uc.Execute(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

// ======================================================
// UpdateUserRole
// ======================================================

func TestUpdateUserRoleClientToBarber(t *testing.T) {
	db, repo := newRepo(t)
	client := dbtest.Client(t, db, "u3")

	claims := new(mockClaims)
	claims.On("SetClaims", mock.Anything, "u3", identity.Claims{Barber: true}).Return(nil).Once()

	rec, err := NewUpdateUserRole(repo, claims, audit.NewNop()).Execute(context.Background(), "u3", "barber")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleBarber, rec.Role)
	assert.Equal(t, client.Email, rec.Barber.Email)

	// the client row is archived, not gone
	assert.Zero(t, count(t, db, &models.Client{}, false))
	assert.EqualValues(t, 1, count(t, db, &models.Client{}, true))

	got, err := NewGetUserByUID(repo).Execute(context.Background(), "u3")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleBarber, got.Role)
	claims.AssertExpectations(t)
}

func TestUpdateUserRoleIllegalTransition(t *testing.T) {
	db, repo := newRepo(t)
	dbtest.Client(t, db, "u4")
	claims := new(mockClaims)
	uc := NewUpdateUserRole(repo, claims, audit.NewNop())

	_, err := uc.Execute(context.Background(), "u4", "admin")
	assert.True(t, httperr.IsBusiness(err, "invalid_role_transition"))
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	assert.EqualValues(t, 1, count(t, db, &models.Client{}, false))
	assert.Zero(t, count(t, db, &models.Admin{}, true))

	_, err = uc.Execute(context.Background(), "ghost", "barber")
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))

	claims.AssertNotCalled(t, "SetClaims", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUserRoleRollsBackWhenClaimsFail(t *testing.T) {
	db, repo := newRepo(t)
	dbtest.Barber(t, db, "u5", nil)

	claims := new(mockClaims)
	claims.On("SetClaims", mock.Anything, "u5", mock.Anything).Return(errors.New("boom"))

	_, err := NewUpdateUserRole(repo, claims, audit.NewNop()).Execute(context.Background(), "u5", "admin")
	require.Error(t, err)

	assert.EqualValues(t, 1, count(t, db, &models.Barber{}, false))
	assert.Zero(t, count(t, db, &models.Admin{}, false))
}

// ======================================================
// DeleteUser
// ======================================================

func TestDeleteUser(t *testing.T) {
	db, repo := newRepo(t)
	dbtest.Client(t, db, "u6")

	claims := new(mockClaims)
	claims.On("DeleteAccount", mock.Anything, "u6").Return(nil).Once()

	uc := NewDeleteUser(repo, claims, audit.NewNop(), zerolog.Nop())
	require.NoError(t, uc.Execute(context.Background(), "u6"))
	assert.Zero(t, count(t, db, &models.Client{}, true))

	err := uc.Execute(context.Background(), "u6")
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
	claims.AssertExpectations(t)
}

func TestDeleteUserRollsBackWhenIdentityFails(t *testing.T) {
	db, repo := newRepo(t)
	dbtest.Client(t, db, "u7")

	claims := new(mockClaims)
	claims.On("DeleteAccount", mock.Anything, "u7").Return(errors.New("provider down"))

	err := NewDeleteUser(repo, claims, audit.NewNop(), zerolog.Nop()).Execute(context.Background(), "u7")
	assert.True(t, httperr.IsBusiness(err, "identity_delete_failed"))

	assert.EqualValues(t, 1, count(t, db, &models.Client{}, false))
}

// commitFailRepo runs the callback, then rolls back as if COMMIT failed.
type commitFailRepo struct {
	domain.Repository
}

var errCommit = errors.New("commit failed")

func (r commitFailRepo) WithinTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	return r.Repository.WithinTx(ctx, func(tx domain.Repository) error {
		if err := fn(tx); err != nil {
			return err
		}
		return errCommit
	})
}

func TestDeleteUserReportsReconciliation(t *testing.T) {
	db, repo := newRepo(t)
	dbtest.Barber(t, db, "u8", nil)

	claims := new(mockClaims)
	claims.On("DeleteAccount", mock.Anything, "u8").Return(nil)

	err := NewDeleteUser(commitFailRepo{repo}, claims, audit.NewNop(), zerolog.Nop()).
		Execute(context.Background(), "u8")

	assert.True(t, httperr.IsBusiness(err, "identity_reconciliation_required"))
	assert.Equal(t, httperr.KindPersistence, httperr.KindOf(err))
	assert.ErrorIs(t, err, errCommit)
	assert.EqualValues(t, 1, count(t, db, &models.Barber{}, false))
}

// ======================================================
// UpdateUser
// ======================================================

func TestUpdateUser(t *testing.T) {
	db, repo := newRepo(t)
	dbtest.Client(t, db, "u9")
	uc := NewUpdateUser(repo, audit.NewNop())
	ctx := context.Background()

	name, phone := "Abena", "+233200000000"
	rec, err := uc.Execute(ctx, "u9", UpdateUserInput{Name: &name, PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Abena", rec.Client.Name)

	var stored models.Client
	require.NoError(t, db.Where("uid = ?", "u9").First(&stored).Error)
	assert.Equal(t, phone, stored.PhoneNumber)

	bad := "nope"
	_, err = uc.Execute(ctx, "u9", UpdateUserInput{Email: &bad})
	assert.True(t, httperr.IsBusiness(err, "invalid_email"))

	_, err = uc.Execute(ctx, "ghost", UpdateUserInput{Name: &name})
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
}
