package dbtest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

func Barbershop(t *testing.T, db *gorm.DB, adminUID string) *models.Barbershop {
	t.Helper()
	shop := &models.Barbershop{AdminID: adminUID, Name: "Shop " + adminUID, Location: "Accra"}
	require.NoError(t, db.Create(shop).Error)
	return shop
}

func Barber(t *testing.T, db *gorm.DB, uid string, shopID *uint) *models.Barber {
	t.Helper()
	b := &models.Barber{UID: uid, Name: "Barber " + uid, Email: uid + "@barbers.test", BarbershopID: shopID, Available: true}
	require.NoError(t, db.Create(b).Error)
	return b
}

func Client(t *testing.T, db *gorm.DB, uid string) *models.Client {
	t.Helper()
	c := &models.Client{UID: uid, Name: "Client " + uid, Email: uid + "@clients.test"}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Admin(t *testing.T, db *gorm.DB, uid string) *models.Admin {
	t.Helper()
	a := &models.Admin{UID: uid, Name: "Admin " + uid, Email: uid + "@admins.test", IsActive: true, Role: "admin"}
	require.NoError(t, db.Create(a).Error)
	return a
}

func Service(t *testing.T, db *gorm.DB, shopID uint, price float64) *models.Service {
	t.Helper()
	s := &models.Service{BarbershopID: shopID, Name: fmt.Sprintf("Cut %.0f", price), Price: price}
	require.NoError(t, db.Create(s).Error)
	return s
}
