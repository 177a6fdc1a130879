package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
)

func TestCanTransition(t *testing.T) {
	assert.NoError(t, CanTransition(identity.RoleClient, identity.RoleBarber))
	assert.NoError(t, CanTransition(identity.RoleBarber, identity.RoleAdmin))

	illegal := [][2]identity.Role{
		{identity.RoleClient, identity.RoleAdmin},
		{identity.RoleBarber, identity.RoleClient},
		{identity.RoleAdmin, identity.RoleBarber},
		{identity.RoleClient, identity.RoleClient},
	}
	for _, tr := range illegal {
		err := CanTransition(tr[0], tr[1])
		assert.True(t, httperr.IsBusiness(err, "invalid_role_transition"), "%s->%s", tr[0], tr[1])
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Barber ")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleBarber, r)

	_, err = ParseRole("owner")
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))
}

func TestNewRecordCarriesProfile(t *testing.T) {
	client := NewRecord(identity.RoleClient, Data{
		UID: "u1", Name: "Kofi", Email: "kofi@example.com", PhoneNumber: "+233",
	})
	require.NotNil(t, client.Client)
	assert.Same(t, client.Client, client.Row())

	barber := NewRecord(identity.RoleBarber, DataOf(client))
	require.NotNil(t, barber.Barber)
	assert.Equal(t, "u1", barber.Barber.UID)
	assert.Equal(t, "kofi@example.com", barber.Barber.Email)
	assert.True(t, barber.Barber.Available)

	admin := NewRecord(identity.RoleAdmin, DataOf(barber))
	assert.Equal(t, "admin", admin.Admin.Role)
	assert.True(t, admin.Admin.IsActive)
}
