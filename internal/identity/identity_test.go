package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimsFor(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleBarber, RoleClient} {
		c := ClaimsFor(r)
		assert.Equal(t, []Role{r}, c.Roles())
		assert.True(t, c.Has(r))
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("barber")
	assert.True(t, ok)
	assert.Equal(t, RoleBarber, r)

	_, ok = ParseRole("owner")
	assert.False(t, ok)

	_, ok = ParseRole("Admin")
	assert.False(t, ok)
}

func TestRolesOrder(t *testing.T) {
	c := Claims{Client: true, Admin: true}
	assert.Equal(t, []Role{RoleAdmin, RoleClient}, c.Roles())
	assert.False(t, Claims{}.Has(RoleAdmin))
}
