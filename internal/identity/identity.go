// Package identity describes the external identity provider the API
// trusts for authentication and role claims.
package identity

import "context"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBarber Role = "barber"
	RoleClient Role = "client"

	// RolePlatform is held by operators of the whole deployment. It never
	// comes from a profile or a claim, only from configuration.
	RolePlatform Role = "platform"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleBarber, RoleClient:
		return Role(s), true
	}
	return "", false
}

// Claims mirrors the custom claims kept by the provider. Exactly one flag
// is true for a registered user.
type Claims struct {
	Admin  bool `json:"admin"`
	Barber bool `json:"barber"`
	Client bool `json:"client"`
}

func ClaimsFor(r Role) Claims {
	return Claims{
		Admin:  r == RoleAdmin,
		Barber: r == RoleBarber,
		Client: r == RoleClient,
	}
}

// Roles lists the roles whose flag is set, admin first.
func (c Claims) Roles() []Role {
	var out []Role
	if c.Admin {
		out = append(out, RoleAdmin)
	}
	if c.Barber {
		out = append(out, RoleBarber)
	}
	if c.Client {
		out = append(out, RoleClient)
	}
	return out
}

func (c Claims) Has(r Role) bool {
	switch r {
	case RoleAdmin:
		return c.Admin
	case RoleBarber:
		return c.Barber
	case RoleClient:
		return c.Client
	}
	return false
}

type Token struct {
	UID    string
	Email  string
	Claims Claims
}

type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Token, error)
}

type ClaimsWriter interface {
	SetClaims(ctx context.Context, uid string, claims Claims) error
	DeleteAccount(ctx context.Context, uid string) error
}

type Provider interface {
	Verifier
	ClaimsWriter
}
