// Package authz decides which roles may call which routes.
package authz

import (
	"fmt"

	casbin "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/BruksfildServices01/afritrim-api/internal/identity"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

const (
	admin  = string(identity.RoleAdmin)
	barber = string(identity.RoleBarber)
	client   = string(identity.RoleClient)
	platform = string(identity.RolePlatform)
	anyone   = "*"
)

// rule grants method (a regexp) on path to roles. anyone expands to every
// authenticated caller, including one without a profile yet.
type rule struct {
	path    string
	methods string
	roles   []string
}

var rules = []rule{
	// users
	{"/api/users", "^POST$", []string{anyone}},
	{"/api/users/me", "^GET$", []string{anyone}},
	{"/api/users/:uid", "^(GET|PUT|DELETE)$", []string{admin, barber, client}},
	{"/api/users/:uid/role", "^PATCH$", []string{admin}},
	{"/api/admins/:uid", "^(GET|DELETE)$", []string{admin}},
	{"/api/admins/:uid/suspend", "^PATCH$", []string{platform}},

	// catalog
	{"/api/barbershops", "^POST$", []string{admin}},
	{"/api/barbershops/:id", "^(PUT|DELETE)$", []string{admin}},
	{"/api/barbers", "^POST$", []string{admin}},
	{"/api/barbers/:id", "^(PUT|DELETE)$", []string{admin, barber}},
	{"/api/barbers/:id/availability", "^PATCH$", []string{admin, barber}},
	{"/api/services", "^POST$", []string{admin}},
	{"/api/services/:id", "^(PUT|DELETE)$", []string{admin}},
	{"/api/clients", "^(GET|POST)$", []string{admin}},
	{"/api/clients/:id", "^GET$", []string{admin, barber}},
	{"/api/clients/:id", "^PUT$", []string{admin, client}},
	{"/api/clients/:id", "^DELETE$", []string{admin}},
	{"/api/media/:model/:id", "^POST$", []string{admin, barber}},

	// appointments
	{"/api/appointments", "^GET$", []string{admin, barber, client}},
	{"/api/appointments", "^POST$", []string{admin, client}},
	{"/api/appointments/:id", "^GET$", []string{admin, barber, client}},
	{"/api/appointments/:id", "^(PUT|DELETE)$", []string{admin, client}},
	{"/api/appointments/:id/status", "^PATCH$", []string{admin, barber}},
	{"/api/barbers/:id/appointments/upcoming", "^GET$", []string{admin, barber}},

	// billing
	{"/api/sales", "^(GET|POST)$", []string{admin}},
	{"/api/sales/totals", "^GET$", []string{admin}},
	{"/api/sales/average", "^GET$", []string{admin}},
	{"/api/sales/:id", "^(GET|PUT|DELETE)$", []string{admin}},
	{"/api/invoices", "^(GET|POST)$", []string{admin}},
	{"/api/invoices/:id", "^(GET|PUT|DELETE)$", []string{admin}},
	{"/api/invoices/:id/status", "^PATCH$", []string{admin}},
	{"/api/invoices/:id/checkout", "^POST$", []string{admin, client}},
	{"/api/payments", "^(GET|POST)$", []string{admin}},
	{"/api/payments/status", "^GET$", []string{admin}},
	{"/api/payments/:id", "^(PUT|DELETE)$", []string{admin}},

	// reviews
	{"/api/reviews", "^POST$", []string{admin, client}},
	{"/api/reviews/eligibility", "^GET$", []string{client}},
	{"/api/reviews/:id", "^(PUT|DELETE)$", []string{admin, client}},

	// audit
	{"/api/audit-logs", "^GET$", []string{admin}},
}

type Enforcer struct {
	e *casbin.Enforcer
}

func New() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz enforcer: %w", err)
	}

	var policies [][]string
	for _, r := range rules {
		for _, role := range r.roles {
			policies = append(policies, []string{role, r.path, r.methods})
		}
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("authz policies: %w", err)
	}
	// platform operators can do whatever an admin can
	if _, err := e.AddGroupingPolicy(platform, admin); err != nil {
		return nil, fmt.Errorf("authz roles: %w", err)
	}

	return &Enforcer{e: e}, nil
}

// Allowed reports whether any of roles may call method on path. Every
// authenticated caller also holds the "*" subject.
func (a *Enforcer) Allowed(roles []identity.Role, path, method string) (bool, error) {
	subjects := make([]string, 0, len(roles)+1)
	subjects = append(subjects, anyone)
	for _, r := range roles {
		subjects = append(subjects, string(r))
	}

	for _, sub := range subjects {
		ok, err := a.e.Enforce(sub, path, method)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
