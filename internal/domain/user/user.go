// Package user holds the role rules for the three user tables that share
// one identity uid.
package user

import (
	"strings"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

// Data is the profile a new row is built from.
type Data struct {
	UID          string
	Name         string
	Email        string
	PhoneNumber  string
	PhotoURL     string
	BarbershopID *uint
}

// Record is the active row for a uid. Exactly one of the pointers is set.
type Record struct {
	Role   identity.Role
	Admin  *models.Admin
	Barber *models.Barber
	Client *models.Client
}

// Row returns the model behind the record.
func (r *Record) Row() any {
	switch r.Role {
	case identity.RoleAdmin:
		return r.Admin
	case identity.RoleBarber:
		return r.Barber
	case identity.RoleClient:
		return r.Client
	}
	return nil
}

func ParseRole(s string) (identity.Role, error) {
	role, ok := identity.ParseRole(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return "", httperr.ErrValidation("invalid_role")
	}
	return role, nil
}

func ValidateData(d Data) error {
	if strings.TrimSpace(d.UID) == "" {
		return httperr.ErrValidation("uid_required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return httperr.ErrValidation("name_required")
	}
	return nil
}

// ===============================
// Transitions
// ===============================

var transitions = map[identity.Role]identity.Role{
	identity.RoleClient: identity.RoleBarber,
	identity.RoleBarber: identity.RoleAdmin,
}

// CanTransition allows client to barber and barber to admin only.
func CanTransition(from, to identity.Role) error {
	if next, ok := transitions[from]; ok && next == to {
		return nil
	}
	return httperr.ErrValidation("invalid_role_transition")
}

// NewRecord builds the unsaved row for role from d.
func NewRecord(role identity.Role, d Data) *Record {
	rec := &Record{Role: role}
	switch role {
	case identity.RoleAdmin:
		rec.Admin = &models.Admin{
			UID:      d.UID,
			Name:     d.Name,
			Email:    d.Email,
			IsActive: true,
			Role:     string(identity.RoleAdmin),
		}
	case identity.RoleBarber:
		rec.Barber = &models.Barber{
			UID:          d.UID,
			Name:         d.Name,
			Email:        d.Email,
			BarbershopID: d.BarbershopID,
			Available:    true,
			PhotoURL:     d.PhotoURL,
		}
	case identity.RoleClient:
		rec.Client = &models.Client{
			UID:         d.UID,
			Name:        d.Name,
			Email:       d.Email,
			PhoneNumber: d.PhoneNumber,
			PhotoURL:    d.PhotoURL,
		}
	}
	return rec
}

// DataOf extracts the profile carried by an existing record so it can
// seed the row of the next role.
func DataOf(r *Record) Data {
	switch r.Role {
	case identity.RoleAdmin:
		return Data{UID: r.Admin.UID, Name: r.Admin.Name, Email: r.Admin.Email}
	case identity.RoleBarber:
		return Data{
			UID:          r.Barber.UID,
			Name:         r.Barber.Name,
			Email:        r.Barber.Email,
			PhotoURL:     r.Barber.PhotoURL,
			BarbershopID: r.Barber.BarbershopID,
		}
	case identity.RoleClient:
		return Data{
			UID:         r.Client.UID,
			Name:        r.Client.Name,
			Email:       r.Client.Email,
			PhoneNumber: r.Client.PhoneNumber,
			PhotoURL:    r.Client.PhotoURL,
		}
	}
	return Data{}
}
