package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/appointment"
	"github.com/BruksfildServices01/afritrim-api/internal/dto"
	"github.com/BruksfildServices01/afritrim-api/internal/timezone"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*dto.AppointmentListDTO, error) {
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.AppointmentFromModel(*ap)
	return &out, nil
}

// ======================================================
// LIST
// ======================================================

type ListAppointmentsInput struct {
	BarberID *uint
	ClientID *uint
	// Date restricts the list to one calendar day in the shop timezone.
	Date     *time.Time
	OwnerUID string
}

type ListAppointments struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointments(repo domain.Repository, tz string) *ListAppointments {
	return &ListAppointments{
		repo: repo,
		loc:  timezone.Location(tz),
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	f := domain.ListFilter{
		BarberID: in.BarberID,
		ClientID: in.ClientID,
		OwnerUID: in.OwnerUID,
	}
	if in.Date != nil {
		start, end := timezone.DayBounds(*in.Date, uc.loc)
		f.From, f.To = &start, &end
	}

	apps, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.AppointmentsFromModels(apps), nil
}

// ======================================================
// UPCOMING
// ======================================================

type ListUpcomingForBarber struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListUpcomingForBarber(repo domain.Repository) *ListUpcomingForBarber {
	return &ListUpcomingForBarber{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *ListUpcomingForBarber) Execute(
	ctx context.Context,
	barberID uint,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListUpcomingForBarber(ctx, barberID, uc.now())
	if err != nil {
		return nil, err
	}
	return dto.AppointmentsFromModels(apps), nil
}
