package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userdomain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/dto"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/httpresp"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Create       *appointment.CreateAppointment
	Update       *appointment.UpdateAppointment
	UpdateStatus *appointment.UpdateAppointmentStatus
	Delete       *appointment.DeleteAppointment
	Get          *appointment.GetAppointment
	List         *appointment.ListAppointments
	Upcoming     *appointment.ListUpcomingForBarber
}

type AppointmentHandler struct {
	db    *gorm.DB
	uc    AppointmentUseCases
	users userdomain.Repository
}

func NewAppointmentHandler(db *gorm.DB, uc AppointmentUseCases, users userdomain.Repository) *AppointmentHandler {
	return &AppointmentHandler{db: db, uc: uc, users: users}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID        uint      `json:"client_id"`
	BarberID        uint      `json:"barber_id" binding:"required"`
	ServiceID       uint      `json:"service_id" binding:"required"`
	AppointmentTime time.Time `json:"appointment_time" binding:"required"`
	Duration        int       `json:"duration"`
}

type UpdateAppointmentRequest struct {
	BarberID        *uint      `json:"barber_id"`
	ServiceID       *uint      `json:"service_id"`
	AppointmentTime *time.Time `json:"appointment_time"`
	Duration        *int       `json:"duration"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CALLER SCOPE
// ======================================================

// scope narrows a client or barber to their own row and an admin to the
// barbershops they own. Platform operators are not narrowed.
type scope struct {
	platform bool
	admin    bool
	shops    []uint
	clientID *uint
	barberID *uint
}

func (h *AppointmentHandler) scopeOf(c *gin.Context) (scope, bool) {
	if middleware.IsPlatform(c) {
		return scope{platform: true, admin: true}, true
	}

	claims := middleware.ClaimsOf(c)
	if claims.Has(identity.RoleAdmin) {
		shops, ok := ownedShopIDs(c, h.db)
		if !ok {
			return scope{}, false
		}
		return scope{admin: true, shops: shops}, true
	}

	ctx := c.Request.Context()
	uid := middleware.UIDOf(c)

	switch {
	case claims.Has(identity.RoleClient):
		cl, err := h.users.FindClient(ctx, uid)
		if err != nil {
			httperr.FromError(c, err)
			return scope{}, false
		}
		if cl == nil {
			httperr.Abort(c, http.StatusForbidden, "profile_required", "Create a client profile first.")
			return scope{}, false
		}
		return scope{clientID: &cl.ID}, true

	case claims.Has(identity.RoleBarber):
		b, err := h.users.FindBarber(ctx, uid)
		if err != nil {
			httperr.FromError(c, err)
			return scope{}, false
		}
		if b == nil {
			httperr.Abort(c, http.StatusForbidden, "profile_required", "Create a barber profile first.")
			return scope{}, false
		}
		return scope{barberID: &b.ID}, true
	}

	httperr.Abort(c, http.StatusForbidden, "forbidden", "Not allowed for this role.")
	return scope{}, false
}

// owns reports whether the scoped caller is a party to the appointment
// or owns the barbershop of its barber.
func (s scope) owns(ap *dto.AppointmentListDTO) bool {
	if s.platform {
		return true
	}
	if s.admin {
		if ap.BarbershopID == nil {
			return false
		}
		for _, id := range s.shops {
			if id == *ap.BarbershopID {
				return true
			}
		}
		return false
	}
	if s.clientID != nil && *s.clientID == ap.ClientID {
		return true
	}
	return s.barberID != nil && *s.barberID == ap.BarberID
}

// ownerUID narrows admin listings to their own barbershops.
func (s scope) ownerUID(c *gin.Context) string {
	if s.admin && !s.platform {
		return middleware.UIDOf(c)
	}
	return ""
}

func (h *AppointmentHandler) loadOwned(c *gin.Context, s scope, id uint) bool {
	ap, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return false
	}
	if !s.owns(ap) {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return false
	}
	return true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	s, ok := h.scopeOf(c)
	if !ok {
		return
	}
	if s.clientID != nil {
		req.ClientID = *s.clientID
	}
	if req.ClientID == 0 {
		httperr.BadRequest(c, "client_required", "client_id is required.")
		return
	}
	if s.admin {
		if _, ok := ownedBarber(c, h.db, req.BarberID); !ok {
			return
		}
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		ClientID:  req.ClientID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Time:      req.AppointmentTime,
		Duration:  req.Duration,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s, ok := h.scopeOf(c)
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if !s.owns(ap) {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	clientID, ok := queryUint(c, "client_id")
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	s, ok := h.scopeOf(c)
	if !ok {
		return
	}
	if s.clientID != nil {
		clientID = s.clientID
	}
	if s.barberID != nil {
		barberID = s.barberID
	}

	apps, err := h.uc.List.Execute(c.Request.Context(), appointment.ListAppointmentsInput{
		BarberID: barberID,
		ClientID: clientID,
		Date:     date,
		OwnerUID: s.ownerUID(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	barberID, ok := paramID(c, "id")
	if !ok {
		return
	}
	s, ok := h.scopeOf(c)
	if !ok {
		return
	}
	if s.barberID != nil && *s.barberID != barberID {
		httperr.Abort(c, http.StatusForbidden, "forbidden", "Not allowed for this barber.")
		return
	}
	if s.admin {
		if _, ok := ownedBarber(c, h.db, barberID); !ok {
			return
		}
	}

	apps, err := h.uc.Upcoming.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, apps)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	s, ok := h.scopeOf(c)
	if !ok || !h.loadOwned(c, s, id) {
		return
	}
	if s.admin && req.BarberID != nil {
		if _, ok := ownedBarber(c, h.db, *req.BarberID); !ok {
			return
		}
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), id, appointment.UpdateAppointmentInput{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Time:      req.AppointmentTime,
		Duration:  req.Duration,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	s, ok := h.scopeOf(c)
	if !ok || !h.loadOwned(c, s, id) {
		return
	}

	ap, err := h.uc.UpdateStatus.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	s, ok := h.scopeOf(c)
	if !ok || !h.loadOwned(c, s, id) {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
