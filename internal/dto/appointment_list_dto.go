package dto

import (
	"time"

	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	ClientID        uint      `json:"client_id"`
	BarberID        uint      `json:"barber_id"`
	BarbershopID    *uint     `json:"barbershop_id"`
	ServiceID       uint      `json:"service_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	EndTime         time.Time `json:"end_time"`
	Duration        int       `json:"duration"`
	Status          string    `json:"status"`
	ClientName      string    `json:"client_name"`
	BarberName      string    `json:"barber_name"`
	ServiceName     string    `json:"service_name"`
}

func AppointmentFromModel(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:              ap.ID,
		ClientID:        ap.ClientID,
		BarberID:        ap.BarberID,
		BarbershopID:    ap.Barber.BarbershopID,
		ServiceID:       ap.ServiceID,
		AppointmentTime: ap.AppointmentTime,
		EndTime:         ap.EndTime,
		Duration:        ap.Duration,
		Status:          ap.Status,
		ClientName:      ap.Client.Name,
		BarberName:      ap.Barber.Name,
		ServiceName:     ap.Service.Name,
	}
}

func AppointmentsFromModels(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, AppointmentFromModel(ap))
	}
	return out
}
