package models

import "time"

type Review struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"not null;index" json:"barber_id"`
	ClientID *uint  `gorm:"index" json:"client_id"`
	Rating   int    `gorm:"not null" json:"rating"`
	Comment  string `gorm:"size:1000" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
