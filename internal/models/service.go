package models

import "time"

type Service struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	BarbershopID uint    `gorm:"not null;index" json:"barbershop_id"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Price        float64 `gorm:"not null" json:"price"`
	PhotoURL     string  `gorm:"size:512" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
