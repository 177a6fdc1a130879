package models

import (
	"time"

	"gorm.io/gorm"
)

type Barber struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UID          string `gorm:"column:uid;size:128;uniqueIndex;not null" json:"uid"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100" json:"email"`
	BarbershopID *uint  `gorm:"index" json:"barbershop_id"`
	Available    bool   `gorm:"default:true" json:"available"`
	PhotoURL     string `gorm:"size:512" json:"photo_url"`

	Reviews []Review `json:"reviews,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
