package models

import "time"

type Barbershop struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AdminID  string `gorm:"size:128;not null;index" json:"admin_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Location string `gorm:"size:255" json:"location"`
	PhotoURL string `gorm:"size:512" json:"photo_url"`

	Services []Service `gorm:"constraint:OnDelete:CASCADE;" json:"services,omitempty"`
	Barbers  []Barber  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
