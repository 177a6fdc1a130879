package models

import "time"

type Admin struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UID      string `gorm:"column:uid;size:128;uniqueIndex;not null" json:"uid"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
	Role     string `gorm:"size:20;default:'admin';not null" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
