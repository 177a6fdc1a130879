package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is the end customer. Rows are archived (soft-deleted) when the
// identity is promoted to another role, so booking history keeps its FK.
type Client struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UID         string `gorm:"column:uid;size:128;uniqueIndex;not null" json:"uid"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	PhotoURL    string `gorm:"size:512" json:"photo_url"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
