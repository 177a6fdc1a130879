package models

import "time"

// Sale stores profit instead of deriving it on read; every write path
// must go through billing.ApplyProfit.
type Sale struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	ClientID     uint  `gorm:"not null;index" json:"client_id"`
	BarbershopID uint  `gorm:"not null;index" json:"barbershop_id"`
	BarberID     *uint `gorm:"index" json:"barber_id"`
	InvoiceID    *uint `gorm:"index" json:"invoice_id"`

	Amount  float64 `gorm:"not null" json:"amount"`
	Expense float64 `gorm:"not null" json:"expense"`
	Profit  float64 `json:"profit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Invoice struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	ClientID     uint    `gorm:"not null;index" json:"client_id"`
	Client       Client  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	BarbershopID uint    `gorm:"not null;index" json:"barbershop_id"`
	Amount       float64 `gorm:"not null" json:"amount"`
	Status       string  `gorm:"size:50;default:'Pending'" json:"status"`

	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Payment struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	AdminID   string  `gorm:"size:128;index" json:"admin_id"`
	Amount    float64 `gorm:"not null" json:"amount"`
	SaleID    *uint   `gorm:"index" json:"sale_id"`
	InvoiceID *uint   `gorm:"index" json:"invoice_id"`
	Status    string  `gorm:"size:20;default:'Paid'" json:"status"`

	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
