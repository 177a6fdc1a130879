package billing

import (
	"context"

	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

// OwnerUID, when set, keeps only rows of barbershops that admin owns.

type SaleFilter struct {
	BarbershopID *uint
	BarberID     *uint
	ClientID     *uint
	OwnerUID     string
}

type InvoiceFilter struct {
	ClientID     *uint
	BarbershopID *uint
	OwnerUID     string
}

// PaymentFilter.OwnerUID keeps payments the admin recorded plus those
// against invoices or sales of the admin's shops.
type PaymentFilter struct {
	InvoiceID *uint
	AdminID   string
	OwnerUID  string
}

type Repository interface {
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	// -------- References --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetBarbershop(ctx context.Context, id uint) (*models.Barbershop, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	// -------- Sale --------
	CreateSale(ctx context.Context, s *models.Sale) error
	GetSale(ctx context.Context, id uint) (*models.Sale, error)
	// GetSaleForUpdate row-locks the sale until the transaction ends.
	GetSaleForUpdate(ctx context.Context, id uint) (*models.Sale, error)
	UpdateSale(ctx context.Context, s *models.Sale) error
	DeleteSale(ctx context.Context, id uint) error
	ListSales(ctx context.Context, f SaleFilter) ([]models.Sale, error)
	SaleTotals(ctx context.Context, f SaleFilter) (Totals, error)
	AverageSale(ctx context.Context, f SaleFilter) (float64, error)

	// -------- Invoice --------
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	GetInvoice(ctx context.Context, id uint) (*models.Invoice, error)
	// GetInvoiceForUpdate row-locks the invoice until the transaction ends.
	GetInvoiceForUpdate(ctx context.Context, id uint) (*models.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *models.Invoice) error
	DeleteInvoice(ctx context.Context, id uint) error
	ListInvoices(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error)

	// -------- Payment --------
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPayment(ctx context.Context, id uint) (*models.Payment, error)
	// GetPaymentForUpdate row-locks the payment until the transaction ends.
	GetPaymentForUpdate(ctx context.Context, id uint) (*models.Payment, error)
	UpdatePayment(ctx context.Context, p *models.Payment) error
	DeletePayment(ctx context.Context, id uint) error
	ListPayments(ctx context.Context, f PaymentFilter) ([]models.Payment, error)
	LatestPaymentForAdmin(ctx context.Context, adminUID string) (*models.Payment, error)
}
