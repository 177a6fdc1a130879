package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

func (r *BillingGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BillingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *BillingGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := first(ctx, r.db, &client, id, "client_not_found"); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *BillingGormRepository) GetBarbershop(ctx context.Context, id uint) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := first(ctx, r.db, &shop, id, "barbershop_not_found"); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BillingGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var barber models.Barber
	if err := first(ctx, r.db, &barber, id, "barber_not_found"); err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Sale
// --------------------------------------------------

func (r *BillingGormRepository) CreateSale(ctx context.Context, s *models.Sale) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(s).Error, "")
}

func (r *BillingGormRepository) GetSale(ctx context.Context, id uint) (*models.Sale, error) {
	var s models.Sale
	if err := first(ctx, r.db, &s, id, "sale_not_found"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *BillingGormRepository) GetSaleForUpdate(ctx context.Context, id uint) (*models.Sale, error) {
	var s models.Sale
	if err := first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), &s, id, "sale_not_found"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *BillingGormRepository) UpdateSale(ctx context.Context, s *models.Sale) error {
	return httperr.FromStore(r.db.WithContext(ctx).Save(s).Error, "sale_not_found")
}

func (r *BillingGormRepository) DeleteSale(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Sale{}, id, "sale_not_found")
}

func (r *BillingGormRepository) ListSales(ctx context.Context, f domain.SaleFilter) ([]models.Sale, error) {
	var sales []models.Sale
	if err := saleScope(r.db.WithContext(ctx), f).
		Order("id ASC").
		Find(&sales).Error; err != nil {
		return nil, httperr.FromStore(err, "")
	}
	return sales, nil
}

func (r *BillingGormRepository) SaleTotals(ctx context.Context, f domain.SaleFilter) (domain.Totals, error) {
	var totals domain.Totals
	err := saleScope(r.db.WithContext(ctx).Model(&models.Sale{}), f).
		Select(
			"COALESCE(SUM(amount), 0) AS total_sales, " +
				"COALESCE(SUM(expense), 0) AS total_expenses, " +
				"COALESCE(SUM(profit), 0) AS total_profit",
		).
		Scan(&totals).Error
	if err != nil {
		return domain.Totals{}, httperr.FromStore(err, "")
	}
	return totals, nil
}

func (r *BillingGormRepository) AverageSale(ctx context.Context, f domain.SaleFilter) (float64, error) {
	var avg float64
	err := saleScope(r.db.WithContext(ctx).Model(&models.Sale{}), f).
		Select("COALESCE(AVG(amount), 0)").
		Row().
		Scan(&avg)
	if err != nil {
		return 0, httperr.FromStore(err, "")
	}
	return avg, nil
}

func saleScope(q *gorm.DB, f domain.SaleFilter) *gorm.DB {
	if f.BarbershopID != nil {
		q = q.Where("barbershop_id = ?", *f.BarbershopID)
	}
	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.OwnerUID != "" {
		q = q.Where("barbershop_id IN (?)", ownedShops(q, f.OwnerUID))
	}
	return q
}

// ownedShops is a subquery of the barbershop ids adminUID owns.
func ownedShops(db *gorm.DB, adminUID string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Barbershop{}).
		Select("id").
		Where("admin_id = ?", adminUID)
}

// --------------------------------------------------
// Invoice
// --------------------------------------------------

func (r *BillingGormRepository) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	return httperr.FromStore(
		r.db.WithContext(ctx).Omit(clause.Associations).Create(inv).Error, "",
	)
}

func (r *BillingGormRepository) GetInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := first(ctx, r.db, &inv, id, "invoice_not_found"); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *BillingGormRepository) GetInvoiceForUpdate(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, id).Error; err != nil {
		return nil, httperr.FromStore(err, "invoice_not_found")
	}
	return &inv, nil
}

func (r *BillingGormRepository) UpdateInvoice(ctx context.Context, inv *models.Invoice) error {
	return httperr.FromStore(
		r.db.WithContext(ctx).Omit(clause.Associations).Save(inv).Error, "invoice_not_found",
	)
}

func (r *BillingGormRepository) DeleteInvoice(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Invoice{}, id, "invoice_not_found")
}

func (r *BillingGormRepository) ListInvoices(ctx context.Context, f domain.InvoiceFilter) ([]models.Invoice, error) {
	q := r.db.WithContext(ctx)
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.BarbershopID != nil {
		q = q.Where("barbershop_id = ?", *f.BarbershopID)
	}
	if f.OwnerUID != "" {
		q = q.Where("barbershop_id IN (?)", ownedShops(q, f.OwnerUID))
	}

	var invoices []models.Invoice
	if err := q.Order("id ASC").Find(&invoices).Error; err != nil {
		return nil, httperr.FromStore(err, "")
	}
	return invoices, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *BillingGormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(p).Error, "")
}

func (r *BillingGormRepository) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := first(ctx, r.db, &p, id, "payment_not_found"); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BillingGormRepository) GetPaymentForUpdate(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), &p, id, "payment_not_found"); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BillingGormRepository) UpdatePayment(ctx context.Context, p *models.Payment) error {
	return httperr.FromStore(r.db.WithContext(ctx).Save(p).Error, "payment_not_found")
}

func (r *BillingGormRepository) DeletePayment(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Payment{}, id, "payment_not_found")
}

func (r *BillingGormRepository) ListPayments(ctx context.Context, f domain.PaymentFilter) ([]models.Payment, error) {
	q := r.db.WithContext(ctx)
	if f.InvoiceID != nil {
		q = q.Where("invoice_id = ?", *f.InvoiceID)
	}
	if f.AdminID != "" {
		q = q.Where("admin_id = ?", f.AdminID)
	}
	if f.OwnerUID != "" {
		shops := ownedShops(q, f.OwnerUID)
		invoices := q.Session(&gorm.Session{NewDB: true}).
			Model(&models.Invoice{}).Select("id").Where("barbershop_id IN (?)", shops)
		sales := q.Session(&gorm.Session{NewDB: true}).
			Model(&models.Sale{}).Select("id").Where("barbershop_id IN (?)", shops)
		q = q.Where("admin_id = ? OR invoice_id IN (?) OR sale_id IN (?)", f.OwnerUID, invoices, sales)
	}

	var payments []models.Payment
	if err := q.Order("id ASC").Find(&payments).Error; err != nil {
		return nil, httperr.FromStore(err, "")
	}
	return payments, nil
}

// LatestPaymentForAdmin returns (nil, nil) when the admin has no payments.
func (r *BillingGormRepository) LatestPaymentForAdmin(
	ctx context.Context,
	adminUID string,
) (*models.Payment, error) {

	var p models.Payment
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminUID).
		Order("paid_at IS NULL, paid_at DESC, id DESC").
		First(&p).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, httperr.FromStore(err, "")
	}
	return &p, nil
}

// Compile-time check
var _ domain.Repository = (*BillingGormRepository)(nil)
