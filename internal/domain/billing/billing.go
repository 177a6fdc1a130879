// Package billing holds the money rules shared by sales, invoices and
// payments.
package billing

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

// ===============================
// Sale
// ===============================

// ApplyProfit keeps Profit == Amount - Expense. Call it on every write.
func ApplyProfit(s *models.Sale) {
	s.Profit = s.Amount - s.Expense
}

func ValidateAmounts(values ...float64) error {
	for _, v := range values {
		if v < 0 {
			return httperr.ErrValidation("invalid_amount")
		}
	}
	return nil
}

// SameBarbershop rejects a barber or invoice from another barbershop
// being attached to a sale.
func SameBarbershop(saleShop uint, barber *models.Barber, inv *models.Invoice) error {
	if barber != nil && (barber.BarbershopID == nil || *barber.BarbershopID != saleShop) {
		return httperr.ErrValidation("barber_not_in_barbershop")
	}
	if inv != nil && inv.BarbershopID != saleShop {
		return httperr.ErrValidation("invoice_not_in_barbershop")
	}
	return nil
}

type Totals struct {
	TotalSales    float64 `json:"total_sales"`
	TotalExpenses float64 `json:"total_expenses"`
	TotalProfit   float64 `json:"total_profit"`
}

// ===============================
// Invoice
// ===============================

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "Pending"
	InvoicePaid    InvoiceStatus = "Paid"
)

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return InvoicePending, nil
	case "paid":
		return InvoicePaid, nil
	}
	return "", httperr.ErrValidation("invalid_status")
}

func IsPaid(inv *models.Invoice) bool {
	return strings.EqualFold(inv.Status, string(InvoicePaid))
}

// TransitionInvoice moves inv to status. Paid stamps paid_at the first
// time; a paid invoice never goes back to Pending.
func TransitionInvoice(inv *models.Invoice, status InvoiceStatus, now time.Time) error {
	if IsPaid(inv) {
		if status == InvoicePending {
			return httperr.ErrValidation("invoice_already_paid")
		}
		inv.Status = string(InvoicePaid)
		if inv.PaidAt == nil {
			inv.PaidAt = &now
		}
		return nil
	}

	inv.Status = string(status)
	if status == InvoicePaid {
		inv.PaidAt = &now
	}
	return nil
}

// CanPay rejects payments against an invoice that is already settled.
func CanPay(inv *models.Invoice) error {
	if IsPaid(inv) {
		return httperr.ErrValidation("invoice_already_paid")
	}
	return nil
}

// ===============================
// Payment
// ===============================

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentPaid      PaymentStatus = "Paid"
)

// NoPaymentFound is reported by the latest-payment lookup when an admin
// never recorded one.
const NoPaymentFound = "No Payment Found"

// ParsePaymentStatus defaults an empty value to Paid.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "paid":
		return PaymentPaid, nil
	case "pending":
		return PaymentPending, nil
	case "completed":
		return PaymentCompleted, nil
	case "failed":
		return PaymentFailed, nil
	}
	return "", httperr.ErrValidation("invalid_status")
}

// Settles reports whether a payment in this status pays its invoice.
func (s PaymentStatus) Settles() bool {
	return s == PaymentPaid || s == PaymentCompleted
}
