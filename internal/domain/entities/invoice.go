package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "UNPAID"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
)

// LineItem is one billable entry of an invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Invoice is the billing document generated once a job is completed.
//
// Monetary representation:
//   - every amount is an exact decimal; TotalAmount = Subtotal + Tax.
//   - PaidAmount is the running sum of Payments and never exceeds TotalAmount.
type Invoice struct {
	ID          string          `json:"id"`
	JobID       string          `json:"job_id"`
	Status      InvoiceStatus   `json:"status"`
	LineItems   []LineItem      `json:"line_items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Tax         decimal.Decimal `json:"tax"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Payments    []Payment       `json:"payments"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (i Invoice) Clone() Invoice {
	out := i
	out.LineItems = append([]LineItem(nil), i.LineItems...)
	out.Payments = append([]Payment(nil), i.Payments...)
	return out
}
