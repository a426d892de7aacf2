package lifecycle

import (
	"time"

	"fieldservice/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// PaymentEntry is the caller-supplied part of a ledger entry.
type PaymentEntry struct {
	ID        string
	Amount    decimal.Decimal
	Method    entities.PaymentMethod
	Reference string
	Date      time.Time
}

// CheckPayment runs every ledger guard without recording anything.
func CheckPayment(job entities.Job, amount decimal.Decimal, method entities.PaymentMethod) error {
	if job.Invoice == nil {
		return ErrNotFound
	}
	if !amount.IsPositive() || !isWholeCents(amount) {
		return ErrInvalidAmount
	}
	if _, ok := entities.ParsePaymentMethod(string(method)); !ok {
		return &ValidationError{Field: "method", Reason: "must be one of Card, Bank Transfer, Cash"}
	}
	inv := *job.Invoice
	if !CanAcceptPayment(inv) {
		return ErrInvoiceAlreadyPaid
	}
	if amount.GreaterThan(RemainingBalance(inv)) {
		return ErrExceedsBalance
	}
	return nil
}

// RecordPayment appends a payment to the job's invoice. Settling the
// balance marks the invoice PAID and moves the job to PAID.
func RecordPayment(job entities.Job, entry PaymentEntry) (entities.Job, error) {
	if err := CheckPayment(job, entry.Amount, entry.Method); err != nil {
		return job, err
	}
	method, _ := entities.ParsePaymentMethod(string(entry.Method))

	out := job.Clone()
	inv := out.Invoice
	inv.Payments = append(inv.Payments, entities.Payment{
		ID:        entry.ID,
		InvoiceID: inv.ID,
		Amount:    entry.Amount,
		Method:    method,
		Date:      entry.Date,
		Reference: entry.Reference,
	})
	inv.PaidAmount = inv.PaidAmount.Add(entry.Amount)

	if inv.PaidAmount.LessThan(inv.TotalAmount) {
		inv.Status = entities.InvoiceStatusPartiallyPaid
		return out, nil
	}
	inv.Status = entities.InvoiceStatusPaid

	out, err := RequestTransition(out, entities.JobStatusPaid)
	if err != nil {
		return job, err
	}
	return out, nil
}
