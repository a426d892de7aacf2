package lifecycle

import (
	"strings"
	"time"

	"fieldservice/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// GenerateInvoice builds the job's only invoice and moves it to INVOICED.
func GenerateInvoice(job entities.Job, items []entities.LineItem, taxRate decimal.Decimal, invoiceID string, now time.Time) (entities.Job, error) {
	if job.Invoice != nil {
		return job, ErrAlreadyInvoiced
	}
	if job.Status != entities.JobStatusCompleted {
		return job, ErrRequiresCompletedStatus
	}
	if len(items) == 0 {
		return job, ErrEmptyLineItems
	}

	lines := make([]entities.LineItem, len(items))
	for i, it := range items {
		if err := validateLineItem(i, it); err != nil {
			return job, err
		}
		lines[i] = entities.LineItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}

	subtotal, tax, total := Totals(lines, taxRate)

	out := job.Clone()
	out.Invoice = &entities.Invoice{
		ID:          invoiceID,
		JobID:       job.ID,
		Status:      entities.InvoiceStatusUnpaid,
		LineItems:   lines,
		Subtotal:    subtotal,
		TaxRate:     taxRate,
		Tax:         tax,
		TotalAmount: total,
		PaidAmount:  decimal.Zero,
		Payments:    []entities.Payment{},
		CreatedAt:   now,
	}

	out, err := RequestTransition(out, entities.JobStatusInvoiced)
	if err != nil {
		return job, err
	}
	return out, nil
}

func validateLineItem(index int, it entities.LineItem) error {
	switch {
	case strings.TrimSpace(it.Description) == "":
		return &LineItemError{Index: index, Reason: "description must not be empty"}
	case it.Quantity <= 0:
		return &LineItemError{Index: index, Reason: "quantity must be greater than zero"}
	case it.UnitPrice.IsNegative():
		return &LineItemError{Index: index, Reason: "unit price must not be negative"}
	case !isWholeCents(it.UnitPrice):
		return &LineItemError{Index: index, Reason: "unit price must have at most two decimal places"}
	}
	return nil
}
