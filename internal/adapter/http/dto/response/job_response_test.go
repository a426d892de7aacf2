package response

import (
	"testing"
	"time"

	"fieldservice/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestFromJob(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	job := entities.Job{
		ID:       "job-1",
		Title:    "Fix boiler",
		Status:   entities.JobStatusInvoiced,
		Customer: entities.Customer{ID: "c-1", Name: "Ana", Email: "ana@example.com"},
		Appointment: &entities.Appointment{
			Technician: "Bob",
			StartTime:  now,
			EndTime:    now.Add(time.Hour),
		},
		Invoice: &entities.Invoice{
			ID:     "inv-1",
			JobID:  "job-1",
			Status: entities.InvoiceStatusPartiallyPaid,
			LineItems: []entities.LineItem{
				{Description: "Part", Quantity: 2, UnitPrice: decimal.RequireFromString("50")},
			},
			Subtotal:    decimal.RequireFromString("100"),
			TaxRate:     decimal.RequireFromString("0.1"),
			Tax:         decimal.RequireFromString("10"),
			TotalAmount: decimal.RequireFromString("110"),
			PaidAmount:  decimal.RequireFromString("50"),
			Payments: []entities.Payment{
				{ID: "pay-1", InvoiceID: "inv-1", Amount: decimal.RequireFromString("50"), Method: entities.PaymentMethodCash, Date: now},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
		Version:   4,
	}

	res := FromJob(job)
	if res.Status != "INVOICED" || res.Version != 4 {
		t.Fatalf("unexpected job fields: %+v", res)
	}
	if res.Appointment == nil || res.Appointment.Technician != "Bob" {
		t.Fatalf("expected appointment, got %+v", res.Appointment)
	}
	if res.Invoice == nil {
		t.Fatalf("expected invoice")
	}

	inv := res.Invoice
	if inv.TotalAmount != "110.00" || inv.PaidAmount != "50.00" || inv.RemainingBalance != "60.00" {
		t.Fatalf("unexpected money fields: %+v", inv)
	}
	if !inv.CanPay {
		t.Fatalf("expected can_pay for a partially paid invoice")
	}
	if inv.LineItems[0].Total != "100.00" || inv.LineItems[0].UnitPrice != "50.00" {
		t.Fatalf("unexpected line item: %+v", inv.LineItems[0])
	}
	if len(inv.Payments) != 1 || inv.Payments[0].Method != "Cash" {
		t.Fatalf("unexpected payments: %+v", inv.Payments)
	}
}

func TestFromJob_New(t *testing.T) {
	res := FromJob(entities.Job{ID: "job-1", Status: entities.JobStatusNew})
	if res.Appointment != nil || res.Invoice != nil {
		t.Fatalf("expected no appointment or invoice, got %+v", res)
	}
}

func TestFromInvoice_Paid(t *testing.T) {
	inv := entities.Invoice{
		ID:          "inv-1",
		Status:      entities.InvoiceStatusPaid,
		TotalAmount: decimal.RequireFromString("110"),
		PaidAmount:  decimal.RequireFromString("110"),
	}
	res := FromInvoice(inv)
	if res.CanPay || res.RemainingBalance != "0.00" {
		t.Fatalf("expected settled invoice, got %+v", res)
	}
	if res.Payments == nil || res.LineItems == nil {
		t.Fatalf("expected empty slices, not nil")
	}
}
