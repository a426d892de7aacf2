package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

func sampleJob(id string, created time.Time) entities.Job {
	return entities.Job{
		ID:        id,
		Title:     "Boiler repair",
		Status:    entities.JobStatusNew,
		Customer:  entities.Customer{ID: "c-1", Name: "Jane", Email: "jane@example.com"},
		CreatedAt: created,
		UpdatedAt: created,
		Version:   1,
	}
}

func invoicedSample() entities.Job {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	job := sampleJob("job-1", at)
	job.Status = entities.JobStatusInvoiced
	job.Appointment = &entities.Appointment{Technician: "Alice", StartTime: at, EndTime: at.Add(time.Hour)}
	job.Invoice = &entities.Invoice{
		ID:          "inv-1",
		JobID:       "job-1",
		Status:      entities.InvoiceStatusPartiallyPaid,
		LineItems:   []entities.LineItem{{Description: "Part", Quantity: 3, UnitPrice: decimal.RequireFromString("33.33")}},
		Subtotal:    decimal.RequireFromString("99.99"),
		TaxRate:     decimal.RequireFromString("0.0825"),
		Tax:         decimal.RequireFromString("8.25"),
		TotalAmount: decimal.RequireFromString("108.24"),
		PaidAmount:  decimal.RequireFromString("0.1"),
		Payments: []entities.Payment{
			{ID: "pay-1", InvoiceID: "inv-1", Amount: decimal.RequireFromString("0.1"), Method: entities.PaymentMethodBankTransfer, Date: at, Reference: "ref"},
		},
		CreatedAt: at,
	}
	return job
}

func TestJobMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewJobMemoryRepository()

	if _, err := repo.Create(ctx, invoicedSample()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, invoicedSample()); !errors.Is(err, errJobAlreadyExists) {
		t.Fatalf("expected errJobAlreadyExists, got %v", err)
	}

	got, err := repo.GetByInvoiceID(ctx, "inv-1")
	if err != nil || got.ID != "job-1" {
		t.Fatalf("expected job-1 by invoice, got %q err=%v", got.ID, err)
	}

	// returned values are copies
	got.Invoice.Payments[0].Amount = decimal.NewFromInt(999)
	again, _ := repo.GetByID(ctx, "job-1")
	if !again.Invoice.Payments[0].Amount.Equal(decimal.RequireFromString("0.1")) {
		t.Fatalf("stored job was mutated through a returned copy")
	}

	missing, err := repo.GetByID(ctx, "nope")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected zero job, got %+v err=%v", missing, err)
	}
}

func TestJobMemoryRepository_SaveCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := NewJobMemoryRepository()
	job := sampleJob("job-1", time.Now().UTC())
	if _, err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create: %v", err)
	}

	job.Status = entities.JobStatusScheduled
	saved, err := repo.Save(ctx, job, 1)
	if err != nil || saved.Version != 2 {
		t.Fatalf("expected version 2, got %d err=%v", saved.Version, err)
	}

	if _, err := repo.Save(ctx, job, 1); !errors.Is(err, interfaces.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict for stale version, got %v", err)
	}
	if _, err := repo.Save(ctx, sampleJob("ghost", time.Now()), 1); !errors.Is(err, interfaces.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict for unknown job, got %v", err)
	}
}

func TestJobMemoryRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewJobMemoryRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"c", "a", "b"} {
		job := sampleJob(id, base.Add(time.Duration(i)*time.Hour))
		if id == "a" {
			job.Status = entities.JobStatusPaid
		}
		if _, err := repo.Create(ctx, job); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, _ := repo.List(ctx, "")
	if len(all) != 3 || all[0].ID != "c" || all[2].ID != "b" {
		t.Fatalf("expected creation order c,a,b, got %v", ids(all))
	}
	paid, _ := repo.List(ctx, entities.JobStatusPaid)
	if len(paid) != 1 || paid[0].ID != "a" {
		t.Fatalf("expected only a, got %v", ids(paid))
	}
}

func ids(jobs []entities.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}
