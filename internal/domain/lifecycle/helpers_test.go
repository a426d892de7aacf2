package lifecycle

import (
	"testing"
	"time"

	"fieldservice/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func at(hour int) time.Time {
	return time.Date(2024, 1, 1, hour, 0, 0, 0, time.UTC)
}

func newJob() entities.Job {
	return entities.Job{
		ID:     "job-1",
		Title:  "Boiler repair",
		Status: entities.JobStatusNew,
		Customer: entities.Customer{
			ID:    "c-1",
			Name:  "Jane Roe",
			Email: "jane@example.com",
		},
		CreatedAt: at(8),
	}
}

func completedJob(t *testing.T) entities.Job {
	t.Helper()
	job, err := AttachAppointment(newJob(), "Alice", at(9), at(10))
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	job, err = MarkCompleted(job)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	return job
}

func invoicedJob(t *testing.T) entities.Job {
	t.Helper()
	items := []entities.LineItem{{Description: "Part", Quantity: 2, UnitPrice: dec(t, "50")}}
	job, err := GenerateInvoice(completedJob(t), items, dec(t, "0.1"), "inv-1", at(11))
	if err != nil {
		t.Fatalf("invoice: %v", err)
	}
	return job
}
