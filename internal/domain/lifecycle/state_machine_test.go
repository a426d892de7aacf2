package lifecycle

import (
	"errors"
	"testing"

	"fieldservice/internal/domain/entities"
)

func TestRequestTransition_SameStatusIsNoop(t *testing.T) {
	for _, s := range []entities.JobStatus{
		entities.JobStatusNew, entities.JobStatusScheduled, entities.JobStatusCompleted,
		entities.JobStatusInvoiced, entities.JobStatusPaid,
	} {
		job := newJob()
		job.Status = s
		got, err := RequestTransition(job, s)
		if err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", s, s, err)
		}
		if got.Status != s {
			t.Fatalf("expected %s, got %s", s, got.Status)
		}
	}
}

func TestRequestTransition_RejectsIllegalEdges(t *testing.T) {
	cases := []struct {
		from, to entities.JobStatus
	}{
		{entities.JobStatusNew, entities.JobStatusCompleted},
		{entities.JobStatusNew, entities.JobStatusPaid},
		{entities.JobStatusScheduled, entities.JobStatusNew},
		{entities.JobStatusScheduled, entities.JobStatusInvoiced},
		{entities.JobStatusCompleted, entities.JobStatusScheduled},
		{entities.JobStatusInvoiced, entities.JobStatusCompleted},
		{entities.JobStatusPaid, entities.JobStatusInvoiced},
		{entities.JobStatusNew, entities.JobStatus("ARCHIVED")},
	}

	for _, tc := range cases {
		job := newJob()
		job.Status = tc.from
		got, err := RequestTransition(job, tc.to)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s -> %s: expected ErrInvalidTransition, got %v", tc.from, tc.to, err)
		}
		var te *TransitionError
		if !errors.As(err, &te) || te.From != tc.from || te.To != tc.to {
			t.Fatalf("expected edge detail %s -> %s, got %+v", tc.from, tc.to, te)
		}
		if got.Status != tc.from {
			t.Fatalf("status changed on failure: %s", got.Status)
		}
	}
}

func TestRequestTransition_Guards(t *testing.T) {
	t.Run("scheduling requires appointment", func(t *testing.T) {
		_, err := RequestTransition(newJob(), entities.JobStatusScheduled)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("invoicing requires invoice", func(t *testing.T) {
		_, err := RequestTransition(completedJob(t), entities.JobStatusInvoiced)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("paid requires settled invoice", func(t *testing.T) {
		_, err := RequestTransition(invoicedJob(t), entities.JobStatusPaid)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("zero total invoice is settled with the job", func(t *testing.T) {
		items := []entities.LineItem{{Description: "Warranty visit", Quantity: 1, UnitPrice: dec(t, "0")}}
		job, err := GenerateInvoice(completedJob(t), items, dec(t, "0.1"), "inv-0", at(11))
		if err != nil {
			t.Fatalf("invoice: %v", err)
		}
		if job.Invoice.Status != entities.InvoiceStatusUnpaid || !job.Invoice.TotalAmount.IsZero() {
			t.Fatalf("unexpected invoice: %+v", job.Invoice)
		}

		got, err := RequestTransition(job, entities.JobStatusPaid)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if got.Status != entities.JobStatusPaid || got.Invoice.Status != entities.InvoiceStatusPaid {
			t.Fatalf("expected PAID job and invoice, got %s/%s", got.Status, got.Invoice.Status)
		}
		if job.Invoice.Status != entities.InvoiceStatusUnpaid {
			t.Fatalf("input invoice was mutated: %s", job.Invoice.Status)
		}
	})

	t.Run("completion has no data guard", func(t *testing.T) {
		job := newJob()
		job.Status = entities.JobStatusScheduled
		got, err := MarkCompleted(job)
		if err != nil || got.Status != entities.JobStatusCompleted {
			t.Fatalf("expected COMPLETED, got %s err=%v", got.Status, err)
		}
	})
}

func TestLifecycle_StatusNeverDecreases(t *testing.T) {
	targets := []entities.JobStatus{
		entities.JobStatusPaid, entities.JobStatusNew, entities.JobStatusCompleted,
		entities.JobStatusScheduled, entities.JobStatusInvoiced,
	}

	job := newJob()
	rank := job.Status.Rank()
	step := func(next entities.Job) {
		if next.Status.Rank() < rank {
			t.Fatalf("status went backward: %s", next.Status)
		}
		rank = next.Status.Rank()
		job = next
	}

	for _, target := range targets {
		next, _ := RequestTransition(job, target)
		step(next)
	}
	next, _ := AttachAppointment(job, "Bob", at(9), at(10))
	step(next)
	for _, target := range targets {
		next, _ := RequestTransition(job, target)
		step(next)
	}
	next, _ = AttachAppointment(job, "Carol", at(12), at(13))
	step(next)
	if job.Status != entities.JobStatusCompleted {
		t.Fatalf("expected COMPLETED after re-attach, got %s", job.Status)
	}
}
