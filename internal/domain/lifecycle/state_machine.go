package lifecycle

import (
	"fieldservice/internal/domain/entities"
)

type guard func(job entities.Job) bool

type edge struct {
	to    entities.JobStatus
	guard guard
}

// transitions is the whole legal-edge table. Each status has at most one
// forward edge.
var transitions = map[entities.JobStatus]edge{
	entities.JobStatusNew: {
		to:    entities.JobStatusScheduled,
		guard: func(job entities.Job) bool { return job.Appointment != nil },
	},
	entities.JobStatusScheduled: {
		to:    entities.JobStatusCompleted,
		guard: func(entities.Job) bool { return true },
	},
	entities.JobStatusCompleted: {
		to: entities.JobStatusInvoiced,
		guard: func(job entities.Job) bool {
			return job.Invoice != nil && len(job.Invoice.LineItems) > 0
		},
	},
	entities.JobStatusInvoiced: {
		to: entities.JobStatusPaid,
		guard: func(job entities.Job) bool {
			return job.Invoice != nil && job.Invoice.PaidAmount.Equal(job.Invoice.TotalAmount)
		},
	},
}

// RequestTransition moves job to target when the edge is legal and its
// guard holds. Requesting the current status is a no-op. Moving to PAID
// also marks the invoice PAID.
func RequestTransition(job entities.Job, target entities.JobStatus) (entities.Job, error) {
	if target == job.Status && target.Valid() {
		return job, nil
	}
	e, ok := transitions[job.Status]
	if !ok || e.to != target || !e.guard(job) {
		return job, &TransitionError{From: job.Status, To: target}
	}
	job.Status = target
	if target == entities.JobStatusPaid && job.Invoice.Status != entities.InvoiceStatusPaid {
		// Zero-total invoices are settled by the operator's transition.
		job = job.Clone()
		job.Invoice.Status = entities.InvoiceStatusPaid
	}
	return job, nil
}

// MarkCompleted records the operator's attestation that the work is done.
func MarkCompleted(job entities.Job) (entities.Job, error) {
	return RequestTransition(job, entities.JobStatusCompleted)
}
