package entities

import "time"

type JobEventType string

const (
	JobEventCreated             JobEventType = "job.created"
	JobEventAppointmentAttached JobEventType = "job.appointment_attached"
	JobEventCompleted           JobEventType = "job.completed"
	JobEventInvoiced            JobEventType = "job.invoiced"
	JobEventPaymentRecorded     JobEventType = "job.payment_recorded"
	JobEventStatusChanged       JobEventType = "job.status_changed"
)

// JobEvent is published after a job change has been persisted.
type JobEvent struct {
	Type       JobEventType `json:"type"`
	JobID      string       `json:"job_id"`
	InvoiceID  string       `json:"invoice_id,omitempty"`
	FromStatus JobStatus    `json:"from_status"`
	ToStatus   JobStatus    `json:"to_status"`
	OccurredAt time.Time    `json:"occurred_at"`
}
