package entities

import "time"

// JobStatus represents the lifecycle of a service job.
//
// Domain notes:
//   - Statuses are totally ordered: NEW < SCHEDULED < COMPLETED < INVOICED < PAID.
//   - Only the lifecycle state machine mutates Job.Status.

type JobStatus string

const (
	JobStatusNew       JobStatus = "NEW"
	JobStatusScheduled JobStatus = "SCHEDULED"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusInvoiced  JobStatus = "INVOICED"
	JobStatusPaid      JobStatus = "PAID"
)

var jobStatusRank = map[JobStatus]int{
	JobStatusNew:       0,
	JobStatusScheduled: 1,
	JobStatusCompleted: 2,
	JobStatusInvoiced:  3,
	JobStatusPaid:      4,
}

// Rank returns the position of the status in the lifecycle order, or -1 when unknown.
func (s JobStatus) Rank() int {
	if r, ok := jobStatusRank[s]; ok {
		return r
	}
	return -1
}

func (s JobStatus) Valid() bool {
	return s.Rank() >= 0
}

// Customer is a denormalized snapshot taken when the job is created.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Job is the aggregate root persisted by the job store.
//
// The appointment and the invoice are owned by the job; their lifetime is
// bound to it. Version is bumped on every successful save and is used as
// the compare-and-swap token.
type Job struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      JobStatus    `json:"status"`
	Customer    Customer     `json:"customer"`
	Appointment *Appointment `json:"appointment,omitempty"`
	Invoice     *Invoice     `json:"invoice,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Version     int64        `json:"version"`
}

// Clone returns a deep copy so callers can mutate the result without
// touching the original aggregate.
func (j Job) Clone() Job {
	out := j
	if j.Appointment != nil {
		a := *j.Appointment
		out.Appointment = &a
	}
	if j.Invoice != nil {
		inv := j.Invoice.Clone()
		out.Invoice = &inv
	}
	return out
}
