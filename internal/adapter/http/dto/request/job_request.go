package request

import (
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
)

type CustomerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateJobRequest is the payload for POST /v1/jobs.
type CreateJobRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Customer    CustomerRequest `json:"customer"`
}

func (r CreateJobRequest) ToCustomer() entities.Customer {
	return entities.Customer{
		ID:    strings.TrimSpace(r.Customer.ID),
		Name:  r.Customer.Name,
		Email: r.Customer.Email,
		Phone: r.Customer.Phone,
	}
}

// AttachAppointmentRequest carries RFC3339 timestamps, e.g.
// "2026-03-01T09:00:00Z".
type AttachAppointmentRequest struct {
	Technician string    `json:"technician"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// Target normalizes the requested status ("paid" -> PAID).
func (r TransitionRequest) Target() entities.JobStatus {
	return entities.JobStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
}
