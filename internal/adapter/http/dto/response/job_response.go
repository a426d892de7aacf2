package response

import (
	"time"

	"fieldservice/internal/domain/entities"
)

type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type AppointmentResponse struct {
	Technician string    `json:"technician"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

type JobResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      string               `json:"status"`
	Customer    CustomerResponse     `json:"customer"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
	Invoice     *InvoiceResponse     `json:"invoice,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Version     int64                `json:"version"`
}

func FromJob(j entities.Job) JobResponse {
	res := JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Status:      string(j.Status),
		Customer: CustomerResponse{
			ID:    j.Customer.ID,
			Name:  j.Customer.Name,
			Email: j.Customer.Email,
			Phone: j.Customer.Phone,
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
		Version:   j.Version,
	}
	if a := j.Appointment; a != nil {
		res.Appointment = &AppointmentResponse{
			Technician: a.Technician,
			StartTime:  a.StartTime,
			EndTime:    a.EndTime,
		}
	}
	if j.Invoice != nil {
		inv := FromInvoice(*j.Invoice)
		res.Invoice = &inv
	}
	return res
}

func FromJobs(jobs []entities.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}
