package entities

import "time"

// Appointment is the single active visit booked for a job.
type Appointment struct {
	Technician string    `json:"technician"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}
