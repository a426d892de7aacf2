package lifecycle

import (
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
)

// AttachAppointment replaces the job's appointment (last write wins) and
// schedules a NEW job. Jobs already past NEW keep their status.
func AttachAppointment(job entities.Job, technician string, start, end time.Time) (entities.Job, error) {
	technician = strings.TrimSpace(technician)
	if technician == "" {
		return job, &ValidationError{Field: "technician", Reason: "must not be empty"}
	}
	if !end.After(start) {
		return job, &ValidationError{Field: "endTime", Reason: "must be after startTime"}
	}

	out := job.Clone()
	out.Appointment = &entities.Appointment{
		Technician: technician,
		StartTime:  start,
		EndTime:    end,
	}
	if out.Status != entities.JobStatusNew {
		return out, nil
	}
	out, err := RequestTransition(out, entities.JobStatusScheduled)
	if err != nil {
		return job, err
	}
	return out, nil
}
