package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
	"fieldservice/internal/usecase/interfaces"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// IJobUseCase exposes the job lifecycle operations:
//   - createJob / getJob / listJobs
//   - attachAppointment => NEW -> SCHEDULED
//   - markCompleted     => SCHEDULED -> COMPLETED
//   - generateInvoice   => COMPLETED -> INVOICED
//   - requestTransition => any guarded edge of the state machine

type IJobUseCase interface {
	CreateJob(ctx context.Context, title, description string, customer entities.Customer) (entities.Job, error)
	AttachAppointment(ctx context.Context, jobID, technician string, start, end time.Time) (entities.Job, error)
	MarkCompleted(ctx context.Context, jobID string) (entities.Job, error)
	RequestTransition(ctx context.Context, jobID string, target entities.JobStatus) (entities.Job, error)
	GenerateInvoice(ctx context.Context, jobID string, items []entities.LineItem) (entities.Job, error)
	GetJob(ctx context.Context, jobID string) (entities.Job, error)
	ListJobs(ctx context.Context, status entities.JobStatus) ([]entities.Job, error)
}

type JobUseCase struct {
	jobMutator
	taxRate decimal.Decimal
	newID   func() string
}

var _ IJobUseCase = (*JobUseCase)(nil)

func NewJobUseCase(repo interfaces.IJobRepository, publisher interfaces.IEventPublisher, locker *JobLocker, taxRate decimal.Decimal) *JobUseCase {
	return &JobUseCase{
		jobMutator: jobMutator{repo: repo, publisher: publisher, locker: locker, clock: utcNow},
		taxRate:    taxRate,
		newID:      uuid.NewString,
	}
}

func utcNow() time.Time { return time.Now().UTC() }

func (u *JobUseCase) CreateJob(ctx context.Context, title, description string, customer entities.Customer) (entities.Job, error) {
	title = strings.TrimSpace(title)
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)
	customer.Phone = strings.TrimSpace(customer.Phone)

	if title == "" {
		return entities.Job{}, &lifecycle.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if customer.Name == "" {
		return entities.Job{}, &lifecycle.ValidationError{Field: "customer.name", Reason: "must not be empty"}
	}
	if err := validate.Var(customer.Email, "required,email"); err != nil {
		return entities.Job{}, &lifecycle.ValidationError{Field: "customer.email", Reason: "must be a valid email address"}
	}
	if strings.TrimSpace(customer.ID) == "" {
		customer.ID = u.newID()
	}

	now := u.clock()
	job := entities.Job{
		ID:          u.newID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      entities.JobStatusNew,
		Customer:    customer,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}

	created, err := u.repo.Create(ctx, job)
	if err != nil {
		log.Printf("[job][usecase] create failed job_id=%s err=%v", job.ID, err)
		return entities.Job{}, err
	}
	log.Printf("[job][usecase] created job_id=%s customer=%s", created.ID, created.Customer.ID)
	u.publish(ctx, entities.JobEventCreated, "", created)
	return created, nil
}

func (u *JobUseCase) AttachAppointment(ctx context.Context, jobID, technician string, start, end time.Time) (entities.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return u.apply(ctx, jobID, entities.JobEventAppointmentAttached, func(job entities.Job) (entities.Job, error) {
		return lifecycle.AttachAppointment(job, technician, start.UTC(), end.UTC())
	})
}

func (u *JobUseCase) MarkCompleted(ctx context.Context, jobID string) (entities.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return u.apply(ctx, jobID, entities.JobEventCompleted, lifecycle.MarkCompleted)
}

func (u *JobUseCase) RequestTransition(ctx context.Context, jobID string, target entities.JobStatus) (entities.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return u.apply(ctx, jobID, entities.JobEventStatusChanged, func(job entities.Job) (entities.Job, error) {
		return lifecycle.RequestTransition(job, target)
	})
}

func (u *JobUseCase) GenerateInvoice(ctx context.Context, jobID string, items []entities.LineItem) (entities.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	invoiceID := u.newID()
	job, err := u.apply(ctx, jobID, entities.JobEventInvoiced, func(job entities.Job) (entities.Job, error) {
		return lifecycle.GenerateInvoice(job, items, u.taxRate, invoiceID, u.clock())
	})
	if err != nil {
		return entities.Job{}, err
	}
	log.Printf("[job][usecase] invoiced job_id=%s invoice_id=%s total=%s", job.ID, invoiceID, job.Invoice.TotalAmount.StringFixed(2))
	return job, nil
}

func (u *JobUseCase) GetJob(ctx context.Context, jobID string) (entities.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	job, err := u.repo.GetByID(ctx, jobID)
	if err != nil {
		return entities.Job{}, err
	}
	if job.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return job, nil
}

func (u *JobUseCase) ListJobs(ctx context.Context, status entities.JobStatus) ([]entities.Job, error) {
	if status != "" && !status.Valid() {
		return nil, &lifecycle.ValidationError{Field: "status", Reason: "unknown job status"}
	}
	return u.repo.List(ctx, status)
}
