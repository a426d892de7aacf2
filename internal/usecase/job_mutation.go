package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
	"fieldservice/internal/usecase/interfaces"
)

var (
	ErrJobNotFound      = fmt.Errorf("job %w", lifecycle.ErrNotFound)
	ErrInvoiceNotFound  = fmt.Errorf("invoice %w", lifecycle.ErrNotFound)
	ErrConcurrentUpdate = errors.New("job was modified concurrently")
)

// jobMutator runs one operation as an atomic unit against a persisted job:
// lock, load, apply the pure lifecycle change, compare-and-swap save, publish.
type jobMutator struct {
	repo      interfaces.IJobRepository
	publisher interfaces.IEventPublisher
	locker    *JobLocker
	clock     func() time.Time
}

func (m *jobMutator) apply(
	ctx context.Context,
	jobID string,
	eventType entities.JobEventType,
	change func(job entities.Job) (entities.Job, error),
) (entities.Job, error) {
	unlock := m.locker.Lock(jobID)
	defer unlock()

	current, err := m.repo.GetByID(ctx, jobID)
	if err != nil {
		return entities.Job{}, err
	}
	if current.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}

	updated, err := change(current.Clone())
	if err != nil {
		return entities.Job{}, err
	}
	updated.UpdatedAt = m.clock()

	saved, err := m.repo.Save(ctx, updated, current.Version)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			log.Printf("[job][usecase] version conflict job_id=%s expected_version=%d", jobID, current.Version)
			return entities.Job{}, ErrConcurrentUpdate
		}
		return entities.Job{}, err
	}

	if eventType != entities.JobEventStatusChanged || current.Status != saved.Status {
		m.publish(ctx, eventType, current.Status, saved)
	}
	return saved, nil
}

func (m *jobMutator) publish(ctx context.Context, eventType entities.JobEventType, from entities.JobStatus, job entities.Job) {
	if m.publisher == nil {
		return
	}
	ev := entities.JobEvent{
		Type:       eventType,
		JobID:      job.ID,
		FromStatus: from,
		ToStatus:   job.Status,
		OccurredAt: m.clock(),
	}
	if job.Invoice != nil {
		ev.InvoiceID = job.Invoice.ID
	}
	// Notification is best effort; the change is already persisted.
	if err := m.publisher.Publish(ctx, ev); err != nil {
		log.Printf("[job][usecase] publish failed job_id=%s type=%s err=%v", job.ID, eventType, err)
	}
}
