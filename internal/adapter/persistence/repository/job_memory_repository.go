package repository

import (
	"context"
	"sort"
	"sync"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"
)

// JobMemoryRepository keeps jobs in process memory. Used for local runs
// (JOB_STORE=memory) and tests; it honours the same version check as the
// durable stores.
type JobMemoryRepository struct {
	mu   sync.RWMutex
	jobs map[string]entities.Job
}

var _ interfaces.IJobRepository = (*JobMemoryRepository)(nil)

func NewJobMemoryRepository() *JobMemoryRepository {
	return &JobMemoryRepository{jobs: make(map[string]entities.Job)}
}

func (r *JobMemoryRepository) Create(_ context.Context, job entities.Job) (entities.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; ok {
		return entities.Job{}, errJobAlreadyExists
	}
	r.jobs[job.ID] = job.Clone()
	return job, nil
}

func (r *JobMemoryRepository) GetByID(_ context.Context, id string) (entities.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return entities.Job{}, nil
	}
	return job.Clone(), nil
}

func (r *JobMemoryRepository) GetByInvoiceID(_ context.Context, invoiceID string) (entities.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, job := range r.jobs {
		if job.Invoice != nil && job.Invoice.ID == invoiceID {
			return job.Clone(), nil
		}
	}
	return entities.Job{}, nil
}

func (r *JobMemoryRepository) List(_ context.Context, status entities.JobStatus) ([]entities.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		if status == "" || job.Status == status {
			out = append(out, job.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *JobMemoryRepository) Save(_ context.Context, job entities.Job, expectedVersion int64) (entities.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[job.ID]
	if !ok || stored.Version != expectedVersion {
		return entities.Job{}, interfaces.ErrVersionConflict
	}
	job.Version = expectedVersion + 1
	r.jobs[job.ID] = job.Clone()
	return job, nil
}
