package interfaces

import (
	"context"
	"errors"

	"fieldservice/internal/domain/entities"
)

// ErrVersionConflict is returned by Save when the stored version differs
// from the expected one (another writer got there first).
var ErrVersionConflict = errors.New("job version conflict")

// IJobRepository abstracts persistence of the Job aggregate.
//
// The job store must be able to:
//   - load/save a whole job (appointment, invoice and payments included) atomically
//   - resolve a job from the id of its invoice
//   - reject stale writes (compare-and-swap on Version)
//
// Lookups return a zero-value job (empty ID) when nothing matches.

type IJobRepository interface {
	Create(ctx context.Context, job entities.Job) (entities.Job, error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	GetByInvoiceID(ctx context.Context, invoiceID string) (entities.Job, error)
	List(ctx context.Context, status entities.JobStatus) ([]entities.Job, error)
	Save(ctx context.Context, job entities.Job, expectedVersion int64) (entities.Job, error)
}
