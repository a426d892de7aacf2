package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// jobRecord keeps the searchable columns flat and the aggregate itself as a
// JSONB document in Data.
type jobRecord struct {
	ID        string         `gorm:"primaryKey;type:varchar(64)"`
	Status    string         `gorm:"type:varchar(20);index;not null"`
	InvoiceID *string        `gorm:"type:varchar(64);uniqueIndex"`
	Version   int64          `gorm:"not null"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"index"`
	UpdatedAt time.Time
}

func (jobRecord) TableName() string { return "jobs" }

type JobPostgresRepository struct {
	db *gorm.DB
}

var _ interfaces.IJobRepository = (*JobPostgresRepository)(nil)

func NewJobPostgresRepository(db *gorm.DB) *JobPostgresRepository {
	return &JobPostgresRepository{db: db}
}

// Migrate creates or updates the jobs table.
func (r *JobPostgresRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&jobRecord{})
}

func (r *JobPostgresRepository) Create(ctx context.Context, job entities.Job) (entities.Job, error) {
	rec, err := toJobRecord(job)
	if err != nil {
		return entities.Job{}, err
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.Job{}, errJobAlreadyExists
		}
		return entities.Job{}, err
	}
	return job, nil
}

func (r *JobPostgresRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *JobPostgresRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (entities.Job, error) {
	return r.first(ctx, "invoice_id = ?", invoiceID)
}

func (r *JobPostgresRepository) List(ctx context.Context, status entities.JobStatus) ([]entities.Job, error) {
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var recs []jobRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}

	jobs := make([]entities.Job, 0, len(recs))
	for _, rec := range recs {
		job, err := fromJobRecord(rec)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (r *JobPostgresRepository) Save(ctx context.Context, job entities.Job, expectedVersion int64) (entities.Job, error) {
	job.Version = expectedVersion + 1
	rec, err := toJobRecord(job)
	if err != nil {
		return entities.Job{}, err
	}

	res := r.db.WithContext(ctx).
		Model(&jobRecord{}).
		Where("id = ? AND version = ?", job.ID, expectedVersion).
		Updates(map[string]any{
			"status":     rec.Status,
			"invoice_id": rec.InvoiceID,
			"version":    rec.Version,
			"data":       rec.Data,
			"updated_at": rec.UpdatedAt,
		})
	if res.Error != nil {
		return entities.Job{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Job{}, interfaces.ErrVersionConflict
	}
	return job, nil
}

func (r *JobPostgresRepository) first(ctx context.Context, query string, arg string) (entities.Job, error) {
	var rec jobRecord
	err := r.db.WithContext(ctx).Where(query, arg).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Job{}, nil
	}
	if err != nil {
		return entities.Job{}, err
	}
	return fromJobRecord(rec)
}

func toJobRecord(job entities.Job) (jobRecord, error) {
	it := toJobItem(job)
	data, err := json.Marshal(it)
	if err != nil {
		return jobRecord{}, err
	}
	rec := jobRecord{
		ID:        job.ID,
		Status:    string(job.Status),
		Version:   job.Version,
		Data:      datatypes.JSON(data),
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
	if it.InvoiceID != "" {
		rec.InvoiceID = &it.InvoiceID
	}
	return rec, nil
}

func fromJobRecord(rec jobRecord) (entities.Job, error) {
	var it jobItem
	if err := json.Unmarshal(rec.Data, &it); err != nil {
		return entities.Job{}, err
	}
	// columns win over the document for the fields we update in place
	it.Version = rec.Version
	return fromJobItem(it)
}
