package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/repository"
)

const jobColumns = `id, name, customer_name, address, city, pincode, type, rate::text, size,
delivery_date, checklist_link, google_map_link, status, assigned_partner_id,
status_changed_at, created_at, updated_at`

type JobRepository struct {
	q querier
}

func NewJobRepository(q querier) *JobRepository {
	return &JobRepository{q: q}
}

func (r *JobRepository) Create(ctx context.Context, job *entity.Job) error {
	const q = `
INSERT INTO jobs (id, name, customer_name, address, city, pincode, type, rate, size,
                  delivery_date, checklist_link, google_map_link, status, assigned_partner_id,
                  status_changed_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10, $11, $12, $13, $14, $15, $16, $17);
`
	_, err := r.q.Exec(ctx, q,
		job.ID, job.Name, job.CustomerName, job.Address, job.City, job.Pincode, job.Type,
		job.Rate.StringFixed(2), job.Size, job.DeliveryDate, job.ChecklistLink, job.GoogleMapLink,
		string(job.Status), job.AssignedPartnerID, job.StatusChangedAt, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", mapErr(err))
	}
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1;`
	return r.getOne(ctx, q, id)
}

// GetForUpdate locks the job row until the surrounding transaction ends.
func (r *JobRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 FOR UPDATE;`
	return r.getOne(ctx, q, id)
}

func (r *JobRepository) getOne(ctx context.Context, q string, id uuid.UUID) (*entity.Job, error) {
	job, err := scanJob(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if err = mapErr(err); errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("select job: %w", err)
	}
	return job, nil
}

func (r *JobRepository) List(ctx context.Context, f entity.JobFilter) ([]entity.Job, error) {
	q := `SELECT ` + jobColumns + `
FROM jobs
WHERE ($1::text = '' OR status = $1)
  AND ($2::uuid IS NULL OR assigned_partner_id = $2)
ORDER BY created_at DESC, id
OFFSET $3 LIMIT $4;`

	rows, err := r.q.Query(ctx, q, string(f.Status), f.PartnerID, f.Offset, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]entity.Job, 0, f.Limit)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) Update(ctx context.Context, job *entity.Job) error {
	const q = `
UPDATE jobs
SET name=$2, customer_name=$3, address=$4, city=$5, pincode=$6, type=$7, rate=$8::numeric,
    size=$9, delivery_date=$10, checklist_link=$11, google_map_link=$12, status=$13,
    assigned_partner_id=$14, status_changed_at=$15, updated_at=$16
WHERE id=$1;
`
	tag, err := r.q.Exec(ctx, q,
		job.ID, job.Name, job.CustomerName, job.Address, job.City, job.Pincode, job.Type,
		job.Rate.StringFixed(2), job.Size, job.DeliveryDate, job.ChecklistLink, job.GoogleMapLink,
		string(job.Status), job.AssignedPartnerID, job.StatusChangedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM jobs WHERE id=$1;`

	tag, err := r.q.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// HasActiveJob reports whether the partner holds an in_progress job other than exclude.
func (r *JobRepository) HasActiveJob(ctx context.Context, partnerID, exclude uuid.UUID) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1 FROM jobs
    WHERE assigned_partner_id = $1 AND status = 'in_progress' AND id <> $2
);
`
	var exists bool
	if err := r.q.QueryRow(ctx, q, partnerID, exclude).Scan(&exists); err != nil {
		return false, fmt.Errorf("active job lookup: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*entity.Job, error) {
	var (
		job        entity.Job
		rateText   string
		statusText string
	)
	if err := row.Scan(
		&job.ID,
		&job.Name,
		&job.CustomerName,
		&job.Address,
		&job.City,
		&job.Pincode,
		&job.Type,
		&rateText,
		&job.Size,
		&job.DeliveryDate,
		&job.ChecklistLink,
		&job.GoogleMapLink,
		&statusText,
		&job.AssignedPartnerID,
		&job.StatusChangedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rate, err := decimal.NewFromString(rateText)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", rateText, err)
	}
	job.Rate = rate
	job.Status = entity.JobStatus(statusText)
	return &job, nil
}
