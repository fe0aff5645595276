package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"job-assignment-service/internal/entity"
)

type StatusLogRepository struct {
	q querier
}

func NewStatusLogRepository(q querier) *StatusLogRepository {
	return &StatusLogRepository{q: q}
}

// Append inserts the entry and sets its ID.
func (r *StatusLogRepository) Append(ctx context.Context, e *entity.StatusLogEntry) error {
	const q = `
INSERT INTO job_status_logs (job_id, status, timestamp, notes)
VALUES ($1, $2, $3, $4)
RETURNING id;
`
	if err := r.q.QueryRow(ctx, q, e.JobID, string(e.Status), e.Timestamp, e.Notes).Scan(&e.ID); err != nil {
		return fmt.Errorf("append status log: %w", err)
	}
	return nil
}

func (r *StatusLogRepository) DeleteByJob(ctx context.Context, jobID uuid.UUID) error {
	const q = `DELETE FROM job_status_logs WHERE job_id=$1;`

	if _, err := r.q.Exec(ctx, q, jobID); err != nil {
		return fmt.Errorf("delete status logs: %w", err)
	}
	return nil
}

// ListByJob returns entries oldest first; the serial id breaks timestamp ties.
func (r *StatusLogRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]entity.StatusLogEntry, error) {
	const q = `
SELECT id, job_id, status, timestamp, notes
FROM job_status_logs
WHERE job_id = $1
ORDER BY timestamp ASC, id ASC;
`
	rows, err := r.q.Query(ctx, q, jobID)
	if err != nil {
		return nil, fmt.Errorf("list status logs: %w", err)
	}
	defer rows.Close()

	var entries []entity.StatusLogEntry
	for rows.Next() {
		var (
			e          entity.StatusLogEntry
			statusText string
		)
		if err := rows.Scan(&e.ID, &e.JobID, &statusText, &e.Timestamp, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan status log: %w", err)
		}
		e.Status = entity.JobStatus(statusText)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
