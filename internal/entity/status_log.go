package entity

import (
	"time"

	"github.com/google/uuid"
)

// StatusLogEntry records one status transition of a job.
type StatusLogEntry struct {
	ID        int64     `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	Status    JobStatus `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     *string   `json:"notes,omitempty"`
}
