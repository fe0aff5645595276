package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type JobStatus string

const (
	StatusCreated    JobStatus = "created"
	StatusInProgress JobStatus = "in_progress"
	StatusPaused     JobStatus = "paused"
	StatusCompleted  JobStatus = "completed"
)

func (s JobStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusInProgress, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a job may move from s to next.
// in_progress -> in_progress is the reassignment self-loop.
func (s JobStatus) CanTransition(next JobStatus) bool {
	switch s {
	case StatusCreated:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusPaused || next == StatusCompleted || next == StatusInProgress
	case StatusPaused:
		return next == StatusInProgress
	default:
		return false
	}
}

type Job struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	CustomerName      string          `json:"customer_name"`
	Address           string          `json:"address"`
	City              string          `json:"city"`
	Pincode           int             `json:"pincode"`
	Type              string          `json:"type"`
	Rate              decimal.Decimal `json:"rate"`
	Size              *int            `json:"size,omitempty"`
	DeliveryDate      time.Time       `json:"delivery_date"`
	ChecklistLink     *string         `json:"checklist_link,omitempty"`
	GoogleMapLink     *string         `json:"google_map_link,omitempty"`
	Status            JobStatus       `json:"status"`
	AssignedPartnerID *uuid.UUID      `json:"assigned_partner_id,omitempty"`
	StatusChangedAt   time.Time       `json:"status_changed_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// JobFilter narrows ListJobs. Zero values mean "no filter".
type JobFilter struct {
	Status    JobStatus
	PartnerID *uuid.UUID
	Offset    int
	Limit     int
}
