package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"job-assignment-service/internal/entity"
)

// Error kinds returned by the assignment engine. Match them with errors.Is.
var (
	ErrJobNotFound            = errors.New("job not found")
	ErrPartnerNotFound        = errors.New("partner not found")
	ErrPartnerAlreadyAssigned = errors.New("partner already assigned")
	ErrNoPartnerAssigned      = errors.New("no partner assigned")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrPersistence            = errors.New("persistence failure")
)

type ErrResourceNotFound struct {
	kind error
	id   uuid.UUID
}

func newJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return &ErrResourceNotFound{kind: ErrJobNotFound, id: id}
}

func newPartnerNotFound(id uuid.UUID) *ErrResourceNotFound {
	return &ErrResourceNotFound{kind: ErrPartnerNotFound, id: id}
}

func (e *ErrResourceNotFound) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.id)
}

func (e *ErrResourceNotFound) Unwrap() error { return e.kind }

type ErrPartnerBusy struct {
	PartnerID uuid.UUID
}

func (e *ErrPartnerBusy) Error() string {
	return fmt.Sprintf("partner %s is already assigned to another job", e.PartnerID)
}

func (e *ErrPartnerBusy) Unwrap() error { return ErrPartnerAlreadyAssigned }

type ErrMissingPartner struct {
	JobID uuid.UUID
}

func (e *ErrMissingPartner) Error() string {
	return fmt.Sprintf("cannot start job %s without an assigned partner", e.JobID)
}

func (e *ErrMissingPartner) Unwrap() error { return ErrNoPartnerAssigned }

// InvalidTransitionError names the status the job was in when the operation was refused.
type InvalidTransitionError struct {
	Op      string
	JobID   uuid.UUID
	Current entity.JobStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s job %s, current status: %s", ErrInvalidTransition, e.Op, e.JobID, e.Current)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// PersistenceError hides the storage cause from Error() but keeps it for errors.As and logs.
type PersistenceError struct {
	Op       string
	EntityID uuid.UUID
	Err      error
}

func (e *PersistenceError) Error() string {
	if e.EntityID == uuid.Nil {
		return fmt.Sprintf("%s: %s", ErrPersistence, e.Op)
	}
	return fmt.Sprintf("%s: %s %s", ErrPersistence, e.Op, e.EntityID)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }
