package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/metrics"
	"job-assignment-service/internal/repository"
)

// JobTx is the row-level port used inside one engine transaction
// (implementation: postgresql.Store). GetJobForUpdate must lock the job row
// until the transaction ends.
type JobTx interface {
	GetJobForUpdate(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	InsertJob(ctx context.Context, job *entity.Job) error
	UpdateJob(ctx context.Context, job *entity.Job) error
	DeleteJob(ctx context.Context, id uuid.UUID) error

	GetPartner(ctx context.Context, id uuid.UUID) (*entity.Partner, error)
	// LockPartner locks the partner row until the transaction ends.
	LockPartner(ctx context.Context, id uuid.UUID) (*entity.Partner, error)
	// AssignPartner flips is_assigned false -> true. It returns false when the
	// partner was already assigned and repository.ErrNotFound when it does not exist.
	AssignPartner(ctx context.Context, id uuid.UUID) (bool, error)
	UnassignPartner(ctx context.Context, id uuid.UUID) error
	// PartnerHasActiveJob reports whether the partner holds an in_progress job
	// other than exclude.
	PartnerHasActiveJob(ctx context.Context, partnerID, exclude uuid.UUID) (bool, error)

	AppendStatusLog(ctx context.Context, entry *entity.StatusLogEntry) error
	DeleteStatusLogs(ctx context.Context, jobID uuid.UUID) error
}

// JobStore runs fn in a single transaction: commit when fn returns nil,
// rollback otherwise.
type JobStore interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx JobTx) error) error

	GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	ListJobs(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error)
	ListStatusLogs(ctx context.Context, jobID uuid.UUID) ([]entity.StatusLogEntry, error)
}

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// JobService is the assignment engine: the only writer of job status,
// job.assigned_partner_id, partner.is_assigned and the status log.
type JobService struct {
	store JobStore
	now   func() time.Time
	log   *zap.SugaredLogger
}

type Option func(*JobService)

// WithClock overrides the clock used for status log timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *JobService) { s.now = now }
}

func NewJobService(store JobStore, opts ...Option) *JobService {
	s := &JobService{
		store: store,
		now:   time.Now,
		log:   zap.S().Named("engine"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type CreateJobRequest struct {
	Name              string
	CustomerName      string
	Address           string
	City              string
	Pincode           int
	Type              string
	Rate              decimal.Decimal
	Size              *int
	DeliveryDate      time.Time
	ChecklistLink     *string
	GoogleMapLink     *string
	AssignedPartnerID *uuid.UUID
}

// UpdateJobRequest is a partial update: nil fields are left untouched.
// ClearAssignedPartner removes the partner reference and wins over AssignedPartnerID.
type UpdateJobRequest struct {
	Name                 *string
	CustomerName         *string
	Address              *string
	City                 *string
	Pincode              *int
	Type                 *string
	Rate                 *decimal.Decimal
	Size                 *int
	DeliveryDate         *time.Time
	ChecklistLink        *string
	GoogleMapLink        *string
	AssignedPartnerID    *uuid.UUID
	ClearAssignedPartner bool
}

func (s *JobService) CreateJob(ctx context.Context, req CreateJobRequest) (*entity.Job, error) {
	const op = "create job"

	job := &entity.Job{
		ID:                uuid.New(),
		Name:              req.Name,
		CustomerName:      req.CustomerName,
		Address:           req.Address,
		City:              req.City,
		Pincode:           req.Pincode,
		Type:              req.Type,
		Rate:              req.Rate,
		Size:              req.Size,
		DeliveryDate:      req.DeliveryDate,
		ChecklistLink:     req.ChecklistLink,
		GoogleMapLink:     req.GoogleMapLink,
		Status:            entity.StatusCreated,
		AssignedPartnerID: req.AssignedPartnerID,
	}

	err := s.store.InTx(ctx, func(ctx context.Context, tx JobTx) error {
		// The flag is only checked here; it is set when the job starts.
		if job.AssignedPartnerID != nil {
			p, err := tx.GetPartner(ctx, *job.AssignedPartnerID)
			if err != nil {
				return s.partnerErr(op, *job.AssignedPartnerID, err)
			}
			if p.IsAssigned {
				return &ErrPartnerBusy{PartnerID: p.ID}
			}
		}

		ts := s.now().UTC()
		job.StatusChangedAt = ts
		job.CreatedAt = ts
		job.UpdatedAt = ts
		if err := tx.InsertJob(ctx, job); err != nil {
			return persistence(op, job.ID, err)
		}
		return s.appendLog(ctx, tx, op, job, "Job created", nil)
	})
	if err != nil {
		return nil, s.fail(op, job.ID, err)
	}

	s.log.Infow("job created", "job_id", job.ID, "status", job.Status, "partner_id", job.AssignedPartnerID)
	metrics.IncreaseJobTransitionsMetric(string(entity.StatusCreated))
	return job, nil
}

// StartJob starts or resumes a job. The partner flag is re-validated on every
// start, including a resume from paused.
func (s *JobService) StartJob(ctx context.Context, id uuid.UUID, notes *string) (*entity.Job, error) {
	const op = "start job"

	var job *entity.Job
	err := s.store.InTx(ctx, func(ctx context.Context, tx JobTx) error {
		var err error
		job, err = s.lockJob(ctx, tx, op, id)
		if err != nil {
			return err
		}
		// in_progress -> in_progress is reserved for reassignment.
		if job.Status == entity.StatusInProgress || !job.Status.CanTransition(entity.StatusInProgress) {
			return &InvalidTransitionError{Op: "start", JobID: id, Current: job.Status}
		}
		if job.AssignedPartnerID == nil {
			return &ErrMissingPartner{JobID: id}
		}

		if err := s.assign(ctx, tx, op, *job.AssignedPartnerID); err != nil {
			return err
		}

		defaultNote := "Job started"
		if job.Status == entity.StatusPaused {
			defaultNote = "Job resumed"
		}
		job.Status = entity.StatusInProgress
		return s.saveTransition(ctx, tx, op, job, defaultNote, notes)
	})
	if err != nil {
		return nil, s.fail(op, id, err)
	}

	s.log.Infow("job started", "job_id", id, "status", job.Status, "partner_id", job.AssignedPartnerID)
	metrics.IncreaseJobTransitionsMetric(string(job.Status))
	return job, nil
}

func (s *JobService) PauseJob(ctx context.Context, id uuid.UUID, notes *string) (*entity.Job, error) {
	return s.stop(ctx, "pause job", "pause", id, entity.StatusPaused, "Job paused", notes)
}

func (s *JobService) FinishJob(ctx context.Context, id uuid.UUID, notes *string) (*entity.Job, error) {
	return s.stop(ctx, "finish job", "finish", id, entity.StatusCompleted, "Job completed", notes)
}

// stop moves an in_progress job to next and releases its partner.
func (s *JobService) stop(ctx context.Context, op, verb string, id uuid.UUID, next entity.JobStatus, defaultNote string, notes *string) (*entity.Job, error) {
	var job *entity.Job
	err := s.store.InTx(ctx, func(ctx context.Context, tx JobTx) error {
		var err error
		job, err = s.lockJob(ctx, tx, op, id)
		if err != nil {
			return err
		}
		if !job.Status.CanTransition(next) {
			return &InvalidTransitionError{Op: verb, JobID: id, Current: job.Status}
		}
		if job.AssignedPartnerID != nil {
			if err := s.unassign(ctx, tx, op, *job.AssignedPartnerID); err != nil {
				return err
			}
		}
		job.Status = next
		return s.saveTransition(ctx, tx, op, job, defaultNote, notes)
	})
	if err != nil {
		return nil, s.fail(op, id, err)
	}

	s.log.Infow("job "+string(job.Status), "job_id", id, "status", job.Status, "partner_id", job.AssignedPartnerID)
	metrics.IncreaseJobTransitionsMetric(string(job.Status))
	return job, nil
}

// UpdateJob applies a partial update. A partner change on an in_progress job
// swaps the assignment flags in the same transaction and is logged as an
// in_progress -> in_progress transition.
func (s *JobService) UpdateJob(ctx context.Context, id uuid.UUID, req UpdateJobRequest) (*entity.Job, error) {
	const op = "update job"

	var (
		job        *entity.Job
		reassigned bool
	)
	err := s.store.InTx(ctx, func(ctx context.Context, tx JobTx) error {
		var err error
		job, err = s.lockJob(ctx, tx, op, id)
		if err != nil {
			return err
		}

		newPartner, changed := partnerChange(job.AssignedPartnerID, req)
		if changed {
			if job.Status == entity.StatusInProgress {
				if newPartner == nil {
					return &InvalidTransitionError{Op: "unassign the partner of", JobID: id, Current: job.Status}
				}
				if job.AssignedPartnerID != nil {
					if err := s.unassign(ctx, tx, op, *job.AssignedPartnerID); err != nil {
						return err
					}
				}
				if err := s.assign(ctx, tx, op, *newPartner); err != nil {
					return err
				}
				reassigned = true
			} else if newPartner != nil {
				// Flag mutation is deferred to the next start; only the reference is checked.
				if _, err := tx.GetPartner(ctx, *newPartner); err != nil {
					return s.partnerErr(op, *newPartner, err)
				}
			}
			job.AssignedPartnerID = newPartner
		}

		applyPatch(job, req)

		if reassigned {
			return s.saveTransition(ctx, tx, op, job, "Partner reassigned", nil)
		}
		job.UpdatedAt = s.now().UTC()
		if err := tx.UpdateJob(ctx, job); err != nil {
			return persistence(op, id, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(op, id, err)
	}

	s.log.Infow("job updated", "job_id", id, "status", job.Status, "partner_id", job.AssignedPartnerID, "reassigned", reassigned)
	if reassigned {
		metrics.IncreaseJobTransitionsMetric(string(job.Status))
	}
	return job, nil
}

// DeleteJob removes a job and its status log, releasing the assigned partner
// whatever the job status. The flag is left alone only when the partner is
// working on a different in_progress job.
func (s *JobService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	const op = "delete job"

	err := s.store.InTx(ctx, func(ctx context.Context, tx JobTx) error {
		job, err := s.lockJob(ctx, tx, op, id)
		if err != nil {
			return err
		}
		if job.AssignedPartnerID != nil {
			if err := s.release(ctx, tx, op, job); err != nil {
				return err
			}
		}
		if err := tx.DeleteStatusLogs(ctx, id); err != nil {
			return persistence(op, id, err)
		}
		if err := tx.DeleteJob(ctx, id); err != nil {
			return persistence(op, id, err)
		}
		return nil
	})
	if err != nil {
		return s.fail(op, id, err)
	}

	s.log.Infow("job deleted", "job_id", id)
	return nil
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newJobNotFound(id)
		}
		return nil, s.fail("get job", id, persistence("get job", id, err))
	}
	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error) {
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	jobs, err := s.store.ListJobs(ctx, filter)
	if err != nil {
		return nil, s.fail("list jobs", uuid.Nil, persistence("list jobs", uuid.Nil, err))
	}
	return jobs, nil
}

// GetStatusHistory returns the job's log in chronological order,
// ties broken by insertion order.
func (s *JobService) GetStatusHistory(ctx context.Context, id uuid.UUID) ([]entity.StatusLogEntry, error) {
	const op = "get status history"

	if _, err := s.GetJob(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.store.ListStatusLogs(ctx, id)
	if err != nil {
		return nil, s.fail(op, id, persistence(op, id, err))
	}
	return entries, nil
}

func (s *JobService) lockJob(ctx context.Context, tx JobTx, op string, id uuid.UUID) (*entity.Job, error) {
	job, err := tx.GetJobForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newJobNotFound(id)
		}
		return nil, persistence(op, id, err)
	}
	return job, nil
}

func (s *JobService) assign(ctx context.Context, tx JobTx, op string, partnerID uuid.UUID) error {
	ok, err := tx.AssignPartner(ctx, partnerID)
	if err != nil {
		return s.partnerErr(op, partnerID, err)
	}
	if !ok {
		metrics.IncreaseAssignmentConflictsMetric()
		return &ErrPartnerBusy{PartnerID: partnerID}
	}
	return nil
}

func (s *JobService) unassign(ctx context.Context, tx JobTx, op string, partnerID uuid.UUID) error {
	if err := tx.UnassignPartner(ctx, partnerID); err != nil {
		return s.partnerErr(op, partnerID, err)
	}
	return nil
}

// release clears the flag of the job's partner on delete. A dangling partner
// reference is not an error here.
func (s *JobService) release(ctx context.Context, tx JobTx, op string, job *entity.Job) error {
	partnerID := *job.AssignedPartnerID
	// A concurrent start of another job for this partner must either commit
	// before the active-job check or wait until this transaction ends.
	if _, err := tx.LockPartner(ctx, partnerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return persistence(op, partnerID, err)
	}
	if job.Status != entity.StatusInProgress {
		busy, err := tx.PartnerHasActiveJob(ctx, partnerID, job.ID)
		if err != nil {
			return persistence(op, job.ID, err)
		}
		if busy {
			return nil
		}
	}
	if err := tx.UnassignPartner(ctx, partnerID); err != nil {
		return persistence(op, partnerID, err)
	}
	return nil
}

func (s *JobService) partnerErr(op string, partnerID uuid.UUID, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return newPartnerNotFound(partnerID)
	}
	return persistence(op, partnerID, err)
}

// saveTransition persists the job row and appends the matching log entry.
func (s *JobService) saveTransition(ctx context.Context, tx JobTx, op string, job *entity.Job, defaultNote string, notes *string) error {
	ts := s.logTime(job)
	job.StatusChangedAt = ts
	job.UpdatedAt = ts
	if err := tx.UpdateJob(ctx, job); err != nil {
		return persistence(op, job.ID, err)
	}
	return s.appendLog(ctx, tx, op, job, defaultNote, notes)
}

func (s *JobService) appendLog(ctx context.Context, tx JobTx, op string, job *entity.Job, defaultNote string, notes *string) error {
	note := defaultNote
	if notes != nil && *notes != "" {
		note = *notes
	}
	entry := &entity.StatusLogEntry{
		JobID:     job.ID,
		Status:    job.Status,
		Timestamp: job.StatusChangedAt,
		Notes:     &note,
	}
	if err := tx.AppendStatusLog(ctx, entry); err != nil {
		return persistence(op, job.ID, err)
	}
	return nil
}

// logTime never goes backwards for a job, even if the wall clock does.
func (s *JobService) logTime(job *entity.Job) time.Time {
	ts := s.now().UTC()
	if ts.Before(job.StatusChangedAt) {
		return job.StatusChangedAt
	}
	return ts
}

func (s *JobService) fail(op string, id uuid.UUID, err error) error {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		s.log.Errorw(op+" failed", "entity_id", pe.EntityID, "error", pe.Err)
		return err
	}
	// Transaction begin/commit errors reach us unwrapped.
	if !isDomainError(err) {
		s.log.Errorw(op+" failed", "entity_id", id, "error", err)
		return persistence(op, id, err)
	}
	s.log.Debugw(op+" rejected", "entity_id", id, "reason", err)
	return err
}

func isDomainError(err error) bool {
	for _, kind := range []error{
		ErrJobNotFound, ErrPartnerNotFound, ErrPartnerAlreadyAssigned,
		ErrNoPartnerAssigned, ErrInvalidTransition,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func persistence(op string, id uuid.UUID, err error) error {
	return &PersistenceError{Op: op, EntityID: id, Err: err}
}

func partnerChange(current *uuid.UUID, req UpdateJobRequest) (*uuid.UUID, bool) {
	switch {
	case req.ClearAssignedPartner:
		return nil, current != nil
	case req.AssignedPartnerID != nil:
		if current != nil && *current == *req.AssignedPartnerID {
			return current, false
		}
		id := *req.AssignedPartnerID
		return &id, true
	default:
		return current, false
	}
}

func applyPatch(job *entity.Job, req UpdateJobRequest) {
	if req.Name != nil {
		job.Name = *req.Name
	}
	if req.CustomerName != nil {
		job.CustomerName = *req.CustomerName
	}
	if req.Address != nil {
		job.Address = *req.Address
	}
	if req.City != nil {
		job.City = *req.City
	}
	if req.Pincode != nil {
		job.Pincode = *req.Pincode
	}
	if req.Type != nil {
		job.Type = *req.Type
	}
	if req.Rate != nil {
		job.Rate = *req.Rate
	}
	if req.Size != nil {
		size := *req.Size
		job.Size = &size
	}
	if req.DeliveryDate != nil {
		job.DeliveryDate = *req.DeliveryDate
	}
	if req.ChecklistLink != nil {
		link := *req.ChecklistLink
		job.ChecklistLink = &link
	}
	if req.GoogleMapLink != nil {
		link := *req.GoogleMapLink
		job.GoogleMapLink = &link
	}
}
