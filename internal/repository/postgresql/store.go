package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/service"
)

// Store is the engine's persistence port over a pgx pool.
type Store struct {
	pool *pgxpool.Pool

	jobs     *JobRepository
	partners *PartnerRepository
	logs     *StatusLogRepository
}

var _ service.JobStore = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:     pool,
		jobs:     NewJobRepository(pool),
		partners: NewPartnerRepository(pool),
		logs:     NewStatusLogRepository(pool),
	}
}

func (s *Store) Partners() *PartnerRepository { return s.partners }

// InTx runs fn in a read committed transaction. fn's error is returned as is.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx service.JobTx) error) (err error) {
	pgTx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// Rollback after a successful commit returns pgx.ErrTxClosed. Deferring it
	// unconditionally also releases the connection when fn panics.
	defer func() {
		if rbErr := pgTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			zap.S().Named("store").Warnw("rollback failed", "error", rbErr)
		}
	}()

	if err = fn(ctx, newTx(pgTx)); err != nil {
		return err
	}
	if err = pgTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *Store) ListJobs(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error) {
	return s.jobs.List(ctx, filter)
}

func (s *Store) ListStatusLogs(ctx context.Context, jobID uuid.UUID) ([]entity.StatusLogEntry, error) {
	return s.logs.ListByJob(ctx, jobID)
}

// tx binds the repositories to one pgx transaction.
type tx struct {
	jobs     *JobRepository
	partners *PartnerRepository
	logs     *StatusLogRepository
}

func newTx(pgTx pgx.Tx) *tx {
	return &tx{
		jobs:     NewJobRepository(pgTx),
		partners: NewPartnerRepository(pgTx),
		logs:     NewStatusLogRepository(pgTx),
	}
}

func (t *tx) GetJobForUpdate(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return t.jobs.GetForUpdate(ctx, id)
}

func (t *tx) InsertJob(ctx context.Context, job *entity.Job) error {
	return t.jobs.Create(ctx, job)
}

func (t *tx) UpdateJob(ctx context.Context, job *entity.Job) error {
	return t.jobs.Update(ctx, job)
}

func (t *tx) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return t.jobs.Delete(ctx, id)
}

func (t *tx) GetPartner(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	return t.partners.GetByID(ctx, id)
}

func (t *tx) LockPartner(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	return t.partners.GetForUpdate(ctx, id)
}

func (t *tx) AssignPartner(ctx context.Context, id uuid.UUID) (bool, error) {
	return t.partners.TryAssign(ctx, id)
}

func (t *tx) UnassignPartner(ctx context.Context, id uuid.UUID) error {
	return t.partners.Unassign(ctx, id)
}

func (t *tx) PartnerHasActiveJob(ctx context.Context, partnerID, exclude uuid.UUID) (bool, error) {
	return t.jobs.HasActiveJob(ctx, partnerID, exclude)
}

func (t *tx) AppendStatusLog(ctx context.Context, entry *entity.StatusLogEntry) error {
	return t.logs.Append(ctx, entry)
}

func (t *tx) DeleteStatusLogs(ctx context.Context, jobID uuid.UUID) error {
	return t.logs.DeleteByJob(ctx, jobID)
}
