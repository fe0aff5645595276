package service_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/repository"
	"job-assignment-service/internal/service"
)

// memStore is an in-memory JobStore. Transactions are serialized by one
// mutex, which stands in for row locks, and roll back by restoring a snapshot.
type memStore struct {
	mu sync.Mutex

	jobs     map[uuid.UUID]entity.Job
	partners map[uuid.UUID]entity.Partner
	logs     []entity.StatusLogEntry
	nextLog  int64

	// appendErr, when set, fails every AppendStatusLog call.
	appendErr error
	// updateErr, when set, fails every UpdateJob call.
	updateErr error

	// locked holds the partners locked by the running transaction.
	locked map[uuid.UUID]bool
	// unlockedActiveCheck records a PartnerHasActiveJob call made without
	// holding that partner's lock.
	unlockedActiveCheck bool
}

func newMemStore() *memStore {
	return &memStore{
		jobs:     map[uuid.UUID]entity.Job{},
		partners: map[uuid.UUID]entity.Partner{},
	}
}

func (s *memStore) addPartner(assigned bool) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.partners[id] = entity.Partner{ID: id, PhoneNumber: "91" + id.String()[:10], FirstName: "P", IsAssigned: assigned}
	return id
}

func (s *memStore) partner(id uuid.UUID) entity.Partner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partners[id]
}

func (s *memStore) job(id uuid.UUID) (entity.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	return j, ok
}

func (s *memStore) logCount(jobID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.logs {
		if e.JobID == jobID {
			n++
		}
	}
	return n
}

func (s *memStore) InTx(ctx context.Context, fn func(ctx context.Context, tx service.JobTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make(map[uuid.UUID]entity.Job, len(s.jobs))
	for k, v := range s.jobs {
		jobs[k] = v
	}
	partners := make(map[uuid.UUID]entity.Partner, len(s.partners))
	for k, v := range s.partners {
		partners[k] = v
	}
	logs := append([]entity.StatusLogEntry(nil), s.logs...)
	nextLog := s.nextLog
	s.locked = map[uuid.UUID]bool{}

	if err := fn(ctx, (*memTx)(s)); err != nil {
		s.jobs, s.partners, s.logs, s.nextLog = jobs, partners, logs, nextLog
		return err
	}
	return nil
}

func (s *memStore) GetJob(_ context.Context, id uuid.UUID) (*entity.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &j, nil
}

func (s *memStore) ListJobs(_ context.Context, f entity.JobFilter) ([]entity.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Job
	for _, j := range s.jobs {
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.PartnerID != nil && (j.AssignedPartnerID == nil || *j.AssignedPartnerID != *f.PartnerID) {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID.String() < out[b].ID.String() })

	if f.Offset >= len(out) {
		return []entity.Job{}, nil
	}
	out = out[f.Offset:]
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *memStore) ListStatusLogs(_ context.Context, jobID uuid.UUID) ([]entity.StatusLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.StatusLogEntry
	for _, e := range s.logs {
		if e.JobID == jobID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Timestamp.Equal(out[b].Timestamp) {
			return out[a].ID < out[b].ID
		}
		return out[a].Timestamp.Before(out[b].Timestamp)
	})
	return out, nil
}

// memTx operates on the store while InTx holds its lock.
type memTx memStore

func (t *memTx) GetJobForUpdate(_ context.Context, id uuid.UUID) (*entity.Job, error) {
	j, ok := t.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &j, nil
}

func (t *memTx) InsertJob(_ context.Context, job *entity.Job) error {
	if _, ok := t.jobs[job.ID]; ok {
		return repository.ErrDuplicateKey
	}
	t.jobs[job.ID] = *job
	return nil
}

func (t *memTx) UpdateJob(_ context.Context, job *entity.Job) error {
	if t.updateErr != nil {
		return t.updateErr
	}
	if _, ok := t.jobs[job.ID]; !ok {
		return repository.ErrNotFound
	}
	t.jobs[job.ID] = *job
	return nil
}

func (t *memTx) DeleteJob(_ context.Context, id uuid.UUID) error {
	if _, ok := t.jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.jobs, id)
	return nil
}

func (t *memTx) GetPartner(_ context.Context, id uuid.UUID) (*entity.Partner, error) {
	p, ok := t.partners[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (t *memTx) LockPartner(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	p, err := t.GetPartner(ctx, id)
	if err != nil {
		return nil, err
	}
	t.locked[id] = true
	return p, nil
}

func (t *memTx) AssignPartner(_ context.Context, id uuid.UUID) (bool, error) {
	p, ok := t.partners[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if p.IsAssigned {
		return false, nil
	}
	p.IsAssigned = true
	t.partners[id] = p
	return true, nil
}

func (t *memTx) UnassignPartner(_ context.Context, id uuid.UUID) error {
	p, ok := t.partners[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsAssigned = false
	t.partners[id] = p
	return nil
}

func (t *memTx) PartnerHasActiveJob(_ context.Context, partnerID, exclude uuid.UUID) (bool, error) {
	if !t.locked[partnerID] {
		t.unlockedActiveCheck = true
	}
	for _, j := range t.jobs {
		if j.ID != exclude && j.Status == entity.StatusInProgress &&
			j.AssignedPartnerID != nil && *j.AssignedPartnerID == partnerID {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) AppendStatusLog(_ context.Context, e *entity.StatusLogEntry) error {
	if t.appendErr != nil {
		return t.appendErr
	}
	t.nextLog++
	e.ID = t.nextLog
	t.logs = append(t.logs, *e)
	return nil
}

func (t *memTx) DeleteStatusLogs(_ context.Context, jobID uuid.UUID) error {
	kept := t.logs[:0]
	for _, e := range t.logs {
		if e.JobID != jobID {
			kept = append(kept, e)
		}
	}
	t.logs = kept
	return nil
}
