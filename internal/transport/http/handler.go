package httptransport

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/service"
)

// JobEngine is the assignment engine as seen by the HTTP layer.
type JobEngine interface {
	CreateJob(ctx context.Context, req service.CreateJobRequest) (*entity.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, req service.UpdateJobRequest) (*entity.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	StartJob(ctx context.Context, id uuid.UUID, notes *string) (*entity.Job, error)
	PauseJob(ctx context.Context, id uuid.UUID, notes *string) (*entity.Job, error)
	FinishJob(ctx context.Context, id uuid.UUID, notes *string) (*entity.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	ListJobs(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error)
	GetStatusHistory(ctx context.Context, id uuid.UUID) ([]entity.StatusLogEntry, error)
}

type PartnerAuth interface {
	Register(ctx context.Context, req service.RegisterRequest) (*entity.Partner, error)
	SendOTP(ctx context.Context, rawPhone string) (string, error)
	VerifyOTP(ctx context.Context, rawPhone, code string) (*service.Session, error)
	Logout(ctx context.Context, partnerID uuid.UUID) error
}

type Verifier interface {
	VerifyPAN(ctx context.Context, p *entity.Partner, pan string) (*service.PANVerification, error)
	VerifyBank(ctx context.Context, p *entity.Partner, accountNumber, ifsc string, fetchIFSC bool) (*service.BankVerification, error)
	PanelAccess(ctx context.Context, p *entity.Partner) (*service.PanelAccess, error)
}

type Uploader interface {
	UploadProgress(ctx context.Context, jobID uuid.UUID, up service.Upload) (string, error)
}

type Approver interface {
	ApproveID(ctx context.Context, rawPhone string) (*entity.Partner, error)
	ListPartners(ctx context.Context, offset, limit int) ([]entity.Partner, error)
}

type Handler struct {
	jobs      JobEngine
	partners  PartnerAuth
	verifier  Verifier
	uploads   Uploader
	approvals Approver
	validator *Validator

	maxUploadBytes int64
}

type Option func(*Handler)

// WithMaxUploadBytes caps the multipart body accepted by the upload endpoint.
func WithMaxUploadBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

func NewHandler(jobs JobEngine, partners PartnerAuth, verifier Verifier, uploads Uploader, approvals Approver, opts ...Option) *Handler {
	h := &Handler{
		jobs:           jobs,
		partners:       partners,
		verifier:       verifier,
		uploads:        uploads,
		approvals:      approvals,
		validator:      NewValidator(),
		maxUploadBytes: 10 << 20,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
