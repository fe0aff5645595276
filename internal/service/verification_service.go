package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/integration/attestr"
	"job-assignment-service/internal/metrics"
)

var (
	ErrAlreadyVerified         = errors.New("already verified")
	ErrVerificationUnavailable = errors.New("verification provider unavailable")
)

// VerificationRejectedError carries the provider's reason for a negative answer.
type VerificationRejectedError struct {
	Kind    string
	Message string
}

func (e *VerificationRejectedError) Error() string {
	return fmt.Sprintf("%s verification failed: %s", e.Kind, e.Message)
}

type Attestor interface {
	VerifyPAN(ctx context.Context, pan string) (*attestr.PANResult, error)
	VerifyBank(ctx context.Context, accountNumber, ifsc string, fetchIFSC bool) (*attestr.BankResult, error)
}

type JobLister interface {
	ListJobs(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error)
}

// VerificationService writes only the verification columns of a partner.
type VerificationService struct {
	partners PartnerRepository
	attestor Attestor
	jobs     JobLister
	log      *zap.SugaredLogger
}

func NewVerificationService(partners PartnerRepository, attestor Attestor, jobs JobLister) *VerificationService {
	return &VerificationService{
		partners: partners,
		attestor: attestor,
		jobs:     jobs,
		log:      zap.S().Named("verification"),
	}
}

type PANVerification struct {
	PanNumber string
	Name      string
}

func (s *VerificationService) VerifyPAN(ctx context.Context, p *entity.Partner, pan string) (*PANVerification, error) {
	const kind = "pan"

	if p.IsPanVerified {
		return nil, fmt.Errorf("pan %w", ErrAlreadyVerified)
	}

	res, err := s.attestor.VerifyPAN(ctx, pan)
	if err != nil {
		return nil, s.providerErr(kind, p, err)
	}
	if !res.Valid {
		metrics.IncreaseVerificationsMetric(kind, "rejected")
		return nil, &VerificationRejectedError{Kind: kind, Message: orDefault(res.Message, "PAN verification failed")}
	}

	if err := s.partners.SetPanVerified(ctx, p.ID, pan, res.Name); err != nil {
		return nil, fmt.Errorf("save pan verification: %w", err)
	}
	metrics.IncreaseVerificationsMetric(kind, "verified")
	s.log.Infow("pan verified", "partner_id", p.ID)
	return &PANVerification{PanNumber: pan, Name: res.Name}, nil
}

type BankVerification struct {
	AccountNumber     string
	IFSCCode          string
	AccountHolderName string
	AccountStatus     string
}

func (s *VerificationService) VerifyBank(ctx context.Context, p *entity.Partner, accountNumber, ifsc string, fetchIFSC bool) (*BankVerification, error) {
	const kind = "bank"

	if p.IsBankVerified {
		return nil, fmt.Errorf("bank account %w", ErrAlreadyVerified)
	}

	res, err := s.attestor.VerifyBank(ctx, accountNumber, ifsc, fetchIFSC)
	if err != nil {
		return nil, s.providerErr(kind, p, err)
	}
	if !res.Valid {
		metrics.IncreaseVerificationsMetric(kind, "rejected")
		return nil, &VerificationRejectedError{Kind: kind, Message: orDefault(res.Message, "Bank account verification failed")}
	}

	if err := s.partners.SetBankVerified(ctx, p.ID, accountNumber, ifsc, res.Name); err != nil {
		return nil, fmt.Errorf("save bank verification: %w", err)
	}
	metrics.IncreaseVerificationsMetric(kind, "verified")
	s.log.Infow("bank account verified", "partner_id", p.ID, "account_status", res.Status)
	return &BankVerification{
		AccountNumber:     accountNumber,
		IFSCCode:          ifsc,
		AccountHolderName: res.Name,
		AccountStatus:     res.Status,
	}, nil
}

type VerificationStatus struct {
	PhoneVerified bool `json:"phone_verified"`
	PANVerified   bool `json:"pan_verified"`
	BankVerified  bool `json:"bank_verified"`
	IDVerified    bool `json:"id_verified"`
}

type PanelAccess struct {
	HasFullAccess bool
	Status        VerificationStatus
	Jobs          []entity.Job
}

// PanelAccess reports the partner's verification state; fully verified
// partners also get the jobs assigned to them.
func (s *VerificationService) PanelAccess(ctx context.Context, p *entity.Partner) (*PanelAccess, error) {
	out := &PanelAccess{
		HasFullAccess: p.HasFullAccess(),
		Status: VerificationStatus{
			PhoneVerified: p.IsVerified,
			PANVerified:   p.IsPanVerified,
			BankVerified:  p.IsBankVerified,
			IDVerified:    p.IsIDVerified,
		},
	}
	if !out.HasFullAccess {
		return out, nil
	}

	jobs, err := s.jobs.ListJobs(ctx, entity.JobFilter{PartnerID: &p.ID})
	if err != nil {
		return nil, err
	}
	out.Jobs = jobs
	return out, nil
}

func (s *VerificationService) providerErr(kind string, p *entity.Partner, err error) error {
	metrics.IncreaseVerificationsMetric(kind, "error")
	s.log.Warnw("verification provider failed", "kind", kind, "partner_id", p.ID, "error", err)
	return fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
