package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/phone"
	"job-assignment-service/internal/repository"
)

const (
	defaultPartnerPage = 50
	maxPartnerPage     = 200
)

// PartnerDirectory is the admin view of the partner table.
type PartnerDirectory interface {
	GetByPhone(ctx context.Context, phone string) (*entity.Partner, error)
	SetIDVerified(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, offset, limit int) ([]entity.Partner, error)
}

// ApprovalService backs the admin endpoints: manual ID approval of partners
// and the partner listing.
type ApprovalService struct {
	partners PartnerDirectory
	log      *zap.SugaredLogger
}

func NewApprovalService(partners PartnerDirectory) *ApprovalService {
	return &ApprovalService{partners: partners, log: zap.S().Named("approval")}
}

// ApproveID marks the partner's identity documents as checked. Approving an
// already approved partner succeeds.
func (s *ApprovalService) ApproveID(ctx context.Context, rawPhone string) (*entity.Partner, error) {
	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, err
	}
	p, err := s.partners.GetByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	if p.IsIDVerified {
		return p, nil
	}

	if err := s.partners.SetIDVerified(ctx, p.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newPartnerNotFound(p.ID)
		}
		return nil, err
	}
	p.IsIDVerified = true
	s.log.Infow("partner id approved", "partner_id", p.ID)
	return p, nil
}

// ListPartners pages through partners in registration order.
func (s *ApprovalService) ListPartners(ctx context.Context, offset, limit int) ([]entity.Partner, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPartnerPage
	}
	if limit > maxPartnerPage {
		limit = maxPartnerPage
	}
	return s.partners.List(ctx, offset, limit)
}
