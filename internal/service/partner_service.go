package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/phone"
	"job-assignment-service/internal/repository"
)

var (
	ErrPartnerExists = errors.New("partner with this phone number already exists")
	ErrInvalidOTP    = errors.New("invalid or expired otp")
	ErrInvalidPhone  = phone.ErrInvalid
)

// PartnerRepository is the partner registry. It never touches is_assigned.
type PartnerRepository interface {
	Create(ctx context.Context, p *entity.Partner) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Partner, error)
	SetPhoneVerified(ctx context.Context, id uuid.UUID, verified bool, at time.Time) error
	SetPanVerified(ctx context.Context, id uuid.UUID, panNumber, panName string) error
	SetBankVerified(ctx context.Context, id uuid.UUID, accountNumber, ifsc, holder string) error
}

type SMSSender interface {
	Send(ctx context.Context, phone, text string, priority entity.SMSPriority) (uuid.UUID, error)
}

type TokenIssuer interface {
	Issue(partnerID uuid.UUID) (string, time.Time, error)
}

const otpMessage = "Hi %s, Here's your OTP: %s. Keep it safe and don't share it with anyone."

type OTPConfig struct {
	Length int
	TTL    time.Duration
}

// PartnerService handles registration and phone OTP login.
type PartnerService struct {
	partners PartnerRepository
	otps     OTPStore
	sms      SMSSender
	tokens   TokenIssuer
	otp      OTPConfig
	now      func() time.Time
	log      *zap.SugaredLogger
}

func NewPartnerService(partners PartnerRepository, otps OTPStore, sms SMSSender, tokens TokenIssuer, otp OTPConfig) *PartnerService {
	if otp.Length <= 0 {
		otp.Length = 6
	}
	if otp.TTL <= 0 {
		otp.TTL = 10 * time.Minute
	}
	return &PartnerService{
		partners: partners,
		otps:     otps,
		sms:      sms,
		tokens:   tokens,
		otp:      otp,
		now:      time.Now,
		log:      zap.S().Named("partner"),
	}
}

type RegisterRequest struct {
	PhoneNumber string
	FirstName   string
	LastName    string
	City        string
	Pincode     string
}

func (s *PartnerService) Register(ctx context.Context, req RegisterRequest) (*entity.Partner, error) {
	normalized, err := phone.Normalize(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	p := &entity.Partner{
		PhoneNumber: normalized,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		City:        strings.TrimSpace(req.City),
		Pincode:     req.Pincode,
	}
	if err := s.partners.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrPartnerExists
		}
		return nil, fmt.Errorf("register partner: %w", err)
	}

	s.log.Infow("partner registered", "partner_id", p.ID)
	return p, nil
}

// SendOTP issues a fresh code for a registered phone and queues the SMS.
// It serves both login and resend. Returns the canonical phone number.
func (s *PartnerService) SendOTP(ctx context.Context, rawPhone string) (string, error) {
	p, err := s.byPhone(ctx, rawPhone)
	if err != nil {
		return "", err
	}

	code, err := generateOTP(s.otp.Length)
	if err != nil {
		return "", err
	}
	if err := s.otps.Put(ctx, p.PhoneNumber, code, s.otp.TTL); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}

	text := fmt.Sprintf(otpMessage, displayName(p.FirstName), code)
	if _, err := s.sms.Send(ctx, p.PhoneNumber, text, entity.SMSPriorityHigh); err != nil {
		return "", fmt.Errorf("queue otp sms: %w", err)
	}

	s.log.Infow("otp sent", "partner_id", p.ID)
	return p.PhoneNumber, nil
}

type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	Partner     *entity.Partner
}

// VerifyOTP consumes the code, marks the phone verified and opens a session.
func (s *PartnerService) VerifyOTP(ctx context.Context, rawPhone, code string) (*Session, error) {
	p, err := s.byPhone(ctx, rawPhone)
	if err != nil {
		return nil, err
	}

	ok, err := s.otps.Verify(ctx, p.PhoneNumber, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	at := s.now().UTC()
	if err := s.partners.SetPhoneVerified(ctx, p.ID, true, at); err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}
	p.IsVerified = true
	p.VerifiedAt = &at

	token, exp, err := s.tokens.Issue(p.ID)
	if err != nil {
		return nil, err
	}

	s.log.Infow("partner logged in", "partner_id", p.ID)
	return &Session{AccessToken: token, ExpiresAt: exp, Partner: p}, nil
}

// Logout clears the phone verification flag; the partner must log in again.
func (s *PartnerService) Logout(ctx context.Context, partnerID uuid.UUID) error {
	if err := s.partners.SetPhoneVerified(ctx, partnerID, false, s.now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newPartnerNotFound(partnerID)
		}
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Infow("partner logged out", "partner_id", partnerID)
	return nil
}

func (s *PartnerService) GetPartner(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	p, err := s.partners.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newPartnerNotFound(id)
		}
		return nil, err
	}
	return p, nil
}

func (s *PartnerService) byPhone(ctx context.Context, rawPhone string) (*entity.Partner, error) {
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
	return p, nil
}

func generateOTP(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b[i] = byte('0' + n.Int64())
	}
	return string(b), nil
}

func displayName(firstName string) string {
	fields := strings.Fields(firstName)
	if len(fields) == 0 {
		return "User"
	}
	r := []rune(strings.ToLower(fields[0]))
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
