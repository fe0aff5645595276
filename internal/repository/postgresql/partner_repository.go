package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/repository"
)

const partnerColumns = `id, phone_number, first_name, last_name, city, pincode,
is_assigned, is_verified, is_pan_verified, is_bank_verified, is_id_verified,
pan_number, pan_name, account_number, ifsc_code, account_holder_name,
registered_at, verified_at`

type PartnerRepository struct {
	q querier
}

func NewPartnerRepository(q querier) *PartnerRepository {
	return &PartnerRepository{q: q}
}

// Create inserts a new partner. A taken phone number yields repository.ErrDuplicateKey.
func (r *PartnerRepository) Create(ctx context.Context, p *entity.Partner) error {
	const q = `
INSERT INTO partners (phone_number, first_name, last_name, city, pincode)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, registered_at;
`
	err := r.q.QueryRow(ctx, q, p.PhoneNumber, p.FirstName, p.LastName, p.City, p.Pincode).
		Scan(&p.ID, &p.RegisteredAt)
	if err != nil {
		if err = mapErr(err); errors.Is(err, repository.ErrDuplicateKey) {
			return err
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

func (r *PartnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	q := `SELECT ` + partnerColumns + ` FROM partners WHERE id = $1;`
	return r.getOne(ctx, q, id)
}

func (r *PartnerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Partner, error) {
	q := `SELECT ` + partnerColumns + ` FROM partners WHERE phone_number = $1;`
	return r.getOne(ctx, q, phone)
}

// GetForUpdate reads the partner and locks its row until the transaction ends.
func (r *PartnerRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	q := `SELECT ` + partnerColumns + ` FROM partners WHERE id = $1 FOR UPDATE;`
	return r.getOne(ctx, q, id)
}

func (r *PartnerRepository) getOne(ctx context.Context, q string, arg any) (*entity.Partner, error) {
	var p entity.Partner
	if err := scanPartner(r.q.QueryRow(ctx, q, arg), &p); err != nil {
		if err = mapErr(err); errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("select partner: %w", err)
	}
	return &p, nil
}

func scanPartner(row pgx.Row, p *entity.Partner) error {
	return row.Scan(
		&p.ID, &p.PhoneNumber, &p.FirstName, &p.LastName, &p.City, &p.Pincode,
		&p.IsAssigned, &p.IsVerified, &p.IsPanVerified, &p.IsBankVerified, &p.IsIDVerified,
		&p.PanNumber, &p.PanName, &p.AccountNumber, &p.IFSCCode, &p.AccountHolderName,
		&p.RegisteredAt, &p.VerifiedAt,
	)
}

// TryAssign sets is_assigned only if it is currently false. It returns false
// when another job already holds the partner.
func (r *PartnerRepository) TryAssign(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `UPDATE partners SET is_assigned = TRUE WHERE id = $1 AND NOT is_assigned;`

	tag, err := r.q.Exec(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("assign partner: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	exists, err := r.exists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, repository.ErrNotFound
	}
	return false, nil
}

func (r *PartnerRepository) Unassign(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE partners SET is_assigned = FALSE WHERE id = $1;`

	tag, err := r.q.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("unassign partner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetPhoneVerified records a successful OTP login (verified=true) or a logout.
func (r *PartnerRepository) SetPhoneVerified(ctx context.Context, id uuid.UUID, verified bool, at time.Time) error {
	const q = `
UPDATE partners
SET is_verified = $2,
    verified_at = CASE WHEN $2 THEN $3 ELSE verified_at END
WHERE id = $1;
`
	return r.exec(ctx, "set phone verified", q, id, verified, at)
}

func (r *PartnerRepository) SetPanVerified(ctx context.Context, id uuid.UUID, panNumber, panName string) error {
	const q = `
UPDATE partners
SET is_pan_verified = TRUE, pan_number = $2, pan_name = $3
WHERE id = $1;
`
	return r.exec(ctx, "set pan verified", q, id, panNumber, panName)
}

func (r *PartnerRepository) SetBankVerified(ctx context.Context, id uuid.UUID, accountNumber, ifsc, holder string) error {
	const q = `
UPDATE partners
SET is_bank_verified = TRUE, account_number = $2, ifsc_code = $3, account_holder_name = $4
WHERE id = $1;
`
	return r.exec(ctx, "set bank verified", q, id, accountNumber, ifsc, holder)
}

func (r *PartnerRepository) SetIDVerified(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE partners SET is_id_verified = TRUE WHERE id = $1;`
	return r.exec(ctx, "set id verified", q, id)
}

// List returns partners in registration order.
func (r *PartnerRepository) List(ctx context.Context, offset, limit int) ([]entity.Partner, error) {
	q := `SELECT ` + partnerColumns + ` FROM partners ORDER BY registered_at, id OFFSET $1 LIMIT $2;`

	rows, err := r.q.Query(ctx, q, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Partner, 0, limit)
	for rows.Next() {
		var p entity.Partner
		if err := scanPartner(rows, &p); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	return out, nil
}

func (r *PartnerRepository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM partners WHERE id = $1);`

	var ok bool
	if err := r.q.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("partner lookup: %w", err)
	}
	return ok, nil
}

func (r *PartnerRepository) exec(ctx context.Context, op, q string, args ...any) error {
	tag, err := r.q.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
