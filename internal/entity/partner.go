package entity

import (
	"time"

	"github.com/google/uuid"
)

// Partner is an independent contractor that can be assigned to jobs.
type Partner struct {
	ID          uuid.UUID `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	City        string    `json:"city"`
	Pincode     string    `json:"pincode"`

	// IsAssigned is owned by the assignment engine.
	IsAssigned bool `json:"is_assigned"`

	IsVerified     bool `json:"is_verified"`
	IsPanVerified  bool `json:"is_pan_verified"`
	IsBankVerified bool `json:"is_bank_verified"`
	IsIDVerified   bool `json:"is_id_verified"`

	PanNumber         *string `json:"pan_number,omitempty"`
	PanName           *string `json:"pan_name,omitempty"`
	AccountNumber     *string `json:"account_number,omitempty"`
	IFSCCode          *string `json:"ifsc_code,omitempty"`
	AccountHolderName *string `json:"account_holder_name,omitempty"`

	RegisteredAt time.Time  `json:"registered_at"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
}

func (p *Partner) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// HasFullAccess is true once phone, PAN and bank account are all verified.
func (p *Partner) HasFullAccess() bool {
	return p.IsVerified && p.IsPanVerified && p.IsBankVerified
}
