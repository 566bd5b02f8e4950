package domain

import (
	"strings"
	"time"
)

type CodeType string

const (
	// CodeTypeClinic codes found a new clinic; they are not bound to an
	// existing clinic.
	CodeTypeClinic CodeType = "clinic"

	// CodeTypeDoctor codes join a doctor to the clinic they were minted
	// for; ClinicID is always set for these.
	CodeTypeDoctor CodeType = "doctor"
)

// RegistrationCode is a short, single-use, time-boxed token authorising
// exactly one onboarding action. The code value is stored in clear so it
// can be looked up directly; it is a low-value secret with a hard expiry,
// not a credential.
type RegistrationCode struct {
	ID        string
	Code      string
	Type      CodeType
	ClinicID  string // empty for clinic-type codes
	ExpiresAt *time.Time
	Used      bool
	UsedBy    string // empty until redeemed
	UsedAt    *time.Time
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the code's expiry has passed at now. Codes
// with no expiry never expire.
func (c RegistrationCode) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// NormalizeCode canonicalises a user-entered code: codes are compared
// trimmed and case-insensitively.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
