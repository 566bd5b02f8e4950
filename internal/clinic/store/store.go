package store

import (
	"context"
	"errors"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement
// this. It exposes sub-repositories to keep concerns tidy and testable,
// and a Tx-scoped variant for multi-step operations that must be atomic
// (membership insert + code claim being the important one).
type Store interface {
	Clinics() Clinics
	RegistrationCodes() RegistrationCodes
	Memberships() Memberships
	Patients() Patients
	Visits() Visits
	Appointments() Appointments
	FollowUps() FollowUps
	AuditLog() AuditLog

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error, the transaction is rolled back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clinics interface {
	// GetClinicByID returns a clinic by id.
	GetClinicByID(ctx context.Context, id string) (domain.Clinic, error)

	// CreateClinic inserts a new clinic (id is provided by app via ULID).
	CreateClinic(ctx context.Context, c domain.Clinic) error

	// UpdateClinicStatus sets the status and bumps updated_at.
	UpdateClinicStatus(ctx context.Context, clinicID string, status domain.ClinicStatus) error

	// IsEmpty returns true if there are no clinics. Used by bootstrap.
	IsEmpty(ctx context.Context) (bool, error)
}

type RegistrationCodes interface {
	// CreateCode writes a new registration code. Returns
	// ErrAlreadyExists if an unused code with the same value exists
	// (partial unique index); callers regenerate and retry.
	CreateCode(ctx context.Context, c domain.RegistrationCode) error

	// GetUnusedByCode returns the unused code with the given normalized
	// value, expired or not. Expiry is the caller's decision.
	GetUnusedByCode(ctx context.Context, code string) (domain.RegistrationCode, error)

	// ClaimCode atomically marks a code used. The update is conditional
	// on used = 0; a zero-row result returns ErrNotFound, which is how
	// concurrent double redemption is lost by exactly one caller.
	ClaimCode(ctx context.Context, codeID, usedBy string, usedAt time.Time) error
}

type Memberships interface {
	// CreateMembership inserts a staff membership. Returns
	// ErrAlreadyExists if the user already holds an active membership
	// (partial unique index on user_id where is_active).
	CreateMembership(ctx context.Context, m domain.Membership) error

	// GetMembershipByID returns a membership row by id.
	GetMembershipByID(ctx context.Context, id string) (domain.Membership, error)

	// GetActiveByUser returns the user's active membership, if any.
	GetActiveByUser(ctx context.Context, userID string) (domain.Membership, error)

	// ListByClinic returns all memberships for a clinic, newest first.
	ListByClinic(ctx context.Context, clinicID string) ([]domain.Membership, error)

	// Deactivate flips is_active off. Conditional on the row still
	// being active; ErrNotFound otherwise.
	Deactivate(ctx context.Context, membershipID string, at time.Time) error
}

type Patients interface {
	// NextMRNSeq returns the next unallocated per-clinic MRN sequence
	// number. Call inside the same transaction as CreatePatient; the
	// unique (clinic_id, mrn_seq) index backstops races.
	NextMRNSeq(ctx context.Context, clinicID string) (int64, error)

	// CreatePatient inserts a patient. ErrAlreadyExists on an MRN
	// sequence collision.
	CreatePatient(ctx context.Context, p domain.Patient) error

	// GetPatient returns a patient scoped to the clinic.
	GetPatient(ctx context.Context, clinicID, patientID string) (domain.Patient, error)

	// ListPatients returns a clinic's patients, newest first.
	ListPatients(ctx context.Context, clinicID string) ([]domain.Patient, error)

	// CountPatients returns the number of patients in a clinic.
	CountPatients(ctx context.Context, clinicID string) (int64, error)
}

type Visits interface {
	// CreateVisit inserts a visit record.
	CreateVisit(ctx context.Context, v domain.Visit) error

	// ListByPatient returns a patient's visits, most recent first.
	ListByPatient(ctx context.Context, clinicID, patientID string) ([]domain.Visit, error)

	// CountSince counts a clinic's visits that occurred at or after since.
	CountSince(ctx context.Context, clinicID string, since time.Time) (int64, error)
}

type Appointments interface {
	// CreateAppointment inserts a scheduled appointment.
	CreateAppointment(ctx context.Context, a domain.Appointment) error

	// ListBetween returns a clinic's appointments scheduled in
	// [from, to), soonest first.
	ListBetween(ctx context.Context, clinicID string, from, to time.Time) ([]domain.Appointment, error)

	// Cancel marks an appointment cancelled. Conditional on the row
	// still being scheduled; ErrNotFound otherwise.
	Cancel(ctx context.Context, clinicID, appointmentID string, at time.Time) error

	// CountUpcoming counts still-scheduled appointments at or after from.
	CountUpcoming(ctx context.Context, clinicID string, from time.Time) (int64, error)
}

type FollowUps interface {
	// CreateFollowUp inserts a pending follow-up.
	CreateFollowUp(ctx context.Context, f domain.FollowUp) error

	// Complete marks a follow-up done. Conditional on the row being
	// pending or overdue; ErrNotFound otherwise.
	Complete(ctx context.Context, clinicID, followUpID string, at time.Time) error

	// ListDue returns a clinic's pending and overdue follow-ups with
	// due_at at or before by, oldest due first.
	ListDue(ctx context.Context, clinicID string, by time.Time) ([]domain.FollowUp, error)

	// MarkOverdue flips every pending follow-up past its due date to
	// overdue in one statement, across all clinics. Returns the number
	// of rows changed.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)

	// CountOverdue counts a clinic's overdue follow-ups.
	CountOverdue(ctx context.Context, clinicID string) (int64, error)
}

type AuditLog interface {
	// Append writes an audit entry. Call inside the same transaction as
	// the mutation the entry describes.
	Append(ctx context.Context, e domain.AuditEntry) error

	// ListByClinic returns a clinic's newest entries, up to limit.
	ListByClinic(ctx context.Context, clinicID string, limit int) ([]domain.AuditEntry, error)
}
