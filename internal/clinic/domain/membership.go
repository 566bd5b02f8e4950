package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
)

// Membership binds a user to a clinic with a role. A user has at most
// one active membership at a time; the schema enforces this with a
// partial unique index.
type Membership struct {
	ID             string
	ClinicID       string
	UserID         string
	Role           Role
	InvitationCode string // code consumed to create this row; empty for seeded rows
	Active         bool
	JoinedAt       time.Time
	UpdatedAt      time.Time
}

// Principal is the per-request tenancy context: who is calling and
// which clinic/role their active membership grants. It is passed
// explicitly into every service call instead of living in a global.
type Principal struct {
	UserID   string
	ClinicID string
	Role     Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
