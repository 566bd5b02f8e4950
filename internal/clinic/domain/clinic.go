package domain

import "time"

type ClinicStatus string

const (
	ClinicActive    ClinicStatus = "active"
	ClinicSuspended ClinicStatus = "suspended"
	ClinicInactive  ClinicStatus = "inactive"
)

// ValidClinicStatus reports whether s is one of the known statuses.
func ValidClinicStatus(s ClinicStatus) bool {
	switch s {
	case ClinicActive, ClinicSuspended, ClinicInactive:
		return true
	}
	return false
}

type Clinic struct {
	ID        string
	Name      string
	Status    ClinicStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
