package domain

import "time"

type FollowUpStatus string

const (
	FollowUpPending   FollowUpStatus = "pending"
	FollowUpOverdue   FollowUpStatus = "overdue"
	FollowUpDone      FollowUpStatus = "done"
	FollowUpCancelled FollowUpStatus = "cancelled"
)

// FollowUp is a reminder that a patient needs to be seen again by a
// given date. Pending follow-ups past their due date are flipped to
// overdue by the housekeeping sweep.
type FollowUp struct {
	ID        string
	ClinicID  string
	PatientID string
	VisitID   string // optional: the visit that prompted the follow-up
	DoctorID  string
	DueAt     time.Time
	Notes     string
	Status    FollowUpStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
