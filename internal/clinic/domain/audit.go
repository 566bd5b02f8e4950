package domain

import "time"

// Audit actions recorded by the services. Kept as plain strings in the
// store; these constants are the complete set written today.
const (
	AuditCodeIssued            = "code.issued"
	AuditCodeRedeemed          = "code.redeemed"
	AuditClinicRegistered      = "clinic.registered"
	AuditClinicStatusChanged   = "clinic.status_changed"
	AuditMembershipDeactivated = "membership.deactivated"
	AuditPatientRegistered     = "patient.registered"
	AuditVisitRecorded         = "visit.recorded"
	AuditAppointmentScheduled  = "appointment.scheduled"
	AuditAppointmentCancelled  = "appointment.cancelled"
	AuditFollowUpScheduled     = "followup.scheduled"
	AuditFollowUpCompleted     = "followup.completed"
)

// AuditEntry records who did what to which record. Entries are written
// in the same transaction as the mutation they describe.
type AuditEntry struct {
	ID          string
	ClinicID    string
	ActorID     string
	Action      string
	SubjectKind string
	SubjectID   string
	Detail      string
	CreatedAt   time.Time
}
