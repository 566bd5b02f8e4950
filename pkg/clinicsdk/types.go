package clinicsdk

// ErrorResponse is the error body every endpoint returns on failure.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// BootstrapRequest mints the founding clinic code on an empty system.
type BootstrapRequest struct {
	Token      string `json:"token"`
	ExpiryDays int    `json:"expiry_days,omitempty"`
}

// IssueCodeRequest mints a registration code. Type is "clinic" or
// "doctor"; doctor codes are always bound to the caller's clinic.
type IssueCodeRequest struct {
	Type       string `json:"type"`
	ExpiryDays int    `json:"expiry_days,omitempty"`
}

// CodeResponse carries a freshly minted registration code. The code
// value is shown exactly once; it cannot be retrieved again.
type CodeResponse struct {
	CodeID    string `json:"code_id"`
	Code      string `json:"code"`
	Type      string `json:"type"`
	ClinicID  string `json:"clinic_id,omitempty"`
	ExpiresAt int64  `json:"expires_at,omitempty"` // unix seconds, 0 = never
}

// RedeemCodeRequest joins the caller to a clinic as a doctor.
type RedeemCodeRequest struct {
	Code string `json:"code"`
}

// RegisterClinicRequest founds a new clinic from a clinic-type code.
type RegisterClinicRequest struct {
	Code       string `json:"code"`
	ClinicName string `json:"clinic_name"`
}

// JoinResponse is the outcome of redeeming a code or registering a
// clinic: the membership created and the clinic it belongs to.
type JoinResponse struct {
	MembershipID string `json:"membership_id"`
	ClinicID     string `json:"clinic_id"`
	ClinicName   string `json:"clinic_name"`
	Role         string `json:"role"`
	JoinedAt     int64  `json:"joined_at"` // unix seconds
}

// MembershipResponse describes a clinic staff membership.
type MembershipResponse struct {
	MembershipID string `json:"membership_id"`
	ClinicID     string `json:"clinic_id"`
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
	JoinedAt     int64  `json:"joined_at"` // unix seconds
}

// StaffResponse lists a clinic's memberships.
type StaffResponse struct {
	Staff []MembershipResponse `json:"staff"`
}

// ClinicResponse describes a clinic.
type ClinicResponse struct {
	ClinicID  string `json:"clinic_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"` // unix seconds
}

// ClinicStatusRequest sets the clinic status: "active", "suspended" or
// "inactive".
type ClinicStatusRequest struct {
	Status string `json:"status"`
}

// PatientRequest registers a patient. DateOfBirth uses the 2006-01-02
// layout.
type PatientRequest struct {
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	DateOfBirth string `json:"date_of_birth"`
	Sex         string `json:"sex,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// PatientResponse describes a registered patient.
type PatientResponse struct {
	PatientID   string `json:"patient_id"`
	MRN         string `json:"mrn"`
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	DateOfBirth string `json:"date_of_birth"`
	Age         int    `json:"age"`
	Sex         string `json:"sex,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CreatedAt   int64  `json:"created_at"` // unix seconds
}

// PatientsResponse lists a clinic's patients.
type PatientsResponse struct {
	Patients []PatientResponse `json:"patients"`
}

// VisitRequest records a visit for a patient. OccurredAt of zero means
// now.
type VisitRequest struct {
	Reason     string `json:"reason"`
	Diagnosis  string `json:"diagnosis,omitempty"`
	Notes      string `json:"notes,omitempty"`
	OccurredAt int64  `json:"occurred_at,omitempty"` // unix seconds
}

// VisitResponse describes a recorded visit.
type VisitResponse struct {
	VisitID    string `json:"visit_id"`
	PatientID  string `json:"patient_id"`
	DoctorID   string `json:"doctor_id"`
	Reason     string `json:"reason"`
	Diagnosis  string `json:"diagnosis,omitempty"`
	Notes      string `json:"notes,omitempty"`
	OccurredAt int64  `json:"occurred_at"` // unix seconds
}

// VisitsResponse lists a patient's visits.
type VisitsResponse struct {
	Visits []VisitResponse `json:"visits"`
}

// AppointmentRequest schedules an appointment.
type AppointmentRequest struct {
	PatientID    string `json:"patient_id"`
	ScheduledAt  int64  `json:"scheduled_at"` // unix seconds
	DurationMins int    `json:"duration_mins,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// AppointmentResponse describes an appointment.
type AppointmentResponse struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	DoctorID      string `json:"doctor_id"`
	ScheduledAt   int64  `json:"scheduled_at"` // unix seconds
	DurationMins  int    `json:"duration_mins"`
	Reason        string `json:"reason,omitempty"`
	Status        string `json:"status"`
}

// AppointmentsResponse lists appointments for a day.
type AppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FollowUpRequest schedules a follow-up for a patient.
type FollowUpRequest struct {
	PatientID string `json:"patient_id"`
	VisitID   string `json:"visit_id,omitempty"`
	DueAt     int64  `json:"due_at"` // unix seconds
	Notes     string `json:"notes,omitempty"`
}

// FollowUpResponse describes a follow-up.
type FollowUpResponse struct {
	FollowUpID string `json:"followup_id"`
	PatientID  string `json:"patient_id"`
	VisitID    string `json:"visit_id,omitempty"`
	DoctorID   string `json:"doctor_id"`
	DueAt      int64  `json:"due_at"` // unix seconds
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status"`
}

// FollowUpsResponse lists due and overdue follow-ups.
type FollowUpsResponse struct {
	FollowUps []FollowUpResponse `json:"followups"`
}

// AuditEntryResponse is one line of the clinic's audit trail.
type AuditEntryResponse struct {
	EntryID     string `json:"entry_id"`
	ActorID     string `json:"actor_id"`
	Action      string `json:"action"`
	SubjectKind string `json:"subject_kind"`
	SubjectID   string `json:"subject_id"`
	Detail      string `json:"detail,omitempty"`
	CreatedAt   int64  `json:"created_at"` // unix seconds
}

// AuditResponse lists audit entries, newest first.
type AuditResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

// DashboardResponse carries the per-clinic summary counts.
type DashboardResponse struct {
	Patients             int64 `json:"patients"`
	VisitsLast7Days      int64 `json:"visits_last_7_days"`
	OverdueFollowUps     int64 `json:"overdue_followups"`
	UpcomingAppointments int64 `json:"upcoming_appointments"`
}
