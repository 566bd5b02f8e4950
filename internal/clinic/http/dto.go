package http

import (
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
)

// dateLayout is the wire format for dates without a time component.
const dateLayout = "2006-01-02"

func codeResponse(c domain.RegistrationCode) clinicsdk.CodeResponse {
	var expiresAt int64
	if c.ExpiresAt != nil {
		expiresAt = c.ExpiresAt.Unix()
	}
	return clinicsdk.CodeResponse{
		CodeID:    c.ID,
		Code:      c.Code,
		Type:      string(c.Type),
		ClinicID:  c.ClinicID,
		ExpiresAt: expiresAt,
	}
}

func joinResponse(res service.JoinResult) clinicsdk.JoinResponse {
	return clinicsdk.JoinResponse{
		MembershipID: res.Membership.ID,
		ClinicID:     res.Clinic.ID,
		ClinicName:   res.Clinic.Name,
		Role:         string(res.Membership.Role),
		JoinedAt:     res.Membership.JoinedAt.Unix(),
	}
}

func membershipResponse(m domain.Membership) clinicsdk.MembershipResponse {
	return clinicsdk.MembershipResponse{
		MembershipID: m.ID,
		ClinicID:     m.ClinicID,
		UserID:       m.UserID,
		Role:         string(m.Role),
		Active:       m.Active,
		JoinedAt:     m.JoinedAt.Unix(),
	}
}

func clinicResponse(c domain.Clinic) clinicsdk.ClinicResponse {
	return clinicsdk.ClinicResponse{
		ClinicID:  c.ID,
		Name:      c.Name,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt.Unix(),
	}
}

func patientResponse(p domain.Patient, now time.Time) clinicsdk.PatientResponse {
	return clinicsdk.PatientResponse{
		PatientID:   p.ID,
		MRN:         p.MRN,
		GivenName:   p.GivenName,
		FamilyName:  p.FamilyName,
		DateOfBirth: p.DateOfBirth.Format(dateLayout),
		Age:         p.Age(now),
		Sex:         p.Sex,
		Phone:       p.Phone,
		CreatedAt:   p.CreatedAt.Unix(),
	}
}

func visitResponse(v domain.Visit) clinicsdk.VisitResponse {
	return clinicsdk.VisitResponse{
		VisitID:    v.ID,
		PatientID:  v.PatientID,
		DoctorID:   v.DoctorID,
		Reason:     v.Reason,
		Diagnosis:  v.Diagnosis,
		Notes:      v.Notes,
		OccurredAt: v.OccurredAt.Unix(),
	}
}

func appointmentResponse(a domain.Appointment) clinicsdk.AppointmentResponse {
	return clinicsdk.AppointmentResponse{
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		DoctorID:      a.DoctorID,
		ScheduledAt:   a.ScheduledAt.Unix(),
		DurationMins:  a.DurationMins,
		Reason:        a.Reason,
		Status:        string(a.Status),
	}
}

func followUpResponse(f domain.FollowUp) clinicsdk.FollowUpResponse {
	return clinicsdk.FollowUpResponse{
		FollowUpID: f.ID,
		PatientID:  f.PatientID,
		VisitID:    f.VisitID,
		DoctorID:   f.DoctorID,
		DueAt:      f.DueAt.Unix(),
		Notes:      f.Notes,
		Status:     string(f.Status),
	}
}

func auditEntryResponse(e domain.AuditEntry) clinicsdk.AuditEntryResponse {
	return clinicsdk.AuditEntryResponse{
		EntryID:     e.ID,
		ActorID:     e.ActorID,
		Action:      e.Action,
		SubjectKind: e.SubjectKind,
		SubjectID:   e.SubjectID,
		Detail:      e.Detail,
		CreatedAt:   e.CreatedAt.Unix(),
	}
}
