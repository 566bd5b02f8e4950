package domain

import "time"

type Visit struct {
	ID         string
	ClinicID   string
	PatientID  string
	DoctorID   string
	Reason     string
	Diagnosis  string
	Notes      string
	OccurredAt time.Time
	CreatedAt  time.Time
}
