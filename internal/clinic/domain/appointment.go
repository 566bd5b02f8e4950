package domain

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID           string
	ClinicID     string
	PatientID    string
	DoctorID     string
	ScheduledAt  time.Time
	DurationMins int
	Reason       string
	Status       AppointmentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
