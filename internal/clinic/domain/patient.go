package domain

import "time"

type Patient struct {
	ID          string
	ClinicID    string
	MRN         string // human-facing medical record number, e.g. MRN-000042
	MRNSeq      int64  // per-clinic sequence backing the MRN
	GivenName   string
	FamilyName  string
	DateOfBirth time.Time
	Sex         string // free-form as recorded at registration
	Phone       string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Age returns the patient's age in whole years at now.
func (p Patient) Age(now time.Time) int {
	years := now.Year() - p.DateOfBirth.Year()

	// Birthday not yet reached this year.
	anniversary := p.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
