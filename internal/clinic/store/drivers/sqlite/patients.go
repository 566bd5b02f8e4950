package sqlite

import (
	"context"

	"github.com/openclinic/clinicd/internal/clinic/domain"
)

type patientsRepo struct {
	db dbtx
}

const patientColumns = `id, clinic_id, mrn_seq, mrn, given_name, family_name, date_of_birth, sex, phone, created_by, created_at, updated_at`

func (r *patientsRepo) NextMRNSeq(ctx context.Context, clinicID string) (int64, error) {
	var next int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(mrn_seq), 0) + 1
		FROM patients
		WHERE clinic_id = ?`, clinicID).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *patientsRepo) CreatePatient(ctx context.Context, p domain.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients
			(`+patientColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ClinicID, p.MRNSeq, p.MRN, p.GivenName, p.FamilyName,
		timeToUnix(p.DateOfBirth), p.Sex, p.Phone, p.CreatedBy,
		timeToUnix(p.CreatedAt), timeToUnix(p.UpdatedAt))
	return mapConstraint(err)
}

func (r *patientsRepo) GetPatient(
	ctx context.Context,
	clinicID, patientID string,
) (domain.Patient, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE clinic_id = ? AND id = ?`, clinicID, patientID)

	p, err := scanPatient(row.Scan)
	if err != nil {
		return domain.Patient{}, mapNotFound(err)
	}
	return p, nil
}

func (r *patientsRepo) ListPatients(
	ctx context.Context,
	clinicID string,
) ([]domain.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE clinic_id = ?
		ORDER BY mrn_seq DESC`, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Patient
	for rows.Next() {
		p, err := scanPatient(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *patientsRepo) CountPatients(ctx context.Context, clinicID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM patients WHERE clinic_id = ?`, clinicID).Scan(&count)
	return count, err
}

func scanPatient(scan func(...any) error) (domain.Patient, error) {
	var (
		p                       domain.Patient
		dob, createdAt, updated int64
	)
	err := scan(&p.ID, &p.ClinicID, &p.MRNSeq, &p.MRN, &p.GivenName, &p.FamilyName,
		&dob, &p.Sex, &p.Phone, &p.CreatedBy, &createdAt, &updated)
	if err != nil {
		return domain.Patient{}, err
	}
	p.DateOfBirth = unixToTime(dob)
	p.CreatedAt = unixToTime(createdAt)
	p.UpdatedAt = unixToTime(updated)
	return p, nil
}
