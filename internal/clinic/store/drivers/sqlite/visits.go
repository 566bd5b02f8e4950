package sqlite

import (
	"context"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
)

type visitsRepo struct {
	db dbtx
}

func (r *visitsRepo) CreateVisit(ctx context.Context, v domain.Visit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visits
			(id, clinic_id, patient_id, doctor_id, reason, diagnosis, notes, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.ClinicID, v.PatientID, v.DoctorID, v.Reason, v.Diagnosis, v.Notes,
		timeToUnix(v.OccurredAt), timeToUnix(v.CreatedAt))
	return mapConstraint(err)
}

func (r *visitsRepo) ListByPatient(
	ctx context.Context,
	clinicID, patientID string,
) ([]domain.Visit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, clinic_id, patient_id, doctor_id, reason, diagnosis, notes, occurred_at, created_at
		FROM visits
		WHERE clinic_id = ? AND patient_id = ?
		ORDER BY occurred_at DESC, id DESC`, clinicID, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Visit
	for rows.Next() {
		var (
			v                    domain.Visit
			occurredAt, createdAt int64
		)
		err := rows.Scan(&v.ID, &v.ClinicID, &v.PatientID, &v.DoctorID,
			&v.Reason, &v.Diagnosis, &v.Notes, &occurredAt, &createdAt)
		if err != nil {
			return nil, err
		}
		v.OccurredAt = unixToTime(occurredAt)
		v.CreatedAt = unixToTime(createdAt)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *visitsRepo) CountSince(
	ctx context.Context,
	clinicID string,
	since time.Time,
) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM visits
		WHERE clinic_id = ? AND occurred_at >= ?`,
		clinicID, timeToUnix(since)).Scan(&count)
	return count, err
}
