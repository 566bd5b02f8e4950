package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
)

type followUpsRepo struct {
	db dbtx
}

const followUpColumns = `id, clinic_id, patient_id, visit_id, doctor_id, due_at, notes, status, created_at, updated_at`

func (r *followUpsRepo) CreateFollowUp(ctx context.Context, f domain.FollowUp) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO follow_ups
			(`+followUpColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.ClinicID, f.PatientID, mapStringNull(f.VisitID), f.DoctorID,
		timeToUnix(f.DueAt), f.Notes, f.Status,
		timeToUnix(f.CreatedAt), timeToUnix(f.UpdatedAt))
	return mapConstraint(err)
}

func (r *followUpsRepo) Complete(
	ctx context.Context,
	clinicID, followUpID string,
	at time.Time,
) error {
	return requireRowAffected(r.db.ExecContext(ctx, `
		UPDATE follow_ups
		SET status = 'done', updated_at = ?
		WHERE clinic_id = ? AND id = ? AND status IN ('pending', 'overdue')`,
		timeToUnix(at), clinicID, followUpID))
}

func (r *followUpsRepo) ListDue(
	ctx context.Context,
	clinicID string,
	by time.Time,
) ([]domain.FollowUp, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+followUpColumns+`
		FROM follow_ups
		WHERE clinic_id = ? AND status IN ('pending', 'overdue') AND due_at <= ?
		ORDER BY due_at ASC, id ASC`,
		clinicID, timeToUnix(by))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FollowUp
	for rows.Next() {
		var (
			f                       domain.FollowUp
			visitID                 sql.NullString
			dueAt, createdAt, updat int64
		)
		err := rows.Scan(&f.ID, &f.ClinicID, &f.PatientID, &visitID, &f.DoctorID,
			&dueAt, &f.Notes, &f.Status, &createdAt, &updat)
		if err != nil {
			return nil, err
		}
		f.VisitID = mapNullString(visitID)
		f.DueAt = unixToTime(dueAt)
		f.CreatedAt = unixToTime(createdAt)
		f.UpdatedAt = unixToTime(updat)
		out = append(out, f)
	}
	return out, rows.Err()
}

// MarkOverdue is deliberately a single conditional statement rather than
// a fetch-then-update loop; the sweep must not race with a concurrent
// Complete on the same row.
func (r *followUpsRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE follow_ups
		SET status = 'overdue', updated_at = ?
		WHERE status = 'pending' AND due_at < ?`,
		timeToUnix(now), timeToUnix(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *followUpsRepo) CountOverdue(ctx context.Context, clinicID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM follow_ups
		WHERE clinic_id = ? AND status = 'overdue'`, clinicID).Scan(&count)
	return count, err
}
