package sqlite

import (
	"context"

	"github.com/openclinic/clinicd/internal/clinic/domain"
)

type auditLogRepo struct {
	db dbtx
}

func (r *auditLogRepo) Append(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs
			(id, clinic_id, actor_id, action, subject_kind, subject_id, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ClinicID, e.ActorID, e.Action, e.SubjectKind, e.SubjectID,
		e.Detail, timeToUnix(e.CreatedAt))
	return mapConstraint(err)
}

func (r *auditLogRepo) ListByClinic(
	ctx context.Context,
	clinicID string,
	limit int,
) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, clinic_id, actor_id, action, subject_kind, subject_id, detail, created_at
		FROM audit_logs
		WHERE clinic_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		clinicID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var (
			e         domain.AuditEntry
			createdAt int64
		)
		err := rows.Scan(&e.ID, &e.ClinicID, &e.ActorID, &e.Action,
			&e.SubjectKind, &e.SubjectID, &e.Detail, &createdAt)
		if err != nil {
			return nil, err
		}
		e.CreatedAt = unixToTime(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
