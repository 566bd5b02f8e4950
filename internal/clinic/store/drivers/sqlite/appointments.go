package sqlite

import (
	"context"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
)

type appointmentsRepo struct {
	db dbtx
}

const appointmentColumns = `id, clinic_id, patient_id, doctor_id, scheduled_at, duration_mins, reason, status, created_at, updated_at`

func (r *appointmentsRepo) CreateAppointment(ctx context.Context, a domain.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments
			(`+appointmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ClinicID, a.PatientID, a.DoctorID, timeToUnix(a.ScheduledAt),
		a.DurationMins, a.Reason, a.Status,
		timeToUnix(a.CreatedAt), timeToUnix(a.UpdatedAt))
	return mapConstraint(err)
}

func (r *appointmentsRepo) ListBetween(
	ctx context.Context,
	clinicID string,
	from, to time.Time,
) ([]domain.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE clinic_id = ? AND scheduled_at >= ? AND scheduled_at < ?
		ORDER BY scheduled_at ASC, id ASC`,
		clinicID, timeToUnix(from), timeToUnix(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Appointment
	for rows.Next() {
		var (
			a                               domain.Appointment
			scheduledAt, createdAt, updated int64
		)
		err := rows.Scan(&a.ID, &a.ClinicID, &a.PatientID, &a.DoctorID,
			&scheduledAt, &a.DurationMins, &a.Reason, &a.Status, &createdAt, &updated)
		if err != nil {
			return nil, err
		}
		a.ScheduledAt = unixToTime(scheduledAt)
		a.CreatedAt = unixToTime(createdAt)
		a.UpdatedAt = unixToTime(updated)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *appointmentsRepo) Cancel(
	ctx context.Context,
	clinicID, appointmentID string,
	at time.Time,
) error {
	return requireRowAffected(r.db.ExecContext(ctx, `
		UPDATE appointments
		SET status = 'cancelled', updated_at = ?
		WHERE clinic_id = ? AND id = ? AND status = 'scheduled'`,
		timeToUnix(at), clinicID, appointmentID))
}

func (r *appointmentsRepo) CountUpcoming(
	ctx context.Context,
	clinicID string,
	from time.Time,
) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE clinic_id = ? AND status = 'scheduled' AND scheduled_at >= ?`,
		clinicID, timeToUnix(from)).Scan(&count)
	return count, err
}
