package sqlite

import (
	"context"

	"github.com/openclinic/clinicd/internal/clinic/domain"
)

type clinicsRepo struct {
	db dbtx
}

func (r *clinicsRepo) GetClinicByID(ctx context.Context, id string) (domain.Clinic, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, status, created_at, updated_at
		FROM clinics
		WHERE id = ?`, id)

	var (
		c                  domain.Clinic
		createdAt, updated int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Status, &createdAt, &updated); err != nil {
		return domain.Clinic{}, mapNotFound(err)
	}
	c.CreatedAt = unixToTime(createdAt)
	c.UpdatedAt = unixToTime(updated)
	return c, nil
}

func (r *clinicsRepo) CreateClinic(ctx context.Context, c domain.Clinic) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinics (id, name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Status, timeToUnix(c.CreatedAt), timeToUnix(c.UpdatedAt))
	return mapConstraint(err)
}

func (r *clinicsRepo) UpdateClinicStatus(
	ctx context.Context,
	clinicID string,
	status domain.ClinicStatus,
) error {
	return requireRowAffected(r.db.ExecContext(ctx, `
		UPDATE clinics
		SET status = ?, updated_at = unixepoch()
		WHERE id = ?`, status, clinicID))
}

func (r *clinicsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clinics`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
