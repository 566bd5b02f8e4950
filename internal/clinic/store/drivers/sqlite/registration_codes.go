package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
)

type registrationCodesRepo struct {
	db dbtx
}

func (r *registrationCodesRepo) CreateCode(ctx context.Context, c domain.RegistrationCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO registration_codes
			(id, code, type, clinic_id, expires_at, used, used_by, used_at, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, NULL, NULL, ?, ?, ?)`,
		c.ID, c.Code, c.Type, mapStringNull(c.ClinicID), timePtrToNullUnix(c.ExpiresAt),
		c.CreatedBy, timeToUnix(c.CreatedAt), timeToUnix(c.UpdatedAt))
	return mapConstraint(err)
}

func (r *registrationCodesRepo) GetUnusedByCode(
	ctx context.Context,
	code string,
) (domain.RegistrationCode, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, code, type, clinic_id, expires_at, used, used_by, used_at, created_by, created_at, updated_at
		FROM registration_codes
		WHERE code = ? AND used = 0`, code)
	return scanCode(row)
}

// ClaimCode is the single-use gate: the update only touches a row that
// is still unused, so of any number of concurrent redeemers exactly one
// sees a row affected.
func (r *registrationCodesRepo) ClaimCode(
	ctx context.Context,
	codeID, usedBy string,
	usedAt time.Time,
) error {
	return requireRowAffected(r.db.ExecContext(ctx, `
		UPDATE registration_codes
		SET used = 1, used_by = ?, used_at = ?, updated_at = ?
		WHERE id = ? AND used = 0`,
		usedBy, timeToUnix(usedAt), timeToUnix(usedAt), codeID))
}

func scanCode(row *sql.Row) (domain.RegistrationCode, error) {
	var (
		c                  domain.RegistrationCode
		clinicID, usedBy   sql.NullString
		expiresAt, usedAt  sql.NullInt64
		createdAt, updated int64
	)
	err := row.Scan(&c.ID, &c.Code, &c.Type, &clinicID, &expiresAt,
		&c.Used, &usedBy, &usedAt, &c.CreatedBy, &createdAt, &updated)
	if err != nil {
		return domain.RegistrationCode{}, mapNotFound(err)
	}

	c.ClinicID = mapNullString(clinicID)
	c.UsedBy = mapNullString(usedBy)
	c.ExpiresAt = nullUnixToTimePtr(expiresAt)
	c.UsedAt = nullUnixToTimePtr(usedAt)
	c.CreatedAt = unixToTime(createdAt)
	c.UpdatedAt = unixToTime(updated)
	return c, nil
}
