package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
)

type membershipsRepo struct {
	db dbtx
}

const membershipColumns = `id, clinic_id, user_id, role, invitation_code, is_active, joined_at, updated_at`

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinic_staff_memberships
			(id, clinic_id, user_id, role, invitation_code, is_active, joined_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ClinicID, m.UserID, m.Role, mapStringNull(m.InvitationCode),
		m.Active, timeToUnix(m.JoinedAt), timeToUnix(m.UpdatedAt))
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembershipByID(
	ctx context.Context,
	id string,
) (domain.Membership, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+membershipColumns+`
		FROM clinic_staff_memberships
		WHERE id = ?`, id)
	return scanMembership(row)
}

func (r *membershipsRepo) GetActiveByUser(
	ctx context.Context,
	userID string,
) (domain.Membership, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+membershipColumns+`
		FROM clinic_staff_memberships
		WHERE user_id = ? AND is_active = 1`, userID)
	return scanMembership(row)
}

func (r *membershipsRepo) ListByClinic(
	ctx context.Context,
	clinicID string,
) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+membershipColumns+`
		FROM clinic_staff_memberships
		WHERE clinic_id = ?
		ORDER BY joined_at DESC, id DESC`, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		m, err := scanMembershipRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) Deactivate(ctx context.Context, membershipID string, at time.Time) error {
	return requireRowAffected(r.db.ExecContext(ctx, `
		UPDATE clinic_staff_memberships
		SET is_active = 0, updated_at = ?
		WHERE id = ? AND is_active = 1`,
		timeToUnix(at), membershipID))
}

func scanMembership(row *sql.Row) (domain.Membership, error) {
	var (
		m                 domain.Membership
		invitationCode    sql.NullString
		joinedAt, updated int64
	)
	err := row.Scan(&m.ID, &m.ClinicID, &m.UserID, &m.Role, &invitationCode,
		&m.Active, &joinedAt, &updated)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	m.InvitationCode = mapNullString(invitationCode)
	m.JoinedAt = unixToTime(joinedAt)
	m.UpdatedAt = unixToTime(updated)
	return m, nil
}

func scanMembershipRows(rows *sql.Rows) (domain.Membership, error) {
	var (
		m                 domain.Membership
		invitationCode    sql.NullString
		joinedAt, updated int64
	)
	err := rows.Scan(&m.ID, &m.ClinicID, &m.UserID, &m.Role, &invitationCode,
		&m.Active, &joinedAt, &updated)
	if err != nil {
		return domain.Membership{}, err
	}
	m.InvitationCode = mapNullString(invitationCode)
	m.JoinedAt = unixToTime(joinedAt)
	m.UpdatedAt = unixToTime(updated)
	return m, nil
}
