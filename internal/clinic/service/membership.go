package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/store"
	"github.com/openclinic/clinicd/pkg/idx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

var (
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrCannotDeactivateSelf = errors.New("cannot deactivate own membership")
)

// MembershipService administers clinic staff. All operations are
// scoped to the principal's clinic; admin checks live here rather than
// in the handlers so every caller gets them.
type MembershipService struct {
	Store store.Store
}

// ListStaff returns the clinic's memberships, newest first. Admin only.
func (s *MembershipService) ListStaff(
	ctx context.Context,
	p domain.Principal,
) ([]domain.Membership, error) {
	if !p.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return s.Store.Memberships().ListByClinic(ctx, p.ClinicID)
}

// Deactivate retires a membership. Admin only, never the caller's own
// row; a clinic must not be able to lock itself out by accident.
func (s *MembershipService) Deactivate(
	ctx context.Context,
	p domain.Principal,
	membershipID string,
) error {
	log := slogx.FromContext(ctx)

	if !p.IsAdmin() {
		log.Warn("non-admin attempted membership deactivation",
			slog.String("user_id", p.UserID),
		)
		return ErrNotAdmin
	}

	m, err := s.Store.Memberships().GetMembershipByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMembershipNotFound
		}
		log.Error("failed to fetch membership", slog.Any("error", err))
		return err
	}

	// Cross-clinic ids look like missing ids from the outside.
	if m.ClinicID != p.ClinicID {
		log.Warn("attempted to deactivate membership in another clinic",
			slog.String("membership_id", membershipID),
			slog.String("actor_id", p.UserID),
		)
		return ErrMembershipNotFound
	}
	if m.UserID == p.UserID {
		log.Warn("admin attempted to deactivate own membership",
			slog.String("user_id", p.UserID),
		)
		return ErrCannotDeactivateSelf
	}

	now := time.Now().UTC()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Memberships().Deactivate(ctx, membershipID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Already inactive.
				return ErrMembershipNotFound
			}
			return err
		}
		return tx.AuditLog().Append(ctx, domain.AuditEntry{
			ID:          idx.New().String(),
			ClinicID:    p.ClinicID,
			ActorID:     p.UserID,
			Action:      domain.AuditMembershipDeactivated,
			SubjectKind: "membership",
			SubjectID:   membershipID,
			Detail:      m.UserID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return err
		}
		log.Error("failed to deactivate membership",
			slog.String("membership_id", membershipID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("membership deactivated",
		slog.String("membership_id", membershipID),
		slog.String("member_user_id", m.UserID),
		slog.String("actor_id", p.UserID),
	)
	return nil
}
