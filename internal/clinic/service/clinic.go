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
	ErrNotAdmin      = errors.New("operation requires an admin membership")
	ErrInvalidStatus = errors.New("invalid clinic status")
)

// ClinicService reads and administers the caller's clinic.
type ClinicService struct {
	Store store.Store
}

// CurrentClinic returns the clinic the principal belongs to.
func (s *ClinicService) CurrentClinic(
	ctx context.Context,
	p domain.Principal,
) (domain.Clinic, error) {
	return s.Store.Clinics().GetClinicByID(ctx, p.ClinicID)
}

// SetStatus updates the clinic's status. Admin only.
func (s *ClinicService) SetStatus(
	ctx context.Context,
	p domain.Principal,
	status domain.ClinicStatus,
) (domain.Clinic, error) {
	log := slogx.FromContext(ctx)

	if !p.IsAdmin() {
		log.Warn("non-admin attempted clinic status change",
			slog.String("user_id", p.UserID),
		)
		return domain.Clinic{}, ErrNotAdmin
	}
	if !domain.ValidClinicStatus(status) {
		log.Warn("attempted to set unknown clinic status",
			slog.String("status", string(status)),
		)
		return domain.Clinic{}, ErrInvalidStatus
	}

	now := time.Now().UTC()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clinics().UpdateClinicStatus(ctx, p.ClinicID, status); err != nil {
			return err
		}
		return tx.AuditLog().Append(ctx, domain.AuditEntry{
			ID:          idx.New().String(),
			ClinicID:    p.ClinicID,
			ActorID:     p.UserID,
			Action:      domain.AuditClinicStatusChanged,
			SubjectKind: "clinic",
			SubjectID:   p.ClinicID,
			Detail:      string(status),
			CreatedAt:   now,
		})
	})
	if err != nil {
		log.Error("failed to update clinic status",
			slog.String("clinic_id", p.ClinicID),
			slog.Any("error", err),
		)
		return domain.Clinic{}, err
	}

	log.Info("clinic status changed",
		slog.String("clinic_id", p.ClinicID),
		slog.String("status", string(status)),
		slog.String("actor_id", p.UserID),
	)
	return s.Store.Clinics().GetClinicByID(ctx, p.ClinicID)
}
