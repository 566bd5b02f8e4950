package service

import (
	"context"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/store"
)

const defaultAuditLimit = 100

// AuditService reads the clinic's audit trail. Writes happen inside
// the mutating services' transactions, never here.
type AuditService struct {
	Store store.Store
}

// List returns the clinic's newest audit entries. Admin only.
func (s *AuditService) List(
	ctx context.Context,
	p domain.Principal,
	limit int,
) ([]domain.AuditEntry, error) {
	if !p.IsAdmin() {
		return nil, ErrNotAdmin
	}
	if limit <= 0 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}
	return s.Store.AuditLog().ListByClinic(ctx, p.ClinicID, limit)
}
