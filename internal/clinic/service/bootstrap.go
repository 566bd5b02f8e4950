package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/store"
	"github.com/openclinic/clinicd/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already has clinics")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService mints the very first clinic-type registration code
// on an empty system. Once any clinic exists, onboarding is code-driven
// and bootstrap refuses to run again.
type BootstrapService struct {
	Store      store.Store
	Onboarding *OnboardingService
	Token      string // pre-configured bootstrap token
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Clinics().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap validates the shared token and mints a clinic code with the
// given expiry. The returned code is shown exactly once.
func (s *BootstrapService) Bootstrap(
	ctx context.Context,
	token string,
	expiryDays int,
) (domain.RegistrationCode, error) {
	l := slogx.FromContext(ctx)

	// 1. Refuse on a populated system.
	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		l.Error("failed to check bootstrap state", slog.Any("error", err))
		return domain.RegistrationCode{}, err
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-populated system")
		return domain.RegistrationCode{}, ErrBootstrapAlready
	}

	// 2. Validate the provided token.
	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.RegistrationCode{}, ErrBootstrapUnauthorized
	}

	// 3. Mint the founding clinic code.
	code, err := s.Onboarding.IssueCode(ctx, domain.CodeTypeClinic, "", expiryDays, "bootstrap")
	if err != nil {
		return domain.RegistrationCode{}, err
	}

	l.Info("system bootstrapped with founding clinic code",
		slog.String("code_id", code.ID),
	)
	return code, nil
}
