package service

import (
	"context"
	"testing"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("mints the founding clinic code", func(t *testing.T) {
		st := newTestStore(t)
		onboarding := &OnboardingService{Store: st}
		svc := &BootstrapService{Store: st, Onboarding: onboarding, Token: "secret"}

		code, err := svc.Bootstrap(ctx, "secret", 7)
		require.NoError(t, err)
		require.Equal(t, domain.CodeTypeClinic, code.Type)
		require.Empty(t, code.ClinicID)

		// The code founds a clinic as usual.
		_, err = onboarding.RegisterClinic(ctx, "founder-1", code.Code, "First Clinic")
		require.NoError(t, err)
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Onboarding: &OnboardingService{Store: st}, Token: "secret"}

		_, err := svc.Bootstrap(ctx, "guess", 7)
		require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	})

	t.Run("empty configured token always rejected", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Onboarding: &OnboardingService{Store: st}, Token: ""}

		_, err := svc.Bootstrap(ctx, "", 7)
		require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	})

	t.Run("refuses once a clinic exists", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, Onboarding: &OnboardingService{Store: st}, Token: "secret"}
		seedClinic(t, st, domain.ClinicActive)

		_, err := svc.Bootstrap(ctx, "secret", 7)
		require.ErrorIs(t, err, ErrBootstrapAlready)
	})
}
