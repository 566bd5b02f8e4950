package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/store"
	"github.com/openclinic/clinicd/internal/clinic/store/drivers/sqlite"
	"github.com/openclinic/clinicd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedClinic(t *testing.T, st store.Store, status domain.ClinicStatus) domain.Clinic {
	t.Helper()

	now := time.Now().UTC()
	clinic := domain.Clinic{
		ID:        idx.New().String(),
		Name:      "Northside Family Practice",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Clinics().CreateClinic(context.Background(), clinic))
	return clinic
}

func TestIssueCode(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &OnboardingService{Store: st}
	clinic := seedClinic(t, st, domain.ClinicActive)

	t.Run("doctor code for active clinic", func(t *testing.T) {
		code, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, 7, "admin-1")
		require.NoError(t, err)
		require.Len(t, code.Code, 8)
		require.Equal(t, domain.CodeTypeDoctor, code.Type)
		require.Equal(t, clinic.ID, code.ClinicID)
		require.NotNil(t, code.ExpiresAt)
		require.WithinDuration(t, time.Now().AddDate(0, 0, 7), *code.ExpiresAt, time.Minute)
	})

	t.Run("zero expiry means no expiry", func(t *testing.T) {
		code, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, 0, "admin-1")
		require.NoError(t, err)
		require.Nil(t, code.ExpiresAt)
		require.False(t, code.Expired(time.Now().AddDate(10, 0, 0)))
	})

	t.Run("doctor code requires a clinic", func(t *testing.T) {
		_, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, "", 7, "admin-1")
		require.ErrorIs(t, err, ErrInvalidClinic)
	})

	t.Run("doctor code requires an existing clinic", func(t *testing.T) {
		_, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, idx.New().String(), 7, "admin-1")
		require.ErrorIs(t, err, ErrInvalidClinic)
	})

	t.Run("suspended clinic cannot grow", func(t *testing.T) {
		suspended := seedClinic(t, st, domain.ClinicSuspended)
		_, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, suspended.ID, 7, "admin-1")
		require.ErrorIs(t, err, ErrInvalidClinic)
	})

	t.Run("clinic code must not name a clinic", func(t *testing.T) {
		_, err := svc.IssueCode(ctx, domain.CodeTypeClinic, clinic.ID, 7, "bootstrap")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("negative expiry rejected", func(t *testing.T) {
		_, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, -1, "admin-1")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestRedeemCode(t *testing.T) {
	ctx := context.Background()

	t.Run("joins the clinic and consumes the code", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}
		clinic := seedClinic(t, st, domain.ClinicActive)

		code, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, 7, "admin-1")
		require.NoError(t, err)

		res, err := svc.RedeemCode(ctx, "doctor-1", code.Code)
		require.NoError(t, err)
		require.Equal(t, clinic.ID, res.Clinic.ID)
		require.Equal(t, clinic.Name, res.Clinic.Name)
		require.Equal(t, domain.RoleDoctor, res.Membership.Role)
		require.Equal(t, code.Code, res.Membership.InvitationCode)
		require.True(t, res.Membership.Active)

		m, err := svc.ActiveMembership(ctx, "doctor-1")
		require.NoError(t, err)
		require.Equal(t, clinic.ID, m.ClinicID)

		// Consumed: the same code no longer resolves.
		_, err = st.RegistrationCodes().GetUnusedByCode(ctx, code.Code)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("codes are single use", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}
		clinic := seedClinic(t, st, domain.ClinicActive)

		code, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, 7, "admin-1")
		require.NoError(t, err)

		_, err = svc.RedeemCode(ctx, "doctor-1", code.Code)
		require.NoError(t, err)

		_, err = svc.RedeemCode(ctx, "doctor-2", code.Code)
		require.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("presented codes are normalized", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}
		clinic := seedClinic(t, st, domain.ClinicActive)

		code, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, 7, "admin-1")
		require.NoError(t, err)

		lower := "  " + strings.ToLower(code.Code) + "\n"
		res, err := svc.RedeemCode(ctx, "doctor-1", lower)
		require.NoError(t, err)
		require.Equal(t, clinic.ID, res.Clinic.ID)
	})

	t.Run("unknown code", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}
		seedClinic(t, st, domain.ClinicActive)

		_, err := svc.RedeemCode(ctx, "doctor-1", "NOPE1234")
		require.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("expired code", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}
		clinic := seedClinic(t, st, domain.ClinicActive)

		// Issue with an expiry already in the past, straight into the store.
		past := time.Now().UTC().Add(-time.Hour)
		now := time.Now().UTC()
		expired := domain.RegistrationCode{
			ID:        idx.New().String(),
			Code:      "EXPIRED9",
			Type:      domain.CodeTypeDoctor,
			ClinicID:  clinic.ID,
			ExpiresAt: &past,
			CreatedBy: "admin-1",
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, st.RegistrationCodes().CreateCode(ctx, expired))

		_, err := svc.RedeemCode(ctx, "doctor-1", "EXPIRED9")
		require.ErrorIs(t, err, ErrCodeExpired)

		// Expired codes are never swept; they just keep refusing.
		_, err = st.RegistrationCodes().GetUnusedByCode(ctx, "EXPIRED9")
		require.NoError(t, err)
	})

	t.Run("clinic-type codes do not redeem", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}
		seedClinic(t, st, domain.ClinicActive)

		code, err := svc.IssueCode(ctx, domain.CodeTypeClinic, "", 7, "bootstrap")
		require.NoError(t, err)

		_, err = svc.RedeemCode(ctx, "doctor-1", code.Code)
		require.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("existing members cannot redeem", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}
		clinic := seedClinic(t, st, domain.ClinicActive)

		first, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, 7, "admin-1")
		require.NoError(t, err)
		second, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, 7, "admin-1")
		require.NoError(t, err)

		_, err = svc.RedeemCode(ctx, "doctor-1", first.Code)
		require.NoError(t, err)

		_, err = svc.RedeemCode(ctx, "doctor-1", second.Code)
		require.ErrorIs(t, err, ErrAlreadyMember)

		// The second code survives intact.
		_, err = st.RegistrationCodes().GetUnusedByCode(ctx, second.Code)
		require.NoError(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}

		_, err := svc.RedeemCode(ctx, "doctor-1", "   ")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

// newFileStore opens a store backed by a file in a per-test temp
// directory, the same DSN shape the application uses. In-memory SQLite
// is private to each pooled connection, so tests that need two
// goroutines to see the same rows must go through a file.
func newFileStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL",
		filepath.Join(t.TempDir(), "clinic.db"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// claimAheadStore delegates everything to the wrapped store, except that
// a rival claims the named code just before the first transaction opens.
// That reproduces the window between the unused-code lookup and the
// conditional claim inside the transaction.
type claimAheadStore struct {
	store.Store
	codeID string
	rival  string
	once   sync.Once
}

func (s *claimAheadStore) WithTx(ctx context.Context, fn func(store.Tx) error) error {
	var claimErr error
	s.once.Do(func() {
		claimErr = s.Store.WithTx(ctx, func(tx store.Tx) error {
			return tx.RegistrationCodes().ClaimCode(ctx, s.codeID, s.rival, time.Now().UTC())
		})
	})
	if claimErr != nil {
		return claimErr
	}
	return s.Store.WithTx(ctx, fn)
}

func TestRedeemCodeConcurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("two redeemers, one seat", func(t *testing.T) {
		st := newFileStore(t)
		svc := &OnboardingService{Store: st}
		clinic := seedClinic(t, st, domain.ClinicActive)

		code, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, 7, "admin-1")
		require.NoError(t, err)

		start := make(chan struct{})
		errs := make(chan error, 2)
		for _, userID := range []string{"doctor-1", "doctor-2"} {
			go func() {
				<-start
				_, err := svc.RedeemCode(ctx, userID, code.Code)
				errs <- err
			}()
		}
		close(start)

		var joined, refused int
		for i := 0; i < 2; i++ {
			if err := <-errs; err != nil {
				require.ErrorIs(t, err, ErrInvalidCode)
				refused++
			} else {
				joined++
			}
		}
		require.Equal(t, 1, joined)
		require.Equal(t, 1, refused)

		// Exactly one seat was handed out, and the code is spent.
		members, err := st.Memberships().ListByClinic(ctx, clinic.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)

		_, err = st.RegistrationCodes().GetUnusedByCode(ctx, code.Code)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("claim lost between lookup and transaction", func(t *testing.T) {
		st := newTestStore(t)
		base := &OnboardingService{Store: st}
		clinic := seedClinic(t, st, domain.ClinicActive)

		code, err := base.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, 7, "admin-1")
		require.NoError(t, err)

		svc := &OnboardingService{Store: &claimAheadStore{
			Store:  st,
			codeID: code.ID,
			rival:  "doctor-2",
		}}

		_, err = svc.RedeemCode(ctx, "doctor-1", code.Code)
		require.ErrorIs(t, err, ErrInvalidCode)

		// The failed claim left the loser without a seat.
		_, err = base.ActiveMembership(ctx, "doctor-1")
		require.ErrorIs(t, err, ErrNoMembership)
	})
}

func TestRegisterClinic(t *testing.T) {
	ctx := context.Background()

	t.Run("founds the clinic with an admin membership", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}

		code, err := svc.IssueCode(ctx, domain.CodeTypeClinic, "", 7, "bootstrap")
		require.NoError(t, err)

		res, err := svc.RegisterClinic(ctx, "founder-1", code.Code, "Westgate Clinic")
		require.NoError(t, err)
		require.Equal(t, "Westgate Clinic", res.Clinic.Name)
		require.Equal(t, domain.ClinicActive, res.Clinic.Status)
		require.Equal(t, domain.RoleAdmin, res.Membership.Role)
		require.Equal(t, res.Clinic.ID, res.Membership.ClinicID)

		_, err = st.RegistrationCodes().GetUnusedByCode(ctx, code.Code)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("doctor codes do not register clinics", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}
		clinic := seedClinic(t, st, domain.ClinicActive)

		code, err := svc.IssueCode(ctx, domain.CodeTypeDoctor, clinic.ID, 7, "admin-1")
		require.NoError(t, err)

		_, err = svc.RegisterClinic(ctx, "founder-1", code.Code, "Westgate Clinic")
		require.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("claim lost between lookup and transaction", func(t *testing.T) {
		st := newTestStore(t)
		base := &OnboardingService{Store: st}

		code, err := base.IssueCode(ctx, domain.CodeTypeClinic, "", 7, "bootstrap")
		require.NoError(t, err)

		svc := &OnboardingService{Store: &claimAheadStore{
			Store:  st,
			codeID: code.ID,
			rival:  "founder-2",
		}}

		_, err = svc.RegisterClinic(ctx, "founder-1", code.Code, "Westgate Clinic")
		require.ErrorIs(t, err, ErrInvalidCode)

		// The failed claim aborted the registration outright.
		_, err = base.ActiveMembership(ctx, "founder-1")
		require.ErrorIs(t, err, ErrNoMembership)
	})

	t.Run("existing members cannot found clinics", func(t *testing.T) {
		st := newTestStore(t)
		svc := &OnboardingService{Store: st}

		first, err := svc.IssueCode(ctx, domain.CodeTypeClinic, "", 7, "bootstrap")
		require.NoError(t, err)
		_, err = svc.RegisterClinic(ctx, "founder-1", first.Code, "Westgate Clinic")
		require.NoError(t, err)

		second, err := svc.IssueCode(ctx, domain.CodeTypeClinic, "", 7, "bootstrap")
		require.NoError(t, err)
		_, err = svc.RegisterClinic(ctx, "founder-1", second.Code, "Second Clinic")
		require.ErrorIs(t, err, ErrAlreadyMember)
	})
}

func TestActiveMembership(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &OnboardingService{Store: st}

	_, err := svc.ActiveMembership(ctx, "nobody")
	require.ErrorIs(t, err, ErrNoMembership)
}
