package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/store"
	"github.com/openclinic/clinicd/pkg/cryptox"
	"github.com/openclinic/clinicd/pkg/idx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidClinic  = errors.New("clinic not found or not active")
	ErrInvalidCode    = errors.New("registration code not found or already used")
	ErrCodeExpired    = errors.New("registration code has expired")
	ErrCodeNotBound   = errors.New("registration code is not bound to a clinic")
	ErrAlreadyMember  = errors.New("user already belongs to a clinic")
	ErrNoMembership   = errors.New("user has no active membership")
)

// codeMintAttempts bounds the regenerate-on-collision loop. Collisions
// against the unused-code unique index are astronomically rare at 8
// chars over a 31-char alphabet; hitting the bound means something else
// is wrong.
const codeMintAttempts = 5

// OnboardingService mints registration codes and redeems them into
// clinic memberships. Redemption is the only way a doctor joins a
// clinic; registration is the only way a clinic comes to exist.
type OnboardingService struct {
	Store store.Store
}

// JoinResult is what a successful redemption or registration hands back
// to the caller: the membership created and the clinic it belongs to.
type JoinResult struct {
	Membership domain.Membership
	Clinic     domain.Clinic
}

// IssueCode mints a registration code. Doctor codes must name an
// existing active clinic; clinic codes must not name one. expiryDays of
// zero means the code never expires.
func (s *OnboardingService) IssueCode(
	ctx context.Context,
	codeType domain.CodeType,
	clinicID string,
	expiryDays int,
	createdBy string,
) (domain.RegistrationCode, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the type/clinic pairing.
	switch codeType {
	case domain.CodeTypeDoctor:
		if clinicID == "" {
			log.Warn("attempted to issue doctor code without a clinic")
			return domain.RegistrationCode{}, ErrInvalidClinic
		}
	case domain.CodeTypeClinic:
		if clinicID != "" {
			log.Warn("attempted to issue clinic code bound to a clinic",
				slog.String("clinic_id", clinicID),
			)
			return domain.RegistrationCode{}, ErrInvalidRequest
		}
	default:
		log.Warn("attempted to issue code of unknown type",
			slog.String("code_type", string(codeType)),
		)
		return domain.RegistrationCode{}, ErrInvalidRequest
	}

	if expiryDays < 0 {
		log.Warn("attempted to issue code with negative expiry",
			slog.Int("expiry_days", expiryDays),
		)
		return domain.RegistrationCode{}, ErrInvalidRequest
	}

	// 2. Doctor codes only attach to active clinics. A suspended clinic
	// keeps its existing staff but cannot grow.
	if codeType == domain.CodeTypeDoctor {
		clinic, err := s.Store.Clinics().GetClinicByID(ctx, clinicID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("attempted to issue code for non-existent clinic",
					slog.String("clinic_id", clinicID),
				)
				return domain.RegistrationCode{}, ErrInvalidClinic
			}
			log.Error("failed to fetch clinic", slog.Any("error", err))
			return domain.RegistrationCode{}, err
		}
		if clinic.Status != domain.ClinicActive {
			log.Warn("attempted to issue code for inactive clinic",
				slog.String("clinic_id", clinicID),
				slog.String("status", string(clinic.Status)),
			)
			return domain.RegistrationCode{}, ErrInvalidClinic
		}
	}

	now := time.Now().UTC()
	var expiresAt *time.Time
	if expiryDays > 0 {
		t := now.AddDate(0, 0, expiryDays)
		expiresAt = &t
	}

	// 3. Generate and store; regenerate on a value collision with an
	// unused code. The partial unique index is the arbiter.
	var code domain.RegistrationCode
	for attempt := 0; ; attempt++ {
		value, err := cryptox.GenerateCode(cryptox.DefaultCodeLength)
		if err != nil {
			log.Error("failed to generate code value", slog.Any("error", err))
			return domain.RegistrationCode{}, err
		}

		code = domain.RegistrationCode{
			ID:        idx.New().String(),
			Code:      value,
			Type:      codeType,
			ClinicID:  clinicID,
			ExpiresAt: expiresAt,
			CreatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.RegistrationCodes().CreateCode(ctx, code); err != nil {
				return err
			}
			return tx.AuditLog().Append(ctx, domain.AuditEntry{
				ID:          idx.New().String(),
				ClinicID:    clinicID,
				ActorID:     createdBy,
				Action:      domain.AuditCodeIssued,
				SubjectKind: "registration_code",
				SubjectID:   code.ID,
				Detail:      string(codeType),
				CreatedAt:   now,
			})
		})
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrAlreadyExists) && attempt < codeMintAttempts-1 {
			log.Debug("code value collision, regenerating",
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		log.Error("failed to create registration code",
			slog.String("code_id", code.ID),
			slog.Any("error", err),
		)
		return domain.RegistrationCode{}, err
	}

	log.Info("registration code issued",
		slog.String("code_id", code.ID),
		slog.String("code_type", string(codeType)),
		slog.String("clinic_id", clinicID),
		slog.String("created_by", createdBy),
		slog.Int("expiry_days", expiryDays),
	)

	return code, nil
}

// RedeemCode consumes a doctor-type registration code and joins the
// user to the clinic it was minted for. The membership insert and the
// code claim happen in one transaction; the conditional claim is what
// makes a concurrent double redemption lose.
func (s *OnboardingService) RedeemCode(
	ctx context.Context,
	userID string,
	presented string,
) (JoinResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	presented = domain.NormalizeCode(presented)
	if userID == "" || presented == "" {
		log.Warn("code redemption missing required fields")
		return JoinResult{}, ErrInvalidRequest
	}

	// 2. A user holds at most one active membership.
	_, err := s.Store.Memberships().GetActiveByUser(ctx, userID)
	if err == nil {
		log.Warn("code redemption attempted by existing member",
			slog.String("user_id", userID),
		)
		return JoinResult{}, ErrAlreadyMember
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check existing membership", slog.Any("error", err))
		return JoinResult{}, err
	}

	// 3. Look up the unused code by its normalized value.
	code, err := s.Store.RegistrationCodes().GetUnusedByCode(ctx, presented)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("code redemption attempted with unknown or used code",
				slog.String("user_id", userID),
			)
			return JoinResult{}, ErrInvalidCode
		}
		log.Error("failed to fetch registration code", slog.Any("error", err))
		return JoinResult{}, err
	}

	// 4. Only doctor codes join an existing clinic.
	if code.Type != domain.CodeTypeDoctor {
		log.Warn("code redemption attempted with non-doctor code",
			slog.String("code_id", code.ID),
			slog.String("code_type", string(code.Type)),
		)
		return JoinResult{}, ErrInvalidCode
	}

	// 5. Expiry is checked at redemption time; expired codes are never
	// swept, they just stop working.
	now := time.Now().UTC()
	if code.Expired(now) {
		log.Warn("code redemption attempted with expired code",
			slog.String("code_id", code.ID),
		)
		return JoinResult{}, ErrCodeExpired
	}

	// 6. Doctor codes always carry a clinic; a row without one is
	// corrupt, not merely invalid.
	if code.ClinicID == "" {
		log.Error("doctor code has no clinic bound",
			slog.String("code_id", code.ID),
		)
		return JoinResult{}, ErrCodeNotBound
	}

	clinic, err := s.Store.Clinics().GetClinicByID(ctx, code.ClinicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Error("doctor code bound to missing clinic",
				slog.String("code_id", code.ID),
				slog.String("clinic_id", code.ClinicID),
			)
			return JoinResult{}, ErrCodeNotBound
		}
		log.Error("failed to fetch clinic", slog.Any("error", err))
		return JoinResult{}, err
	}

	// 7. Claim the code and create the membership atomically. Both
	// writes are conditional at the schema level: the claim on used = 0,
	// the membership on the one-active-per-user partial index. Either
	// failing rolls back the whole join.
	membership := domain.Membership{
		ID:             idx.New().String(),
		ClinicID:       code.ClinicID,
		UserID:         userID,
		Role:           domain.RoleDoctor,
		InvitationCode: code.Code,
		Active:         true,
		JoinedAt:       now,
		UpdatedAt:      now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RegistrationCodes().ClaimCode(ctx, code.ID, userID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Lost the race to a concurrent redemption.
				return ErrInvalidCode
			}
			return err
		}
		if err := tx.Memberships().CreateMembership(ctx, membership); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyMember
			}
			return err
		}
		return tx.AuditLog().Append(ctx, domain.AuditEntry{
			ID:          idx.New().String(),
			ClinicID:    code.ClinicID,
			ActorID:     userID,
			Action:      domain.AuditCodeRedeemed,
			SubjectKind: "membership",
			SubjectID:   membership.ID,
			Detail:      code.Code,
			CreatedAt:   now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCode) || errors.Is(err, ErrAlreadyMember) {
			log.Warn("code redemption lost to concurrent write",
				slog.String("code_id", code.ID),
				slog.String("user_id", userID),
			)
			return JoinResult{}, err
		}
		log.Error("failed to redeem registration code",
			slog.String("code_id", code.ID),
			slog.Any("error", err),
		)
		return JoinResult{}, err
	}

	log.Info("doctor joined clinic via registration code",
		slog.String("user_id", userID),
		slog.String("clinic_id", clinic.ID),
		slog.String("membership_id", membership.ID),
		slog.String("code_id", code.ID),
	)

	return JoinResult{Membership: membership, Clinic: clinic}, nil
}

// RegisterClinic consumes a clinic-type registration code, creates the
// clinic, and makes the caller its founding admin. Like redemption, the
// claim and the writes it authorises share one transaction.
func (s *OnboardingService) RegisterClinic(
	ctx context.Context,
	userID string,
	presented string,
	clinicName string,
) (JoinResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	presented = domain.NormalizeCode(presented)
	if userID == "" || presented == "" || clinicName == "" {
		log.Warn("clinic registration missing required fields")
		return JoinResult{}, ErrInvalidRequest
	}

	// 2. Founders are users too: one active membership at most.
	_, err := s.Store.Memberships().GetActiveByUser(ctx, userID)
	if err == nil {
		log.Warn("clinic registration attempted by existing member",
			slog.String("user_id", userID),
		)
		return JoinResult{}, ErrAlreadyMember
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check existing membership", slog.Any("error", err))
		return JoinResult{}, err
	}

	// 3. Look up the unused code and require the clinic type.
	code, err := s.Store.RegistrationCodes().GetUnusedByCode(ctx, presented)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("clinic registration attempted with unknown or used code",
				slog.String("user_id", userID),
			)
			return JoinResult{}, ErrInvalidCode
		}
		log.Error("failed to fetch registration code", slog.Any("error", err))
		return JoinResult{}, err
	}
	if code.Type != domain.CodeTypeClinic {
		log.Warn("clinic registration attempted with non-clinic code",
			slog.String("code_id", code.ID),
			slog.String("code_type", string(code.Type)),
		)
		return JoinResult{}, ErrInvalidCode
	}

	now := time.Now().UTC()
	if code.Expired(now) {
		log.Warn("clinic registration attempted with expired code",
			slog.String("code_id", code.ID),
		)
		return JoinResult{}, ErrCodeExpired
	}

	// 4. Claim the code, create the clinic, seat the founder.
	clinic := domain.Clinic{
		ID:        idx.New().String(),
		Name:      clinicName,
		Status:    domain.ClinicActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	membership := domain.Membership{
		ID:             idx.New().String(),
		ClinicID:       clinic.ID,
		UserID:         userID,
		Role:           domain.RoleAdmin,
		InvitationCode: code.Code,
		Active:         true,
		JoinedAt:       now,
		UpdatedAt:      now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RegistrationCodes().ClaimCode(ctx, code.ID, userID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCode
			}
			return err
		}
		if err := tx.Clinics().CreateClinic(ctx, clinic); err != nil {
			return err
		}
		if err := tx.Memberships().CreateMembership(ctx, membership); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyMember
			}
			return err
		}
		return tx.AuditLog().Append(ctx, domain.AuditEntry{
			ID:          idx.New().String(),
			ClinicID:    clinic.ID,
			ActorID:     userID,
			Action:      domain.AuditClinicRegistered,
			SubjectKind: "clinic",
			SubjectID:   clinic.ID,
			Detail:      clinicName,
			CreatedAt:   now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCode) || errors.Is(err, ErrAlreadyMember) {
			log.Warn("clinic registration lost to concurrent write",
				slog.String("code_id", code.ID),
				slog.String("user_id", userID),
			)
			return JoinResult{}, err
		}
		log.Error("failed to register clinic",
			slog.String("code_id", code.ID),
			slog.Any("error", err),
		)
		return JoinResult{}, err
	}

	log.Info("clinic registered via registration code",
		slog.String("user_id", userID),
		slog.String("clinic_id", clinic.ID),
		slog.String("clinic_name", clinicName),
		slog.String("code_id", code.ID),
	)

	return JoinResult{Membership: membership, Clinic: clinic}, nil
}

// ActiveMembership returns the caller's active membership, or
// ErrNoMembership if they have none. This read is the basis of the
// per-request tenancy context.
func (s *OnboardingService) ActiveMembership(
	ctx context.Context,
	userID string,
) (domain.Membership, error) {
	m, err := s.Store.Memberships().GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrNoMembership
		}
		return domain.Membership{}, err
	}
	return m, nil
}
