package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/internal/clinic/store"
	"github.com/openclinic/clinicd/pkg/httpx"
	"github.com/openclinic/clinicd/pkg/jwtx"
	"github.com/openclinic/clinicd/pkg/slogx"

	_ "github.com/openclinic/clinicd/api/clinic" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	OnboardingService  *service.OnboardingService
	BootstrapService   *service.BootstrapService
	ClinicService      *service.ClinicService
	MembershipService  *service.MembershipService
	PatientService     *service.PatientService
	VisitService       *service.VisitService
	AppointmentService *service.AppointmentService
	FollowUpService    *service.FollowUpService
	AuditService       *service.AuditService
	DashboardService   *service.DashboardService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOnboarding()
	r.registerClinic()
	r.registerStaff()
	r.registerPatients()
	r.registerAppointments()
	r.registerFollowUps()
	r.registerAudit()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Clinic Service API
//	@version		0.1.0
//	@description	Multi-tenant clinic management service. Clinics onboard staff through
//	@description	single-use registration codes: clinic codes found a new clinic, doctor
//	@description	codes join a doctor to an existing one.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token from the identity provider. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOnboarding() {
	issueHandler := &CodeIssueHandler{
		OnboardingService: r.OnboardingService,
		Resolver:          r.resolver(),
	}
	redeemHandler := &CodeRedeemHandler{OnboardingService: r.OnboardingService}
	registerHandler := &ClinicRegisterHandler{OnboardingService: r.OnboardingService}
	membershipHandler := &MembershipHandler{OnboardingService: r.OnboardingService}

	// POST /codes/issue - moderate rate limit by user (admin operation)
	r.Mux.Handle("POST /v1/codes/issue",
		httpx.Chain(issueHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /codes/redeem - strict rate limit; this is the endpoint an
	// attacker would use to enumerate code values.
	r.Mux.Handle("POST /v1/codes/redeem",
		httpx.Chain(redeemHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /clinics/register - strict rate limit, same enumeration surface
	r.Mux.Handle("POST /v1/clinics/register",
		httpx.Chain(registerHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /membership - lenient, it is the first call every client makes
	r.Mux.Handle("GET /v1/membership",
		httpx.Chain(membershipHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerClinic() {
	h := &ClinicHandler{
		ClinicService: r.ClinicService,
		Resolver:      r.resolver(),
	}

	r.Mux.Handle("GET /v1/clinic",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/clinic/status",
		httpx.Chain(http.HandlerFunc(h.HandleSetStatus),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerStaff() {
	h := &StaffHandler{
		MembershipService: r.MembershipService,
		Resolver:          r.resolver(),
	}

	r.Mux.Handle("GET /v1/staff",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/staff/{id}/deactivate",
		httpx.Chain(http.HandlerFunc(h.HandleDeactivate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPatients() {
	patientHandler := &PatientsHandler{
		PatientService: r.PatientService,
		Resolver:       r.resolver(),
	}
	visitHandler := &VisitsHandler{
		VisitService: r.VisitService,
		Resolver:     r.resolver(),
	}

	r.Mux.Handle("POST /v1/patients",
		httpx.Chain(http.HandlerFunc(patientHandler.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/patients",
		httpx.Chain(http.HandlerFunc(patientHandler.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/patients/{id}",
		httpx.Chain(http.HandlerFunc(patientHandler.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/patients/{id}/visits",
		httpx.Chain(http.HandlerFunc(visitHandler.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/patients/{id}/visits",
		httpx.Chain(http.HandlerFunc(visitHandler.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAppointments() {
	h := &AppointmentsHandler{
		AppointmentService: r.AppointmentService,
		Resolver:           r.resolver(),
	}

	r.Mux.Handle("POST /v1/appointments",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/appointments",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/appointments/{id}/cancel",
		httpx.Chain(http.HandlerFunc(h.HandleCancel),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerFollowUps() {
	h := &FollowUpsHandler{
		FollowUpService: r.FollowUpService,
		Resolver:        r.resolver(),
	}

	r.Mux.Handle("POST /v1/followups",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/followups/due",
		httpx.Chain(http.HandlerFunc(h.HandleListDue),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/followups/{id}/complete",
		httpx.Chain(http.HandlerFunc(h.HandleComplete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAudit() {
	auditHandler := &AuditHandler{
		AuditService: r.AuditService,
		Resolver:     r.resolver(),
	}
	dashboardHandler := &DashboardHandler{
		DashboardService: r.DashboardService,
		Resolver:         r.resolver(),
	}

	r.Mux.Handle("GET /v1/audit",
		httpx.Chain(auditHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/dashboard",
		httpx.Chain(dashboardHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	bootstrapHandler := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) resolver() *PrincipalResolver {
	return &PrincipalResolver{Onboarding: r.OnboardingService}
}
