package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
	"github.com/aussiebroadwan/taxrefund/pkg/slogx"

	_ "github.com/aussiebroadwan/taxrefund/api/bff" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits groups the limiter profiles used by the router.
type RateLimits struct {
	Login  httpx.RateLimitConfig
	API    httpx.RateLimitConfig
	Public httpx.RateLimitConfig
}

// DefaultRateLimits are the package httpx profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{Login: httpx.LoginLimit, API: httpx.APILimit, Public: httpx.PublicLimit}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       RateLimits

	store               store.Store
	AuthService         *service.AuthService
	SessionService      *service.SessionService
	UserService         *service.UserService
	DashboardService    *service.DashboardService
	TaxFileService      *service.TaxFileService
	RefundService       *service.RefundService
	RefundStatusService *service.RefundStatusService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	sessions *service.SessionService,
	allowedOrigins []string,
	limits RateLimits,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		logger:         logger,
		limits:         limits,
		store:          st,
		SessionService: sessions,
	}

	// Request logging runs first so every later layer logs with the request id.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(allowedOrigins),
		httpx.SessionMiddleware(sessions),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerDashboard()
	r.registerTaxFiles()
	r.registerRefunds()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tax Refund BFF API
//	@version		0.1.0
//	@description	Backend-for-frontend for the tax filing and refund tracking UI. Reads and writes go to the tax-file record service; only credentials and login sessions are stored locally.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from /api/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:    r.AuthService,
		SessionService: r.SessionService,
	}

	// Credential checks are limited per IP to slow down guessing.
	r.Mux.Handle("POST /api/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.limits.Login),
		),
	)

	r.Mux.Handle("POST /api/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RequireSession,
			httpx.RateLimitByUser(r.limits.API),
		),
	)
	r.Mux.Handle("GET /api/session",
		httpx.Chain(http.HandlerFunc(h.HandleSession),
			httpx.RequireSession,
			httpx.RateLimitByUser(r.limits.API),
		),
	)
}

func (r *Router) registerDashboard() {
	h := &UserDetailsHandler{DashboardService: r.DashboardService}

	r.Mux.Handle("GET /api/user-details",
		httpx.Chain(h, httpx.RateLimitByUser(r.limits.API)),
	)
}

func (r *Router) registerTaxFiles() {
	h := &TaxFileHandler{TaxFileService: r.TaxFileService}

	r.Mux.Handle("POST /api/tax-file",
		httpx.Chain(h, httpx.RateLimitByUser(r.limits.API)),
	)
}

func (r *Router) registerRefunds() {
	h := &RefundHandler{RefundService: r.RefundService}

	r.Mux.Handle("GET /api/refund",
		httpx.Chain(http.HandlerFunc(h.HandleGet), httpx.RateLimitByUser(r.limits.API)),
	)
	r.Mux.Handle("POST /api/refund-event",
		httpx.Chain(http.HandlerFunc(h.HandleEvent), httpx.RateLimitByUser(r.limits.API)),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService:         r.UserService,
		RefundStatusService: r.RefundStatusService,
	}

	r.Mux.Handle("GET /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleList), httpx.RateLimitByUser(r.limits.API)),
	)
	r.Mux.Handle("POST /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate), httpx.RateLimitByIP(r.limits.Login)),
	)

	// Fans out one upstream call per user.
	r.Mux.Handle("GET /api/users/refund-status",
		httpx.Chain(http.HandlerFunc(h.HandleRefundStatus), httpx.RateLimitByUser(r.limits.API)),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}
