package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/taxrefund/internal/bff/http"
	"github.com/aussiebroadwan/taxrefund/internal/bff/service"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store/drivers/postgres"
	"github.com/aussiebroadwan/taxrefund/internal/bff/store/drivers/sqlite"
	"github.com/aussiebroadwan/taxrefund/pkg/cryptox"
	"github.com/aussiebroadwan/taxrefund/pkg/httpx"
	"github.com/aussiebroadwan/taxrefund/pkg/jwtx"
	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application is the BFF process with all of its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	upstream *taxsdk.Client
	hasher   *cryptox.PasswordHasher
	signer   jwtx.Signer
	verifier jwtx.Verifier

	authService         *service.AuthService
	sessionService      *service.SessionService
	userService         *service.UserService
	dashboardService    *service.DashboardService
	taxFileService      *service.TaxFileService
	refundService       *service.RefundService
	refundStatusService *service.RefundStatusService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency initialised.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "taxrefund-bff",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}
	if err := app.initCrypto(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("bff starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"record_service", app.cfg.RecordServiceURL,
		"store", app.cfg.StoreDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down bff...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("bff stopped")
	return nil
}

// OpenStore opens the configured store and applies its migrations.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		db, err = postgres.NewStore(ctx, cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", cfg.DatabaseFile))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", cfg.StoreDriver, err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// NewHasher loads (or creates) the pepper file and returns the password hasher.
func NewHasher(cfg Config) (*cryptox.PasswordHasher, error) {
	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	return cryptox.NewPasswordHasher(pepper), nil
}

func (app *Application) initDatabase(ctx context.Context) error {
	db, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.StoreDriver)
	return nil
}

func (app *Application) initCrypto() error {
	hasher, err := NewHasher(app.cfg)
	if err != nil {
		return err
	}
	app.hasher = hasher

	secret := app.cfg.SessionSecret
	if secret == "" {
		secret, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		app.logger.Warn("SESSION_SECRET not set, using a random secret; sessions will not survive a restart")
	}

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	if err != nil {
		return fmt.Errorf("failed to create session signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(secret), jwtx.VerifyOptions{
		Issuer: app.cfg.SessionIssuer,
		Leeway: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create session verifier: %w", err)
	}
	app.signer, app.verifier = signer, verifier
	return nil
}

func (app *Application) initServices() {
	app.upstream = taxsdk.NewClient(app.cfg.RecordServiceURL,
		taxsdk.WithCallTimeout(app.cfg.UpstreamCallTimeout),
		taxsdk.WithUserAgent("taxrefund-bff/"+BuildVersion),
	)

	app.userService = &service.UserService{
		Upstream: app.upstream,
		Store:    app.db,
		Hasher:   app.hasher,
	}
	app.authService = &service.AuthService{
		Users:           app.userService,
		Store:           app.db,
		Hasher:          app.hasher,
		DefaultPassword: app.cfg.DefaultPassword,
	}
	if app.cfg.DefaultPassword != "" {
		app.logger.Warn("default password enabled for users without a stored credential")
	}

	app.sessionService = &service.SessionService{
		Store:    app.db,
		Signer:   app.signer,
		Verifier: app.verifier,
		Issuer:   app.cfg.SessionIssuer,
		TTL:      app.cfg.SessionTTL,
	}

	app.dashboardService = &service.DashboardService{
		Users:        app.userService,
		Upstream:     app.upstream,
		DefaultYears: app.defaultYears,
	}
	app.taxFileService = &service.TaxFileService{Upstream: app.upstream}
	app.refundService = &service.RefundService{Upstream: app.upstream}
	app.refundStatusService = &service.RefundStatusService{
		Upstream: app.upstream,
		Limit:    app.cfg.FanOutLimit,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.sessionService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// defaultYears is the dashboard's fallback year policy.
func (app *Application) defaultYears() []int {
	if len(app.cfg.TaxYears) > 0 {
		return slices.Clone(app.cfg.TaxYears)
	}
	return service.RecentYears(app.cfg.TaxYearWindow, time.Now())
}

func (app *Application) initHTTP() {
	limits := httpapi.RateLimits{
		Login:  httpx.ParseRateLimitFromEnv("LOGIN", httpx.LoginLimit),
		API:    httpx.ParseRateLimitFromEnv("API", httpx.APILimit),
		Public: httpx.ParseRateLimitFromEnv("PUBLIC", httpx.PublicLimit),
	}

	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.sessionService,
		app.cfg.AllowedOrigins,
		limits,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.DashboardService = app.dashboardService
	router.TaxFileService = app.taxFileService
	router.RefundService = app.refundService
	router.RefundStatusService = app.refundStatusService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
