package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/services"

	http_controllers "github.com/mrlokans/bookshelf/internal/http"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, log *slog.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down server", "signal", sig.String(), "timeout", timeout.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Runs after in-flight requests finished so their audit writes land.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("server exiting")
	return nil
}

// Run wires the application from cfg and serves it.
func Run(cfg *config.Config, version string) error {
	log := logging.New(cfg.Logging)
	slog.SetDefault(log)
	gin.SetMode(gin.ReleaseMode)

	log.Info("starting bookshelf", "version", version, "datastore", string(cfg.Datastore.Driver))

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Warn("JWT_SECRET is not set, using the development default; set it before exposing the server")
	}

	store, err := openDatastore(context.Background(), cfg, log)
	if err != nil {
		return err
	}

	var auditLogger services.AuditLogger = services.NoopAuditLogger
	var auditService *audit.Service
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	if cfg.Audit.Enabled {
		auditService = audit.NewService(store.audit, log)
		auditLogger = auditService

		cleanup := scheduler.NewAuditCleanupScheduler(auditService, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays, log)
		if err := cleanup.Start(rootCtx); err != nil {
			log.Warn("audit cleanup scheduler not started", "error", err)
		}
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Books:          services.NewBookService(store.books, auditLogger, log),
		Accounts:       auth.NewService(store.users, tokens, auditLogger, cfg.Auth, log),
		AuthMiddleware: auth.NewMiddleware(tokens, log),
		Datastore:      store.pinger,
		DatastoreName:  store.name,
		Logger:         log,
		Version:        version,
	})

	onShutdown := func(ctx context.Context) {
		cancelRoot()
		if auditService != nil {
			auditService.Wait()
		}
		if err := store.close(ctx); err != nil {
			log.Error("failed to close datastore", "error", err)
		}
	}

	return Serve(router, cfg, log, onShutdown)
}
