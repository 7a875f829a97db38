package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/fairly/internal/auth"
	"github.com/mmynk/fairly/internal/config"
	"github.com/mmynk/fairly/internal/httpapi"
	"github.com/mmynk/fairly/internal/metrics"
	"github.com/mmynk/fairly/internal/middleware"
	"github.com/mmynk/fairly/internal/service"
	"github.com/mmynk/fairly/internal/storage/sqlite"
	"github.com/mmynk/fairly/pkg/api/apiconnect"
	"github.com/mmynk/fairly/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogFormat == "json"})
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)
	m := metrics.New()

	groupSvc := service.NewGroupService(store, logger).WithSettlementObserver(m)
	authSvc := service.NewAuthService(authenticator, jwtManager, store, logger)
	expenseSvc := service.NewExpenseService(store, logger)

	// Metrics see every call, including rejected ones; logging runs after
	// auth so entries carry the user ID.
	public := connect.WithInterceptors(m.Interceptor(), middleware.OptionalAuth(jwtManager), middleware.LoggingInterceptor(logger))
	protected := connect.WithInterceptors(m.Interceptor(), middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor(logger))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(authSvc, public))
	mux.Handle(apiconnect.NewGroupServiceHandler(groupSvc, protected))
	mux.Handle(apiconnect.NewExpenseServiceHandler(expenseSvc, protected))
	httpapi.New(groupSvc, store, logger).Register(mux, middleware.RequireAuthHTTP(jwtManager))
	mux.Handle("GET /metrics", m.Handler())

	handler := middleware.RequestLogger(logger)(middleware.CORS(mux))

	srv := &http.Server{
		Addr: cfg.Addr(),
		// h2c for HTTP/2 without TLS (required for Connect)
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Connect server starting", "address", srv.Addr, "currency", cfg.Currency)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
