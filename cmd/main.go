package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vchat/auth"
	"vchat/infrastructure/api"
	"vchat/infrastructure/daily"
	"vchat/observability"
	"vchat/projection"
	"vchat/repositories"
	"vchat/runtime"
	"vchat/runtime/workers"
	"vchat/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting. Returning an error instead of exiting
// directly ensures the deferred cleanup (database close, graceful shutdown)
// always executes, and keeps the wiring testable.
func run() error {
	// 1. Configuration & Logger
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories & live state
	metricsRegistry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(metricsRegistry)

	userRepository := repositories.NewUserRepository(db)
	groupRepository := repositories.NewGroupRepository(db)
	callRepository := repositories.NewCallRepository(db, log)

	registry := runtime.NewRegistry()
	router := runtime.NewRouter(log, registry, metrics, config.SinkTimeout)

	// 4. Services
	tokens := auth.NewTokenManager(config.AuthTokenSecret, config.AuthTokenDuration)
	provider := daily.NewClient(log, config.DailyAPIURL, config.DailyToken, config.ProvisionTimeout)

	authService := services.NewAuthService(userRepository, tokens)
	sessionService := services.NewSessionService(log, registry, router, groupRepository, metrics)
	groupService := services.NewGroupService(log, groupRepository, sessionService)
	callService := services.NewCallService(log, provider, router,
		callRepository, userRepository, groupRepository, metrics)
	history := projection.NewHistory(log, callRepository, userRepository, groupRepository)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervised background workers
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(workers.NewBadgerGC(log, db, config.GCInterval))
	go sup.Run(ctx)

	// 7. HTTP server
	handler := api.NewRouter(&api.RouterDeps{
		Log:                  log,
		Tokens:               tokens,
		Auth:                 authService,
		Sessions:             sessionService,
		Groups:               groupService,
		Calls:                callService,
		History:              history,
		ConnectionBufferSize: config.ConnectionBufferSize,
		MetricsRegistry:      metricsRegistry,
	})

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: handler}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown was not clean", "error", err)
	}
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
