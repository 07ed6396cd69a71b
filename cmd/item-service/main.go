package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/deppfellow/item-service/internal/config"
	"github.com/deppfellow/item-service/internal/handler"
	"github.com/deppfellow/item-service/internal/logger"
	"github.com/deppfellow/item-service/internal/repository"
	"github.com/deppfellow/item-service/internal/router"
	"github.com/deppfellow/item-service/internal/server"
	"github.com/deppfellow/item-service/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Shut down together with the server.
	loggerService := logger.NewLoggerService(&cfg.Observability)

	log := logger.NewLoggerWithService(&cfg.Observability, loggerService)

	log.Info().
		Str("env", cfg.Primary.Env).
		Str("port", cfg.Server.Port).
		Msg("api_starting")

	if missing := cfg.MissingDatabaseSettings(); len(missing) > 0 {
		log.Warn().
			Strs("missing", missing).
			Msg("database settings missing: " + strings.Join(missing, ", ") + "; database routes will fail until they are set")
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
