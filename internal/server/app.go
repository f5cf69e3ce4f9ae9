// Package server initializes and runs the application server.
// It wires storage, the on-chain registry, the chat backend and the HTTP API,
// reconciles interrupted approvals on startup and handles graceful shutdown.
package server

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

	"github.com/anocare/anocare/internal/aichat"
	"github.com/anocare/anocare/internal/chain"
	"github.com/anocare/anocare/internal/logging"
	"github.com/anocare/anocare/internal/server/config"
	"github.com/anocare/anocare/internal/server/httpapi"
	"github.com/anocare/anocare/internal/server/repositories/repomanager"
	"github.com/anocare/anocare/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	rm     repomanager.RepositoryManager
	review *services.ReviewService
	api    *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	registry, err := chain.NewEthRegistry(ctx, c.ChainRPCURL, c.ContractAddress, c.OperatorKey, c.ChainID, logger)
	if err != nil {
		return nil, fmt.Errorf("chain init error: %w", err)
	}

	apps := services.NewApplicationService(rm, logger)
	review := services.NewReviewService(rm, registry, logger)

	var chat httpapi.Completer
	if c.ChatAPIKey != "" {
		chat = aichat.NewClient(c.ChatAPIURL, c.ChatAPIKey, c.ChatModel)
	}

	api := httpapi.NewServer(apps, review, registry, chat, []byte(c.SecretKey), c.TokenValidityDuration, logger)

	return &App{config: c, logger: logger, rm: rm, review: review, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	// finish approvals interrupted between mint and status flip
	if err := app.review.ReconcilePending(ctx); err != nil {
		app.logger.Error(ctx, "reconciliation failed", "error", err.Error())
	}

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.api.Router(),
	}

	go func() {
		app.logger.Info(ctx, "HTTP server listening", "addr", app.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
	}

	if err := app.rm.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err.Error())
	}
}
