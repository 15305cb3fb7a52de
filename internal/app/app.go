package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-arena/internal/auth"
	"github.com/gokatarajesh/trivia-arena/internal/auth/jwt"
	"github.com/gokatarajesh/trivia-arena/internal/config"
	"github.com/gokatarajesh/trivia-arena/internal/game"
	"github.com/gokatarajesh/trivia-arena/internal/leaderboard"
	"github.com/gokatarajesh/trivia-arena/internal/logging"
	"github.com/gokatarajesh/trivia-arena/internal/server"
	ws "github.com/gokatarajesh/trivia-arena/pkg/http/ws"
)

// Application aggregates the API service: question bank, game services and
// the HTTP server.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger
	http   *http.Server
}

// New bootstraps config, logger, the question bank, game services and the
// HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	// The bank loads once; games draw their sessions from this snapshot.
	bank, err := LoadBank(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	authSvc := auth.NewService(auth.ServiceOptions{
		TokenConfig: jwt.TokenConfig{
			Secret: []byte(cfg.Security.JWTSecret),
			TTL:    cfg.Security.TokenTTL,
			Issuer: cfg.Name,
		},
	}, logger)
	authHandlers := auth.NewHTTPHandlers(authSvc, logger)

	engine := game.NewEngine(bank, game.EngineOptions{TierQuota: cfg.Game.TierQuota})
	registry := game.NewRegistry()
	wsHub := ws.NewHub(logger)
	scores := leaderboard.NewService(logger, leaderboard.ServiceOptions{TopN: cfg.Leaderboard.TopN})

	gameHandler := game.NewHandler(engine, registry, wsHub, scores, authSvc, logger)
	scoresHandler := leaderboard.NewHTTPHandler(scores, logger)

	apiServer := server.NewHTTPServer(cfg, logger, authHandlers, gameHandler.HandleWebSocket, scoresHandler.HandleGet)

	return &Application{
		cfg:    cfg,
		logger: logger,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
