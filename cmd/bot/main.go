package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gokatarajesh/trivia-arena/internal/app"
	"github.com/gokatarajesh/trivia-arena/internal/config"
	"github.com/gokatarajesh/trivia-arena/internal/game"
	"github.com/gokatarajesh/trivia-arena/internal/leaderboard"
	"github.com/gokatarajesh/trivia-arena/internal/logging"
	"github.com/gokatarajesh/trivia-arena/internal/telegram"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load(loadCtx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Telegram.Token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	logger := logging.New(cfg.Name+"-bot", cfg.Env)

	bank, err := app.LoadBank(loadCtx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to load question bank: %v", err)
	}

	engine := game.NewEngine(bank, game.EngineOptions{TierQuota: cfg.Game.TierQuota})
	scores := leaderboard.NewService(logger, leaderboard.ServiceOptions{TopN: cfg.Leaderboard.TopN})

	bot, err := telegram.NewBot(cfg.Telegram.Token, engine, scores, logger)
	if err != nil {
		log.Fatalf("failed to build bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil {
		log.Fatalf("runtime error: %v", err)
	}
	logger.Info().Msg("bot stopped")
}
