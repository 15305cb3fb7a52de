package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-arena"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres    Postgres
	Redis       Redis
	Security    Security
	Bank        Bank
	Game        Game
	Leaderboard Leaderboard
	Telegram    Telegram
}

// Postgres captures connection info for the curated question database.
// Leaving PG_HOST empty disables the curated source.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:""`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER" envDefault:""`
	Password string `env:"PG_PASSWORD" envDefault:""`
	Database string `env:"PG_DATABASE" envDefault:""`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Enabled reports whether a curated database is configured.
func (p Postgres) Enabled() bool { return p.Host != "" }

// ConnString renders the pgx pool connection string.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis holds bank cache configuration. Leaving REDIS_ADDR empty disables
// the cache.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Enabled reports whether a cache is configured.
func (r Redis) Enabled() bool { return r.Addr != "" }

// Security stores secrets for signing and auth.
type Security struct {
	JWTSecret string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Bank configures where the question bank is loaded from.
type Bank struct {
	RemoteURL string        `env:"BANK_REMOTE_URL" envDefault:""`
	File      string        `env:"BANK_FILE" envDefault:"data/questions.json"`
	CacheKey  string        `env:"BANK_CACHE_KEY" envDefault:"questionbank:v1"`
	CacheTTL  time.Duration `env:"BANK_CACHE_TTL" envDefault:"12h"`
}

// Game groups gameplay defaults.
type Game struct {
	TierQuota int `env:"GAME_TIER_QUOTA" envDefault:"10"`
}

// Leaderboard governs the best-scores board.
type Leaderboard struct {
	TopN int `env:"LEADERBOARD_TOP" envDefault:"10"`
}

// Telegram holds the bot frontend credentials. The API service ignores it;
// cmd/bot refuses to start without a token.
type Telegram struct {
	Token string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
