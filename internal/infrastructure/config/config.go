package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"PORT,           default=8080"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=4320h"`

	Sheets SheetsConfig
	Redis  RedisConfig
	Seed   SeedConfig
}

type SheetsConfig struct {
	BaseURL    string        `env:"SHEETS_BASE_URL,    default=http://localhost:9090/api/v1"`
	DocumentID string        `env:"SHEETS_DOCUMENT_ID"`
	APIToken   string        `env:"SHEETS_API_TOKEN"`
	FixHeaders bool          `env:"SHEETS_FIX_HEADERS, default=false"`
	CacheTTL   time.Duration `env:"SHEETS_CACHE_TTL,   default=30s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SeedConfig holds the passwords for the accounts created when the users
// table is found empty.
type SeedConfig struct {
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=admin123"`
	Wolf1Password string `env:"SEED_WOLF1_PASSWORD, default=wolfpass1"`
	Wolf2Password string `env:"SEED_WOLF2_PASSWORD, default=wolfpass2"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
