package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	TelegramBotToken  string        `env:"BOT_TOKEN,required"`
	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=disable"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	KaspaAPIBaseURL   string        `env:"KASPA_API_BASE_URL,default=https://api.kaspa.org"`
	KasplexAPIBaseURL string        `env:"KASPLEX_API_BASE_URL,default=https://api.kasplex.org"`
	SourceAPITimeout  time.Duration `env:"SOURCE_API_TIMEOUT,default=10s"`
	ExplorerTxBaseURL string        `env:"EXPLORER_TX_BASE_URL,default=https://explorer.kaspa.org/transactions"`

	CheckIntervalSeconds int           `env:"CHECK_INTERVAL_SECONDS,default=300"`
	SourcePause          time.Duration `env:"MONITOR_SOURCE_PAUSE,default=500ms"`
	UserPause            time.Duration `env:"MONITOR_USER_PAUSE,default=1s"`

	TelegramPollTimeout int    `env:"TELEGRAM_POLL_TIMEOUT,default=60"`
	LogLevel            string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CheckInterval is the monitor cycle cadence. The env variable stays an
// integer number of seconds for compatibility with existing deployments.
func (c Config) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalSeconds) * time.Second
}
