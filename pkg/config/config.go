package config

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Instagram struct {
		AccessToken string `env:"INSTAGRAM_ACCESS_TOKEN" env-required:"true"`
		GraphURL    string `env:"INSTAGRAM_GRAPH_URL" env-default:"https://graph.instagram.com"`
	}
	WordPress struct {
		SiteURL     string `env:"WORDPRESS_SITE_URL" env-required:"true"`
		Username    string `env:"WORDPRESS_USERNAME" env-required:"true"`
		AppPassword string `env:"WORDPRESS_APPLICATION_PASSWORD" env-required:"true"`
		CategoryID  int    `env:"CATEGORY_ID" env-required:"true"`
	}
	Ledger struct {
		Path string `env:"LEDGER_PATH" env-default:"igsync.db"`
	}
	Metrics struct {
		PushGateway string `env:"PROMETHEUS_PUSH_GATEWAY"`
		Job         string `env:"PROMETHEUS_JOB" env-default:"instagram_sync"`
	}
	HTTP struct {
		Timeout       time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
		RetryAttempts uint64        `env:"RETRY_MAX_ATTEMPTS" env-default:"3"`
		RetryInterval time.Duration `env:"RETRY_INITIAL_INTERVAL" env-default:"500ms"`
	}
}

var (
	once sync.Once
	cfg  *Config
	err  error
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if _, statErr := os.Stat(".env"); statErr == nil {
			err = cleanenv.ReadConfig(".env", cfg)
		} else {
			err = cleanenv.ReadEnv(cfg)
		}
		if err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Printf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, err
}

// LedgerDSN returns the SQLite connection string for the ledger file.
// WAL and a busy timeout keep a second accidental invocation from
// corrupting the ledger, though concurrent runs remain unsupported.
func (c *Config) LedgerDSN() string {
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)",
		c.Ledger.Path,
	)
}
