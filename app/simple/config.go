package simple

import (
	"github.com/dmitrymomot/raptor/core/kernel"
	"github.com/dmitrymomot/raptor/core/server"
)

type Config struct {
	Kernel kernel.Config
	Server server.Config

	AppName     string `env:"APP_NAME" envDefault:"raptor"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`

	RateLimit   float64  `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateBurst   int      `env:"RATE_LIMIT_BURST" envDefault:"20"`
	CORSOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`
}

func (c Config) isDevelopment() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}
