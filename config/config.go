package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Server holds the API server settings.
type Server struct {
	Port            string        `env:"PORT" envDefault:"5000"`
	StoreDriver     string        `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI        string        `env:"MONGO_URI"`
	MongoDB         string        `env:"MONGO_DB" envDefault:"projectdashboard"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	NATSURL         string        `env:"NATS_URL"`
	EnableBootstrap bool          `env:"ENABLE_BOOTSTRAP" envDefault:"false"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Dashboard holds the terminal dashboard settings.
type Dashboard struct {
	APIURL   string        `env:"API_URL" envDefault:"http://localhost:5000/api"`
	Timeout  time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"warn"`
}

// LoadDotEnv reads the given .env files into the process environment.
// Files that do not exist are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// LoadServer parses the server settings from the environment.
func LoadServer() (*Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Server) validate() error {
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("config: MONGO_URI must be set when STORE_DRIVER=%s", StoreMongo)
		}
		if c.MongoDB == "" {
			return fmt.Errorf("config: MONGO_DB must be set")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Port == "" {
		return fmt.Errorf("config: PORT must be set")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Server) Addr() string {
	return ":" + c.Port
}

// LoadDashboard parses the dashboard settings from the environment.
func LoadDashboard() (*Dashboard, error) {
	var cfg Dashboard
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	return &cfg, nil
}
