package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config contains runtime configuration required by the service.
type Config struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	AdminAPIKeys    []string      `yaml:"admin_api_keys" env:"ADMIN_API_KEYS" env-separator:","`

	DB      DB      `yaml:"db"`
	Sheets  Sheets  `yaml:"sheets"`
	Log     Log     `yaml:"log"`
	Tracing Tracing `yaml:"tracing"`
}

type DB struct {
	Driver     string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	URL        string `yaml:"url" env:"DB_URL"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"./registrations.db"`
}

// Sheets configures the optional spreadsheet mirror. An empty SheetID disables it.
type Sheets struct {
	SheetID         string        `yaml:"sheet_id" env:"GOOGLE_SHEET_ID"`
	ConnectorsHost  string        `yaml:"connectors_host" env:"REPLIT_CONNECTORS_HOSTNAME"`
	ReplIdentity    string        `yaml:"-" env:"REPL_IDENTITY"`
	WebReplRenewal  string        `yaml:"-" env:"WEB_REPL_RENEWAL"`
	Timeout         time.Duration `yaml:"timeout" env:"SHEETS_TIMEOUT" env-default:"15s"`
	DefaultTokenTTL time.Duration `yaml:"default_token_ttl" env:"SHEETS_TOKEN_TTL" env-default:"50m"`
}

type Log struct {
	Env   string `yaml:"env" env:"LOG_ENV" env-default:"prod"`
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Tracing is disabled when Endpoint is empty.
type Tracing struct {
	Endpoint    string `yaml:"endpoint" env:"OTEL_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"interest-registration"`
}

// SheetsEnabled reports whether registrations should be mirrored to a spreadsheet.
func (c Config) SheetsEnabled() bool {
	return c.Sheets.SheetID != ""
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Load reads an optional .env file, an optional YAML file at CONFIG_PATH,
// then environment variables, which win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	var err error
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	// Supabase dashboards hand out the connection string under this name.
	if cfg.DB.URL == "" {
		cfg.DB.URL = strings.TrimSpace(os.Getenv("SUPABASE_DB_URL"))
	}

	cfg.AdminAPIKeys = cleanKeys(cfg.AdminAPIKeys)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadSheets reads only the spreadsheet settings, for tools that never touch the database.
func LoadSheets() (Sheets, error) {
	_ = godotenv.Load()

	var s Sheets
	if err := cleanenv.ReadEnv(&s); err != nil {
		return Sheets{}, fmt.Errorf("read sheets config: %w", err)
	}
	if s.ConnectorsHost == "" {
		return Sheets{}, errors.New("REPLIT_CONNECTORS_HOSTNAME required")
	}
	return s, nil
}

func (c Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.URL == "" {
			return errors.New("DB_URL required")
		}
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			return errors.New("SQLITE_PATH required")
		}
	default:
		return fmt.Errorf(`DB_DRIVER must be "postgres" or "sqlite", got %q`, c.DB.Driver)
	}

	if c.SheetsEnabled() && c.Sheets.ConnectorsHost == "" {
		return errors.New("REPLIT_CONNECTORS_HOSTNAME required when GOOGLE_SHEET_ID is set")
	}
	return nil
}

func cleanKeys(keys []string) []string {
	out := keys[:0]
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
