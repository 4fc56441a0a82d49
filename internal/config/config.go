package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported store drivers.
const (
	StoreDriverMongo  = "mongodb"
	StoreDriverMemory = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	MongoDB MongoDBConfig
	Sheets  SheetsConfig
	Export  ExportConfig
	Client  ClientConfig
	Log     LogConfig

	timeoutErr error
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StoreConfig selects the shipment store backend.
type StoreConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI            string
	DBName         string
	Collection     string
	ConnectTimeout time.Duration
}

// SheetsConfig contains configuration required to mirror shipments into Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SheetName       string
}

// Enabled reports whether the manifest export has enough configuration to run.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// ExportConfig holds scheduler-related settings for the manifest export.
type ExportConfig struct {
	CronSchedule string
	Timezone     string
}

// ClientConfig holds settings used by the shipctl client.
type ClientConfig struct {
	APIBaseURL string
	OutputDir  string
	LogFile    string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// validates the server configuration.
func Load(envFile string) (*Config, error) {
	cfg, err := read(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClient is Load for shipctl: server-only settings are read but not checked.
func LoadClient(envFile string) (*Config, error) {
	cfg, err := read(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateClient(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read(envFile string) (*Config, error) {
	if envFile != "" {
		// A file named explicitly must exist.
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		// Missing .env files are fine; the environment may carry everything.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "5000"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getenvWithDefault("STORE_DRIVER", StoreDriverMongo)),
		},
		MongoDB: MongoDBConfig{
			URI:        getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName:     getenvWithDefault("MONGODB_DB_NAME", "shipmentTracker"),
			Collection: getenvWithDefault("MONGODB_COLLECTION", "shipments"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			SheetName:       getenvWithDefault("GOOGLE_SHEET_NAME", "Shipments"),
		},
		Export: ExportConfig{
			CronSchedule: getenvWithDefault("EXPORT_CRON_SCHEDULE", "0 * * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Client: ClientConfig{
			APIBaseURL: getenvWithDefault("SHIPMENT_API_URL", "http://localhost:5000"),
			OutputDir:  getenvWithDefault("SHIPCTL_OUTPUT_DIR", "."),
			LogFile:    os.Getenv("SHIPCTL_LOG_FILE"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	cfg.MongoDB.ConnectTimeout, cfg.timeoutErr = time.ParseDuration(getenvWithDefault("MONGODB_CONNECT_TIMEOUT", "10s"))

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
		if c.MongoDB.Collection == "" {
			return errors.New("MONGODB_COLLECTION must be provided")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}

	if c.timeoutErr != nil {
		return fmt.Errorf("invalid MONGODB_CONNECT_TIMEOUT: %w", c.timeoutErr)
	}
	if c.MongoDB.ConnectTimeout <= 0 {
		return errors.New("MONGODB_CONNECT_TIMEOUT must be positive")
	}

	if c.Sheets.Enabled() {
		if c.Sheets.SheetName == "" {
			return errors.New("GOOGLE_SHEET_NAME must not be empty")
		}
		if c.Export.CronSchedule == "" {
			return errors.New("EXPORT_CRON_SCHEDULE must be provided")
		}
		if _, err := time.LoadLocation(c.Export.Timezone); err != nil {
			return fmt.Errorf("invalid TIMEZONE %q: %w", c.Export.Timezone, err)
		}
	}

	return c.ValidateClient()
}

// ValidateClient checks only the settings shipctl depends on.
func (c *Config) ValidateClient() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Client.APIBaseURL == "" {
		return errors.New("SHIPMENT_API_URL must not be empty")
	}
	if c.Client.OutputDir == "" {
		return errors.New("SHIPCTL_OUTPUT_DIR must not be empty")
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
