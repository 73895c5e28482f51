package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads .env, config.yaml (optional) and the environment, in that
// order of increasing precedence.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	return load(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Same variable names as the deployed site.
	_ = v.BindEnv("sheets.spreadsheet_id", "SHEETS_SPREADSHEET_ID", "GOOGLE_SHEET_ID")
	_ = v.BindEnv("sheets.client_email", "SHEETS_CLIENT_EMAIL", "GOOGLE_CLIENT_EMAIL")
	_ = v.BindEnv("sheets.private_key", "SHEETS_PRIVATE_KEY", "GOOGLE_PRIVATE_KEY")
	_ = v.BindEnv("app.port", "APP_PORT", "PORT")
	_ = v.BindEnv("sentry.dsn", "SENTRY_DSN")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "mad-labs-apply")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("sheets.backend", BackendGoogle)
	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.client_email", "")
	v.SetDefault("sheets.private_key", "")
	v.SetDefault("sheets.workbook_path", "applications.xlsx")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "application_events")
	v.SetDefault("kafka.group_id", "mad-labs-apply")
	v.SetDefault("kafka.consume", false)

	v.SetDefault("elasticsearch.enabled", false)
	v.SetDefault("elasticsearch.url", "http://localhost:9200")
	v.SetDefault("elasticsearch.index", "applications")

	v.SetDefault("postgres.enabled", false)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.database", "madlabs")
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.traces_sample_rate", 0.2)
}

func validateConfig(cfg *Config) error {
	switch cfg.Sheets.Backend {
	case BackendGoogle:
		if cfg.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("sheets.spreadsheet_id is required for the google backend")
		}
		if cfg.Sheets.ClientEmail == "" || cfg.Sheets.PrivateKey == "" {
			return fmt.Errorf("sheets.client_email and sheets.private_key are required for the google backend")
		}
	case BackendWorkbook:
		if cfg.Sheets.WorkbookPath == "" {
			return fmt.Errorf("sheets.workbook_path is required for the workbook backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown sheets.backend %q", cfg.Sheets.Backend)
	}

	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	if cfg.Kafka.Consume && !cfg.Kafka.Enabled {
		return fmt.Errorf("kafka.consume requires kafka.enabled")
	}
	if cfg.Postgres.Enabled && cfg.Postgres.User == "" {
		return fmt.Errorf("postgres.user is required when postgres is enabled")
	}

	return nil
}

func loadEnvFile() {
	paths := []string{".env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
