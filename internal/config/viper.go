// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DRE_LOG_LEVEL.
const EnvPrefix = "DRE"

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls CSV exports.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// InputConfig controls how uploads are read.
type InputConfig struct {
	Sheet        string `mapstructure:"sheet" yaml:"sheet"`
	CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	Encoding     string `mapstructure:"encoding" yaml:"encoding"`
}

// ExportConfig controls the summary workbook.
type ExportConfig struct {
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
	FileName  string `mapstructure:"file_name" yaml:"file_name"`
}

// DashboardConfig tunes the ranking and the sales cards.
type DashboardConfig struct {
	TopN                int    `mapstructure:"top_n" yaml:"top_n"`
	SalesKeyword        string `mapstructure:"sales_keyword" yaml:"sales_keyword"`
	CounterSalesKeyword string `mapstructure:"counter_sales_keyword" yaml:"counter_sales_keyword"`
}

// FirebaseConfig points at a Realtime Database.
type FirebaseConfig struct {
	DatabaseURL     string `mapstructure:"database_url" yaml:"database_url"`
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
}

// SQLiteConfig points at the local database file.
type SQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend      string         `mapstructure:"backend" yaml:"backend"`
	Path         string         `mapstructure:"path" yaml:"path"`
	SaveOnUpload bool           `mapstructure:"save_on_upload" yaml:"save_on_upload"`
	Firebase     FirebaseConfig `mapstructure:"firebase" yaml:"firebase"`
	SQLite       SQLiteConfig   `mapstructure:"sqlite" yaml:"sqlite"`
}

// ServerConfig controls the HTTP dashboard.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	// ReloadInterval re-reads the store while serving; 0 disables it.
	ReloadInterval time.Duration `mapstructure:"reload_interval" yaml:"reload_interval"`
}

// Config represents the complete application configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	CSV       CSVConfig       `mapstructure:"csv" yaml:"csv"`
	Input     InputConfig     `mapstructure:"input" yaml:"input"`
	Export    ExportConfig    `mapstructure:"export" yaml:"export"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
}

// InitializeConfig loads defaults, then the config file, then DRE_*
// environment variables. configFile, when set, must exist; otherwise
// config.yaml is searched in $HOME/.dre-report, .dre-report and ".".
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.dre-report")
		v.AddConfigPath(".dre-report")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 5. Firebase also honours the standard Google variables
	if err := v.BindEnv("store.firebase.credentials_file", "DRE_STORE_FIREBASE_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS"); err != nil {
		return nil, fmt.Errorf("failed to bind credentials environment variable: %w", err)
	}
	if err := v.BindEnv("store.firebase.database_url", "DRE_STORE_FIREBASE_DATABASE_URL", "FIREBASE_DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database URL environment variable: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

// DefaultDataDir is where local state lives.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dre-report"
	}
	return filepath.Join(home, ".dre-report")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("input.sheet", "")
	v.SetDefault("input.csv_delimiter", "auto")
	v.SetDefault("input.encoding", "auto")

	v.SetDefault("export.sheet_name", "Resumo")
	v.SetDefault("export.file_name", "Resumo_Plano_De_Contas.xlsx")

	v.SetDefault("dashboard.top_n", 5)
	v.SetDefault("dashboard.sales_keyword", "vendas")
	v.SetDefault("dashboard.counter_sales_keyword", "vendas no balcão")

	v.SetDefault("store.backend", "sqlite")
	v.SetDefault("store.path", "/")
	v.SetDefault("store.save_on_upload", true)
	v.SetDefault("store.firebase.database_url", "")
	v.SetDefault("store.firebase.credentials_file", "")
	v.SetDefault("store.sqlite.path", filepath.Join(DefaultDataDir(), "dre.db"))

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.reload_interval", "0s")
}

var (
	validBackends  = []string{"none", "memory", "sqlite", "firebase"}
	validEncodings = []string{"auto", "utf-8", "utf8", "windows-1252", "cp1252", "latin1", "iso-8859-1"}
)

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if d := config.Input.CSVDelimiter; d != "" && d != "auto" && utf8.RuneCountInString(d) != 1 {
		return fmt.Errorf("input.csv_delimiter must be 'auto' or a single character, got: %s", d)
	}

	if !contains(validEncodings, strings.ToLower(config.Input.Encoding)) {
		return fmt.Errorf("input.encoding must be one of %s, got: %s", strings.Join(validEncodings, ", "), config.Input.Encoding)
	}

	if name := config.Export.SheetName; name == "" || utf8.RuneCountInString(name) > 31 {
		return fmt.Errorf("export.sheet_name must be 1 to 31 characters, got: %q", name)
	}

	if config.Dashboard.TopN < 1 || config.Dashboard.TopN > 50 {
		return fmt.Errorf("dashboard.top_n must be between 1 and 50, got: %d", config.Dashboard.TopN)
	}

	backend := strings.ToLower(config.Store.Backend)
	if !contains(validBackends, backend) {
		return fmt.Errorf("store.backend must be one of %s, got: %s", strings.Join(validBackends, ", "), config.Store.Backend)
	}
	if backend == "firebase" && config.Store.Firebase.DatabaseURL == "" {
		return fmt.Errorf("store.firebase.database_url required when store.backend is firebase")
	}
	if backend == "sqlite" && config.Store.SQLite.Path == "" {
		return fmt.Errorf("store.sqlite.path required when store.backend is sqlite")
	}

	if config.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if config.Server.ReloadInterval < 0 {
		return fmt.Errorf("server.reload_interval must not be negative, got: %s", config.Server.ReloadInterval)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// ExportDelimiter returns the CSV export delimiter as a rune.
func (c *Config) ExportDelimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// InputDelimiter returns the upload delimiter, or 0 for auto-detection.
func (c *Config) InputDelimiter() rune {
	d := c.Input.CSVDelimiter
	if d == "" || d == "auto" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(d)
	return r
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
