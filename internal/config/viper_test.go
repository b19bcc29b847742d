package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "auto", config.Input.CSVDelimiter)
	assert.Equal(t, "auto", config.Input.Encoding)
	assert.Equal(t, "Resumo", config.Export.SheetName)
	assert.Equal(t, "Resumo_Plano_De_Contas.xlsx", config.Export.FileName)
	assert.Equal(t, 5, config.Dashboard.TopN)
	assert.Equal(t, "vendas", config.Dashboard.SalesKeyword)
	assert.Equal(t, "vendas no balcão", config.Dashboard.CounterSalesKeyword)
	assert.Equal(t, "sqlite", config.Store.Backend)
	assert.Equal(t, "/", config.Store.Path)
	assert.True(t, config.Store.SaveOnUpload)
	assert.Equal(t, filepath.Join(DefaultDataDir(), "dre.db"), config.Store.SQLite.Path)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, time.Duration(0), config.Server.ReloadInterval)
	assert.Equal(t, rune(0), config.InputDelimiter())
	assert.Equal(t, ',', config.ExportDelimiter())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	testEnvVars := map[string]string{
		"DRE_LOG_LEVEL":                  "debug",
		"DRE_LOG_FORMAT":                 "json",
		"DRE_CSV_DELIMITER":              ";",
		"DRE_INPUT_CSV_DELIMITER":        "|",
		"DRE_DASHBOARD_TOP_N":            "3",
		"DRE_STORE_BACKEND":              "firebase",
		"FIREBASE_DATABASE_URL":          "https://demo.firebaseio.com",
		"GOOGLE_APPLICATION_CREDENTIALS": "/secrets/sa.json",
		"DRE_STORE_SAVE_ON_UPLOAD":       "false",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ';', config.ExportDelimiter())
	assert.Equal(t, '|', config.InputDelimiter())
	assert.Equal(t, 3, config.Dashboard.TopN)
	assert.Equal(t, "firebase", config.Store.Backend)
	assert.Equal(t, "https://demo.firebaseio.com", config.Store.Firebase.DatabaseURL)
	assert.Equal(t, "/secrets/sa.json", config.Store.Firebase.CredentialsFile)
	assert.False(t, config.Store.SaveOnUpload)
}

const sampleConfig = `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: ";"
input:
  sheet: "Lançamentos"
  encoding: "windows-1252"
dashboard:
  top_n: 10
store:
  backend: "memory"
server:
  addr: "127.0.0.1:9090"
  reload_interval: "30s"
`

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(sampleConfig), 0600))
	chdir(t, tempDir)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "Lançamentos", config.Input.Sheet)
	assert.Equal(t, "windows-1252", config.Input.Encoding)
	assert.Equal(t, 10, config.Dashboard.TopN)
	assert.Equal(t, "memory", config.Store.Backend)
	assert.Equal(t, "127.0.0.1:9090", config.Server.Addr)
	assert.Equal(t, 30*time.Second, config.Server.ReloadInterval)
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0600))

	config, err := InitializeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", config.Store.Backend)

	_, err = InitializeConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(sampleConfig), 0600))
	chdir(t, tempDir)

	t.Setenv("DRE_LOG_LEVEL", "error")
	t.Setenv("DRE_DASHBOARD_TOP_N", "7")

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level) // env var wins
	assert.Equal(t, ";", config.CSV.Delimiter) // config file value
	assert.Equal(t, 7, config.Dashboard.TopN)  // env var wins
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "invalid" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"invalid CSV delimiter", func(c *Config) { c.CSV.Delimiter = "abc" }, "CSV delimiter must be a single character"},
		{"invalid input delimiter", func(c *Config) { c.Input.CSVDelimiter = ";;" }, "input.csv_delimiter"},
		{"invalid encoding", func(c *Config) { c.Input.Encoding = "ebcdic" }, "input.encoding"},
		{"empty sheet name", func(c *Config) { c.Export.SheetName = "" }, "export.sheet_name"},
		{"top n too small", func(c *Config) { c.Dashboard.TopN = 0 }, "dashboard.top_n"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "mongo" }, "store.backend"},
		{"firebase without url", func(c *Config) { c.Store.Backend = "firebase" }, "store.firebase.database_url"},
		{"sqlite without path", func(c *Config) { c.Store.SQLite.Path = "" }, "store.sqlite.path"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"negative reload interval", func(c *Config) { c.Server.ReloadInterval = -time.Second }, "server.reload_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := Default()
	config.Log.Level = "debug"
	config.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(config)
	require.NotNil(t, logger)
	assert.Equal(t, "debug", logger.GetLevel().String())
}

func TestLoadEnv(t *testing.T) {
	// LoadEnv runs once per process; only check that it does not fail.
	_, err := LoadEnv()
	assert.NoError(t, err)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

// clearTestEnvVars unsets overrides that would leak in from the developer's shell.
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"DRE_LOG_LEVEL",
		"DRE_LOG_FORMAT",
		"DRE_CSV_DELIMITER",
		"DRE_INPUT_SHEET",
		"DRE_INPUT_CSV_DELIMITER",
		"DRE_INPUT_ENCODING",
		"DRE_EXPORT_SHEET_NAME",
		"DRE_DASHBOARD_TOP_N",
		"DRE_STORE_BACKEND",
		"DRE_STORE_PATH",
		"DRE_STORE_SAVE_ON_UPLOAD",
		"DRE_STORE_SQLITE_PATH",
		"DRE_STORE_FIREBASE_DATABASE_URL",
		"DRE_STORE_FIREBASE_CREDENTIALS_FILE",
		"DRE_SERVER_ADDR",
		"FIREBASE_DATABASE_URL",
		"GOOGLE_APPLICATION_CREDENTIALS",
	}
	for _, envVar := range envVars {
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
