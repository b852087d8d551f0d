package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Search: SearchConfig{Enabled: true, Limit: 10},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true}, // case insensitive
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_SeedExtension(t *testing.T) {
	tests := []struct {
		path  string
		valid bool
	}{
		{"", true},
		{"/data/books.json", true},
		{"/data/books.yaml", true},
		{"/data/books.YML", true},
		{"/data/books.csv", false},
		{"/data/books", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			cfg := validConfig()
			cfg.Catalog.SeedPath = tt.path

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_SearchLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Limit = 0

	assert.Error(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CATALOG_SEED_PATH", "")
	t.Setenv("SEARCH_ENABLED", "")
	t.Setenv("SEARCH_LIMIT", "")

	cfg, err := Load([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Empty(t, cfg.Catalog.SeedPath)
	assert.True(t, cfg.Search.Enabled)
	assert.Equal(t, 10, cfg.Search.Limit)
	assert.Empty(t, cfg.Args)
}

func TestLoad_FlagsAndArgs(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()

	cfg, err := Load([]string{
		"-env-file", filepath.Join(dir, "missing.env"),
		"-log-level", "debug",
		"-seed", filepath.Join(dir, "books.yaml"),
		"-search", "false",
		"books", "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, filepath.Join(dir, "books.yaml"), cfg.Catalog.SeedPath)
	assert.False(t, cfg.Search.Enabled)
	assert.Equal(t, []string{"books", "Alice"}, cfg.Args)
}

func TestLoad_InvalidSeed(t *testing.T) {
	_, err := Load([]string{
		"-env-file", filepath.Join(t.TempDir(), "missing.env"),
		"-seed", "/data/books.csv",
	})
	assert.Error(t, err)
}

func TestExpandSeedPath_RelativePath(t *testing.T) {
	cfg := &Config{Catalog: CatalogConfig{SeedPath: "books.json"}}

	require.NoError(t, cfg.expandSeedPath())

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "books.json"), cfg.Catalog.SeedPath)
}

func TestExpandSeedPath_TildeExpansion(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := &Config{Catalog: CatalogConfig{SeedPath: "~/seed/books.yaml"}}
	require.NoError(t, cfg.expandSeedPath())

	assert.Equal(t, filepath.Join(homeDir, "seed", "books.yaml"), cfg.Catalog.SeedPath)
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("TEST_CATALOG_VALUE", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "TEST_CATALOG_VALUE", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "TEST_CATALOG_VALUE", "default"))
	assert.Equal(t, "default", getConfigValue("", "TEST_CATALOG_UNSET_VALUE", "default"))
}

func TestGetIntConfigValue_InvalidFallsBack(t *testing.T) {
	assert.Equal(t, 10, getIntConfigValue("lots", "TEST_CATALOG_UNSET_VALUE", 10))
	assert.Equal(t, 3, getIntConfigValue("3", "TEST_CATALOG_UNSET_VALUE", 10))
}

func TestLoadEnvFile_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nTEST_CATALOG_SEED=\"/data/books.json\"\nTEST_CATALOG_LEVEL = debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("TEST_CATALOG_SEED", "")
	t.Setenv("TEST_CATALOG_LEVEL", "")

	require.NoError(t, loadEnvFile(path))

	assert.Equal(t, "/data/books.json", os.Getenv("TEST_CATALOG_SEED"))
	assert.Equal(t, "debug", os.Getenv("TEST_CATALOG_LEVEL"))
}

func TestLoadEnvFile_InvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT_A_PAIR\n"), 0o600))

	err := loadEnvFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestLoadEnvFile_ExistingEnvVarsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CATALOG_KEEP=from-file\n"), 0o600))
	t.Setenv("TEST_CATALOG_KEEP", "from-env")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-env", os.Getenv("TEST_CATALOG_KEEP"))
}

func TestLoadEnvFile_NonExistentFile(t *testing.T) {
	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
}
