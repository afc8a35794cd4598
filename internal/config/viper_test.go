package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// inDir runs the test from dir so the "." config path resolves there.
func inDir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"BUDGET_LOG_LEVEL", "BUDGET_LOG_FORMAT", "BUDGET_CSV_DELIMITER",
		"BUDGET_CSV_INPUT_DATE_LAYOUT", "BUDGET_CSV_EXPORT_DATE_LAYOUT",
		"BUDGET_CATEGORIES_FILE", "BUDGET_REPORT_CURRENCY",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	inDir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, ',', config.DelimiterRune())
	assert.Equal(t, "02 Jan 2006", config.CSV.InputDateLayout)
	assert.Equal(t, "02/01/2006", config.CSV.ExportDateLayout)
	assert.Equal(t, "categories.json", config.Categories.File)
	assert.Equal(t, "AED", config.Report.Currency)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	inDir(t, t.TempDir())

	t.Setenv("BUDGET_LOG_LEVEL", "debug")
	t.Setenv("BUDGET_LOG_FORMAT", "json")
	t.Setenv("BUDGET_CSV_DELIMITER", ";")
	t.Setenv("BUDGET_CATEGORIES_FILE", "/tmp/rules.yaml")
	t.Setenv("BUDGET_REPORT_CURRENCY", "EUR")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "/tmp/rules.yaml", config.Categories.File)
	assert.Equal(t, "EUR", config.Report.Currency)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	inDir(t, dir)

	content := map[string]interface{}{
		"log":        map[string]interface{}{"level": "warn"},
		"categories": map[string]interface{}{"file": "my-categories.json"},
		"report":     map[string]interface{}{"currency": "CHF"},
	}
	data, err := yaml.Marshal(content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "my-categories.json", config.Categories.File)
	assert.Equal(t, "CHF", config.Report.Currency)
}

func TestInitializeConfig_EnvOverridesFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	inDir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: warn\n"), 0600))
	t.Setenv("BUDGET_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "error", config.Log.Level)
}

func TestLoad_FlagOverride(t *testing.T) {
	clearTestEnvVars(t)
	inDir(t, t.TempDir())

	v := viper.New()
	v.Set("categories.file", "flag.json")

	config, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "flag.json", config.Categories.File)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Log.Level = "info"
		c.Log.Format = "text"
		c.CSV.Delimiter = ","
		c.CSV.InputDateLayout = "02 Jan 2006"
		c.CSV.ExportDateLayout = "02/01/2006"
		c.Categories.File = "categories.json"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "chatty" }, wantErr: "invalid log level"},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "invalid log format"},
		{name: "long delimiter", mutate: func(c *Config) { c.CSV.Delimiter = ";;" }, wantErr: "single character"},
		{name: "empty delimiter", mutate: func(c *Config) { c.CSV.Delimiter = "" }, wantErr: "single character"},
		{name: "bad layout", mutate: func(c *Config) { c.CSV.InputDateLayout = "dd/mm/yyyy" }, wantErr: "date layout"},
		{name: "empty categories file", mutate: func(c *Config) { c.Categories.File = " " }, wantErr: "categories.file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	inDir(t, dir)
	t.Setenv("BUDGET_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("BUDGET_FROM_DOTENV"))

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BUDGET_FROM_DOTENV=yes\n"), 0600))
	loaded, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "yes", GetEnv("BUDGET_FROM_DOTENV", "no"))
	assert.Equal(t, "fallback", GetEnv("BUDGET_NOT_SET_ANYWHERE", "fallback"))
}

func TestLoadEnv_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	inDir(t, dir)
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("BUDGET_FROM_CUSTOM=set\n"), 0600))
	t.Setenv(EnvFileVar, path)
	t.Setenv("BUDGET_FROM_CUSTOM", "")
	require.NoError(t, os.Unsetenv("BUDGET_FROM_CUSTOM"))

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, path, loaded)
	assert.Equal(t, "set", os.Getenv("BUDGET_FROM_CUSTOM"))

	t.Setenv(EnvFileVar, filepath.Join(dir, "missing.env"))
	_, err = LoadEnv()
	assert.Error(t, err)
}
