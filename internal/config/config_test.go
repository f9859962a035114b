package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/opshelm/internal/workspace"
)

var configKeys = []string{
	"OPSHELM_ACCOUNT", "OUTPUT_DIR", "MAX_RESULTS", "WORKSPACES", "WORKSPACES_FILE",
	"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "PUSHGATEWAY_URL", "METRICS_EXPORTER",
}

// clearEnv unsets every variable Load reads and runs the test from an empty
// directory so a developer's .env is never picked up. godotenv skips keys
// that exist at all, so blank values are not enough.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAccount, cfg.Account)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, int64(DefaultMaxResults), cfg.MaxResults)
	assert.Equal(t, workspace.DefaultEntries, cfg.Workspaces)
	assert.False(t, cfg.Google.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPSHELM_ACCOUNT", "work")
	t.Setenv("OUTPUT_DIR", "/tmp/reports")
	t.Setenv("MAX_RESULTS", "25")
	t.Setenv("WORKSPACES", `{"Acme": "acme", "Globex": "globex"}`)
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "work", cfg.Account)
	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.Equal(t, int64(25), cfg.MaxResults)
	assert.Equal(t, []workspace.Entry{{Name: "Acme", Prefix: "acme"}, {Name: "Globex", Prefix: "globex"}}, cfg.Workspaces)
	assert.True(t, cfg.Google.Enabled())
	assert.Equal(t, []string{"Acme", "Globex"}, cfg.Registry().Names())
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, "opshelm.env")
	require.NoError(t, os.WriteFile(envFile, []byte("OPSHELM_ACCOUNT=from-file\nMAX_RESULTS=7\n"), 0o600))

	t.Setenv("MAX_RESULTS", "9")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Account)
	assert.Equal(t, int64(9), cfg.MaxResults, "process environment wins over the file")
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoad_WorkspacesFileWins(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "workspaces.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Initech: initech\n"), 0o600))

	t.Setenv("WORKSPACES", "Acme: acme")
	t.Setenv("WORKSPACES_FILE", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []workspace.Entry{{Name: "Initech", Prefix: "initech"}}, cfg.Workspaces)
}

func TestLoad_InvalidWorkspaces(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORKSPACES", "- not\n- a mapping\n")

	_, err := Load("")
	assert.ErrorIs(t, err, workspace.ErrInvalidConfig)
}

func TestConfig_SetWorkspacesFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ws.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Umbrella: umb\nAcme: acme\n"), 0o600))

	require.NoError(t, cfg.SetWorkspacesFile(path))
	assert.Equal(t, []string{"Umbrella", "Acme"}, cfg.Registry().Names())

	assert.Error(t, cfg.SetWorkspacesFile(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestConfig_Validate(t *testing.T) {
	clearEnv(t)
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty output dir", mutate: func(c *Config) { c.OutputDir = "" }},
		{name: "zero max results", mutate: func(c *Config) { c.MaxResults = 0 }},
		{name: "empty workspace prefix", mutate: func(c *Config) { c.Workspaces = []workspace.Entry{{Name: "A"}} }},
		{name: "bad instrumentation", mutate: func(c *Config) { c.Instrumentation.MetricsExporter = "statsd" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Workspaces = append([]workspace.Entry(nil), base.Workspaces...)
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
