package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/teemow/opshelm/internal/instrumentation"
	"github.com/teemow/opshelm/internal/workspace"
)

const (
	DefaultAccount    = "default"
	DefaultOutputDir  = "./output"
	DefaultMaxResults = 100
)

type Config struct {
	Account         string
	OutputDir       string
	MaxResults      int64
	WorkspacesFile  string
	Workspaces      []workspace.Entry
	Google          GoogleConfig
	Instrumentation instrumentation.Config
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
}

// Load reads envFile (or ./.env when envFile is empty and the file exists)
// and builds the configuration from the environment. Variables already set
// in the process environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Config{
		Account:        getEnv("OPSHELM_ACCOUNT", DefaultAccount),
		OutputDir:      getEnv("OUTPUT_DIR", DefaultOutputDir),
		MaxResults:     getEnvInt64("MAX_RESULTS", DefaultMaxResults),
		WorkspacesFile: getEnv("WORKSPACES_FILE", ""),
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		},
		Instrumentation: instrumentation.DefaultConfig(),
	}

	if err := cfg.loadWorkspaces(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetWorkspacesFile replaces the workspace entries with the contents of path.
func (c *Config) SetWorkspacesFile(path string) error {
	c.WorkspacesFile = path
	return c.loadWorkspaces()
}

// loadWorkspaces resolves entries from WorkspacesFile, then the WORKSPACES
// variable, then the built-in defaults.
func (c *Config) loadWorkspaces() error {
	if c.WorkspacesFile != "" {
		entries, err := workspace.LoadFile(c.WorkspacesFile)
		if err != nil {
			return err
		}
		c.Workspaces = entries
		return nil
	}

	if raw := os.Getenv("WORKSPACES"); raw != "" {
		entries, err := workspace.ParseEntries([]byte(raw))
		if err != nil {
			return fmt.Errorf("WORKSPACES: %w", err)
		}
		c.Workspaces = entries
		return nil
	}

	c.Workspaces = append([]workspace.Entry(nil), workspace.DefaultEntries...)
	return nil
}

// Registry builds a workspace registry from the configured entries.
func (c Config) Registry() *workspace.Registry {
	return workspace.NewRegistry(c.Workspaces...)
}

func (c Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("MAX_RESULTS must be positive, got %d", c.MaxResults)
	}
	for _, e := range c.Workspaces {
		if e.Name == "" || e.Prefix == "" {
			return fmt.Errorf("%w: empty name or prefix", workspace.ErrInvalidConfig)
		}
	}
	if err := c.Instrumentation.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}
	return nil
}

func (c GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
