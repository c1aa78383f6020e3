package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/belaosa/ef-migration-tools/internal/domain"
)

// Config holds the resolved configuration for one invocation.
// Built once from the .env file plus command flags, never mutated
// afterwards; inner components receive it by reference and only read.
type Config struct {
	// Project settings (from .env)
	RepoPath       string
	ProjectName    string
	StartupProject string
	MigrationsDir  string
	ScriptsDir     string
	ContextName    string

	// Output-name settings
	TicketPattern string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	From       string
	To         string
	Ticket     string
	Context    string
	Idempotent bool
	SkipBuild  bool
	Create     string
	NoScript   bool
}

// Load reads the .env file at envPath and builds a Config with flag
// overrides applied. A missing .env file is not fatal here; required
// keys may still come from the process environment. Validate reports
// what is actually missing.
func Load(envPath string, flags Flags) *Config {
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	cfg := &Config{
		RepoPath:       os.Getenv("REPO_PATH"),
		ProjectName:    os.Getenv("PROJECT_NAME"),
		StartupProject: os.Getenv("STARTUP_PROJECT"),
		MigrationsDir:  os.Getenv("MIGRATIONS_DIR"),
		ScriptsDir:     os.Getenv("SCRIPTS_DIR"),
		ContextName:    os.Getenv("DBCONTEXT_NAME"),
		TicketPattern:  os.Getenv("TICKET_PATTERN"),
		Flags:          flags,
	}
	if cfg.TicketPattern == "" {
		cfg.TicketPattern = DefaultTicketPattern
	}
	if flags.Context != "" {
		cfg.ContextName = flags.Context
	}
	if abs, err := filepath.Abs(cfg.RepoPath); err == nil && cfg.RepoPath != "" {
		cfg.RepoPath = abs
	}
	return cfg
}

// Validate checks that every required field is present.
func (c *Config) Validate() error {
	var missing []string
	required := []struct {
		key   string
		value string
	}{
		{"REPO_PATH", c.RepoPath},
		{"PROJECT_NAME", c.ProjectName},
		{"STARTUP_PROJECT", c.StartupProject},
		{"MIGRATIONS_DIR", c.MigrationsDir},
		{"SCRIPTS_DIR", c.ScriptsDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}

// ProjectPath returns the migrations project path inside the repo.
func (c *Config) ProjectPath() string {
	return filepath.Join(c.RepoPath, c.ProjectName)
}

// StartupPath returns the startup project path inside the repo.
func (c *Config) StartupPath() string {
	return filepath.Join(c.RepoPath, c.StartupProject)
}

// MigrationsPath returns the migrations directory inside the repo.
func (c *Config) MigrationsPath() string {
	return filepath.Join(c.RepoPath, c.MigrationsDir)
}

// ScriptsPath returns the generated-scripts directory inside the repo.
func (c *Config) ScriptsPath() string {
	if filepath.IsAbs(c.ScriptsDir) {
		return c.ScriptsDir
	}
	return filepath.Join(c.RepoPath, c.ScriptsDir)
}

// OutputPath returns the script file path for a resolved ticket token.
func (c *Config) OutputPath(token string) string {
	return filepath.Join(c.ScriptsPath(), token+".sql")
}
