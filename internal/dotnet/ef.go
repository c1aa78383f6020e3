package dotnet

import (
	"fmt"
	"strings"

	"github.com/belaosa/ef-migration-tools/internal/config"
	"github.com/belaosa/ef-migration-tools/internal/domain"
	"github.com/belaosa/ef-migration-tools/internal/execution"
	"github.com/belaosa/ef-migration-tools/internal/ui"
)

// Mode is how dotnet-ef is installed.
type Mode string

const (
	// ModeGlobal invokes dotnet-ef as "dotnet ef"
	ModeGlobal Mode = "global"
	// ModeLocal invokes dotnet-ef as "dotnet tool run dotnet-ef"
	ModeLocal Mode = "local"
)

// Client wraps the dotnet and dotnet-ef command lines. It shells out
// for every operation; nothing is cached between calls except the
// detected installation mode.
type Client struct {
	runner execution.Runner
	cfg    *config.Config
	mode   Mode
}

// NewClient creates a Client with a known installation mode.
func NewClient(runner execution.Runner, cfg *config.Config, mode Mode) *Client {
	return &Client{runner: runner, cfg: cfg, mode: mode}
}

// Detect probes for a global dotnet-ef install first, then a local
// tool-manifest install. Neither responding is a tool-not-found
// condition with install instructions.
func Detect(runner execution.Runner, cfg *config.Config) (*Client, error) {
	if res, err := runner.Run(cfg.RepoPath, "dotnet", "ef", "--version"); err == nil && res.Success() {
		return NewClient(runner, cfg, ModeGlobal), nil
	}
	if res, err := runner.Run(cfg.RepoPath, "dotnet", "tool", "run", "dotnet-ef", "--version"); err == nil && res.Success() {
		return NewClient(runner, cfg, ModeLocal), nil
	}
	return nil, fmt.Errorf("%w: dotnet-ef is not installed\n"+
		"Install globally:  dotnet tool install -g dotnet-ef\n"+
		"or as local tool:  dotnet new tool-manifest && dotnet tool install dotnet-ef",
		domain.ErrToolNotFound)
}

// Mode returns the detected installation mode.
func (c *Client) Mode() Mode {
	return c.mode
}

// efArgs builds the full dotnet argument list for an ef subcommand,
// including the project/startup-project/context selectors.
func (c *Client) efArgs(args ...string) []string {
	var full []string
	if c.mode == ModeLocal {
		full = append(full, "tool", "run", "dotnet-ef")
	} else {
		full = append(full, "ef")
	}
	full = append(full, args...)
	full = append(full, "--project", c.cfg.ProjectPath(), "--startup-project", c.cfg.StartupPath())
	if c.cfg.ContextName != "" {
		full = append(full, "--context", c.cfg.ContextName)
	}
	return full
}

// ListMigrations enumerates existing migrations in creation order.
// Parsing is deliberately permissive: dotnet-ef mixes build banners and
// warnings into its output and that format is not a stable contract,
// so lines that don't look like a migration identifier are skipped
// rather than treated as failures.
func (c *Client) ListMigrations() ([]domain.Migration, error) {
	spinner := ui.NewSpinner("Listing migrations ")
	res, err := c.runner.Run(c.cfg.RepoPath, "dotnet", c.efArgs("migrations", "list")...)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, fmt.Errorf("listing migrations: exit %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return ParseMigrationList(res.Stdout), nil
}

// ParseMigrationList extracts migration identifiers from the tool's
// line-oriented output, preserving order and skipping everything else.
func ParseMigrationList(output string) []domain.Migration {
	var migrations []domain.Migration
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Unapplied migrations are listed as "<id> (Pending)".
		line = strings.TrimSpace(strings.TrimSuffix(line, "(Pending)"))
		if m, ok := domain.ParseMigration(line); ok {
			migrations = append(migrations, m)
		}
	}
	return migrations
}

// AddMigration creates a new migration with the given name. On success
// the new migration is the chronological last entry of the next list.
func (c *Client) AddMigration(name string) error {
	spinner := ui.NewSpinner("Creating migration ")
	res, err := c.runner.Run(c.cfg.RepoPath, "dotnet", c.efArgs("migrations", "add", name)...)
	spinner.Stop()
	if err != nil {
		return err
	}
	if !res.Success() {
		return fmt.Errorf("%w: %s: %s", domain.ErrMigrationCreationFailed, name, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// Script emits the SQL covering the given migration pair on stdout.
// From is always passed explicitly; the beginning-of-history sentinel
// is "0", which dotnet-ef understands natively.
func (c *Client) Script(pair domain.MigrationPair, idempotent bool) (string, error) {
	args := []string{"migrations", "script", pair.From, pair.To}
	if idempotent {
		args = append(args, "--idempotent")
	}
	spinner := ui.NewSpinner("Generating script ")
	res, err := c.runner.Run(c.cfg.RepoPath, "dotnet", c.efArgs(args...)...)
	spinner.Stop()
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", fmt.Errorf("%w: exit %d: %s", domain.ErrScriptGenerationFailed, res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return res.Stdout, nil
}

// Build compiles the startup project, streaming compiler output so the
// user sees progress. Only the exit status matters to the pipeline.
func (c *Client) Build() error {
	res, err := c.runner.RunStreaming(c.cfg.RepoPath, "dotnet", "build", c.cfg.StartupPath())
	if err != nil {
		return err
	}
	if !res.Success() {
		return fmt.Errorf("%w: dotnet build exited %d", domain.ErrBuildFailed, res.ExitCode)
	}
	return nil
}
