package commands

import (
	"github.com/spf13/cobra"

	"github.com/belaosa/ef-migration-tools/internal/cli"
	"github.com/belaosa/ef-migration-tools/internal/config"
	"github.com/belaosa/ef-migration-tools/internal/dotnet"
	"github.com/belaosa/ef-migration-tools/internal/execution"
	"github.com/belaosa/ef-migration-tools/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	flags *cli.Flags
}

// NewListCommand creates a new ListCommand
func NewListCommand(flags *cli.Flags) *ListCommand {
	return &ListCommand{flags: flags}
}

// Execute prints the migrations in creation order.
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := config.Load(lc.flags.EnvFile, lc.flags.ToConfigFlags())
	if err := cfg.Validate(); err != nil {
		return err
	}

	runner := execution.NewExecRunner()
	ef, err := dotnet.Detect(runner, cfg)
	if err != nil {
		return err
	}

	migrations, err := ef.ListMigrations()
	if err != nil {
		return err
	}

	ui.NewFormatter(cfg).PrintMigrationList(migrations)
	return nil
}
