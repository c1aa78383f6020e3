package commands

import (
	"github.com/spf13/cobra"

	"github.com/belaosa/ef-migration-tools/internal/cli"
	"github.com/belaosa/ef-migration-tools/internal/config"
	"github.com/belaosa/ef-migration-tools/internal/ui"
)

// ScriptsCommand handles the scripts command
type ScriptsCommand struct {
	flags *cli.Flags
}

// NewScriptsCommand creates a new ScriptsCommand
func NewScriptsCommand(flags *cli.Flags) *ScriptsCommand {
	return &ScriptsCommand{flags: flags}
}

// Execute opens the interactive viewer over the scripts directory.
func (sc *ScriptsCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := config.Load(sc.flags.EnvFile, sc.flags.ToConfigFlags())
	if err := cfg.Validate(); err != nil {
		return err
	}

	return ui.NewScriptViewer(cfg).View()
}
