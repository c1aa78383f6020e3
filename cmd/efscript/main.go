package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/belaosa/ef-migration-tools/internal/cli"
	"github.com/belaosa/ef-migration-tools/internal/cli/commands"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "efscript",
		Short:   "EF Core migration script generator",
		Long:    `Generate SQL scripts between EF Core migrations and optionally create new migrations first. Reads project configuration from a .env file; output filenames are derived from the ticket token in the git branch or migration name.`,
		Version: version,
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands and register them
	cmds := commands.NewCommands(&flags)
	cmds.Register(rootCmd, &flags)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
