package commands

import (
	"github.com/spf13/cobra"

	"github.com/belaosa/ef-migration-tools/internal/cli"
)

// GenerateCommand handles the generate command
type GenerateCommand struct {
	flags *cli.Flags
}

// NewGenerateCommand creates a new GenerateCommand
func NewGenerateCommand(flags *cli.Flags) *GenerateCommand {
	return &GenerateCommand{flags: flags}
}

// Execute runs the pipeline for the current flags.
func (gc *GenerateCommand) Execute(cmd *cobra.Command, args []string) error {
	p, _, err := buildPipeline(gc.flags)
	if err != nil {
		return err
	}
	_, err = p.Run()
	return err
}
