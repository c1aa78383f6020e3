package commands

import (
	"github.com/spf13/cobra"

	"github.com/belaosa/ef-migration-tools/internal/cli"
)

// CreateCommand handles the create command
type CreateCommand struct {
	flags *cli.Flags
}

// NewCreateCommand creates a new CreateCommand
func NewCreateCommand(flags *cli.Flags) *CreateCommand {
	return &CreateCommand{flags: flags}
}

// Execute creates the named migration and, unless --no-script was
// given, generates its script. Same pipeline as generate --create.
func (cc *CreateCommand) Execute(cmd *cobra.Command, args []string) error {
	cc.flags.Create = args[0]

	p, _, err := buildPipeline(cc.flags)
	if err != nil {
		return err
	}
	_, err = p.Run()
	return err
}
