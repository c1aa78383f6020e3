package commands

import (
	"github.com/spf13/cobra"

	"github.com/belaosa/ef-migration-tools/internal/cli"
	"github.com/belaosa/ef-migration-tools/internal/config"
	"github.com/belaosa/ef-migration-tools/internal/dotnet"
	"github.com/belaosa/ef-migration-tools/internal/execution"
	"github.com/belaosa/ef-migration-tools/internal/git"
	"github.com/belaosa/ef-migration-tools/internal/pipeline"
	"github.com/belaosa/ef-migration-tools/internal/script"
	"github.com/belaosa/ef-migration-tools/internal/ticket"
	"github.com/belaosa/ef-migration-tools/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Generate *GenerateCommand
	Create   *CreateCommand
	List     *ListCommand
	Scripts  *ScriptsCommand
}

// NewCommands creates all commands. Configuration is resolved per
// invocation (after flag parsing), so commands carry the flags record
// and build their collaborators when they execute.
func NewCommands(flags *cli.Flags) *Commands {
	return &Commands{
		Generate: NewGenerateCommand(flags),
		Create:   NewCreateCommand(flags),
		List:     NewListCommand(flags),
		Scripts:  NewScriptsCommand(flags),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().StringVar(&flags.EnvFile, "env", config.DefaultEnvFile, "Path to .env file")

	// Generate command
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a SQL script from the last two migrations",
		Long: `Build the project, resolve the migration pair (last two by default),
derive the output name from the ticket token and generate the SQL script.
With --create, a new migration is added first and becomes the script's to side.`,
		RunE: c.Generate.Execute,
	}
	generateCmd.Flags().StringVar(&flags.From, "from", "", "Override 'from' migration id (use 0 for the beginning of history)")
	generateCmd.Flags().StringVar(&flags.To, "to", "", "Override 'to' migration id")
	generateCmd.Flags().StringVar(&flags.Ticket, "ticket", "", "Override ticket token for the output filename")
	generateCmd.Flags().StringVar(&flags.Context, "context", "", "DbContext name (if multiple contexts exist)")
	generateCmd.Flags().StringVar(&flags.Create, "create", "", "Create a new migration before generating the script")
	generateCmd.Flags().BoolVar(&flags.Idempotent, "idempotent", false, "Generate an idempotent script")
	generateCmd.Flags().BoolVar(&flags.SkipBuild, "skip-build", false, "Skip the dotnet build step")
	generateCmd.Flags().BoolVar(&flags.NoScript, "no-script", false, "With --create, stop after creating the migration")
	rootCmd.AddCommand(generateCmd)

	// Create command (shorthand for generate --create NAME)
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new migration, then generate its script",
		Long:  "Add a new migration with the given name and generate the SQL script from the previous latest migration to it. Use --no-script to only create the migration.",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Create.Execute,
	}
	createCmd.Flags().StringVar(&flags.Ticket, "ticket", "", "Override ticket token for the output filename")
	createCmd.Flags().StringVar(&flags.Context, "context", "", "DbContext name (if multiple contexts exist)")
	createCmd.Flags().BoolVar(&flags.Idempotent, "idempotent", false, "Generate an idempotent script")
	createCmd.Flags().BoolVar(&flags.SkipBuild, "skip-build", false, "Skip the dotnet build step")
	createCmd.Flags().BoolVar(&flags.NoScript, "no-script", false, "Stop after creating the migration")
	rootCmd.AddCommand(createCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List existing migrations",
		Long:  "Enumerate the project's migrations in creation order, latest highlighted",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVar(&flags.Context, "context", "", "DbContext name (if multiple contexts exist)")
	rootCmd.AddCommand(listCmd)

	// Scripts command
	scriptsCmd := &cobra.Command{
		Use:   "scripts",
		Short: "Browse generated SQL scripts interactively",
		Long:  "Display previously generated SQL scripts from the scripts directory in an interactive viewer",
		RunE:  c.Scripts.Execute,
	}
	rootCmd.AddCommand(scriptsCmd)
}

// buildPipeline resolves configuration and wires the pipeline with its
// real collaborators: exec-backed runner, detected dotnet-ef client,
// git branch reader, ticket resolver and script generator.
func buildPipeline(flags *cli.Flags) (*pipeline.Pipeline, *config.Config, error) {
	cfg := config.Load(flags.EnvFile, flags.ToConfigFlags())
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	runner := execution.NewExecRunner()
	ef, err := dotnet.Detect(runner, cfg)
	if err != nil {
		return nil, nil, err
	}
	resolver, err := ticket.NewResolver(cfg.TicketPattern)
	if err != nil {
		return nil, nil, err
	}

	p := pipeline.New(
		cfg,
		ef,
		git.NewBranchReader(runner, cfg.RepoPath),
		resolver,
		script.NewGenerator(ef),
		ui.NewFormatter(cfg),
	)
	return p, cfg, nil
}
