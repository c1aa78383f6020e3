package ui

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/belaosa/ef-migration-tools/internal/config"
	"github.com/belaosa/ef-migration-tools/internal/domain"
)

// Formatter prints pipeline progress and results to the terminal.
type Formatter struct {
	cfg *config.Config
}

// NewFormatter creates a new Formatter.
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// Building announces the build stage.
func (f *Formatter) Building() {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║                  Building Startup Project                  ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")
	color.White("Project: %s\n", f.cfg.StartupPath())
}

// CreatingMigration announces the migration-creation stage.
func (f *Formatter) CreatingMigration(name string) {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║                   Creating New Migration                   ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Repo:\t%s\n", f.cfg.RepoPath)
	fmt.Fprintf(w, "Project:\t%s\n", f.cfg.ProjectPath())
	fmt.Fprintf(w, "Startup:\t%s\n", f.cfg.StartupPath())
	fmt.Fprintf(w, "Migration name:\t%s\n", name)
	if f.cfg.ContextName != "" {
		fmt.Fprintf(w, "Context:\t%s\n", f.cfg.ContextName)
	}
	w.Flush()
	fmt.Println()
}

// MigrationCreated reports a successfully created migration.
func (f *Formatter) MigrationCreated(name string) {
	color.Green("✓ Migration created: %s\n", name)
}

// GeneratingScript prints the resolved generation summary before the
// tool is invoked, so a failing run still shows what was attempted.
func (f *Formatter) GeneratingScript(pair domain.MigrationPair, token, outputPath string) {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║                   Generating SQL Script                    ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Repo:\t%s\n", f.cfg.RepoPath)
	fmt.Fprintf(w, "Project:\t%s\n", f.cfg.ProjectPath())
	fmt.Fprintf(w, "Startup:\t%s\n", f.cfg.StartupPath())
	fmt.Fprintf(w, "From migration:\t%s\n", pair.From)
	fmt.Fprintf(w, "To migration:\t%s\n", pair.To)
	fmt.Fprintf(w, "Ticket:\t%s\n", token)
	fmt.Fprintf(w, "Output SQL:\t%s\n", outputPath)
	if f.cfg.ContextName != "" {
		fmt.Fprintf(w, "Context:\t%s\n", f.cfg.ContextName)
	}
	if f.cfg.Flags.Idempotent {
		fmt.Fprintf(w, "Idempotent:\tyes\n")
	}
	w.Flush()
	fmt.Println()
}

// ScriptWritten reports the placed artifact.
func (f *Formatter) ScriptWritten(path string) {
	color.Green("\n✓ SQL script generated: %s\n", path)
}

// PrintMigrationList prints existing migrations, latest highlighted.
func (f *Formatter) PrintMigrationList(migrations []domain.Migration) {
	if len(migrations) == 0 {
		color.Yellow("No migrations found")
		return
	}

	color.White("Found %d migration(s):\n\n", len(migrations))
	for i, m := range migrations {
		if i == len(migrations)-1 {
			color.Green("  %3d. %s  (latest)", i+1, m.ID())
		} else {
			fmt.Printf("  %3d. %s\n", i+1, m.ID())
		}
	}
}
