package pipeline

import (
	"fmt"

	"github.com/belaosa/ef-migration-tools/internal/config"
	"github.com/belaosa/ef-migration-tools/internal/domain"
	"github.com/belaosa/ef-migration-tools/internal/ticket"
)

// Tool is the dotnet-ef surface the pipeline drives.
type Tool interface {
	Build() error
	ListMigrations() ([]domain.Migration, error)
	AddMigration(name string) error
}

// Generator places the SQL artifact for a resolved pair.
type Generator interface {
	Generate(pair domain.MigrationPair, idempotent bool, outputPath string) error
}

// BranchReader reads the current git branch, empty when unavailable.
type BranchReader interface {
	CurrentBranch() string
}

// Reporter receives progress notifications as stages run.
type Reporter interface {
	Building()
	CreatingMigration(name string)
	MigrationCreated(name string)
	GeneratingScript(pair domain.MigrationPair, token, outputPath string)
	ScriptWritten(path string)
}

// Result is the terminal outcome of one successful invocation.
type Result struct {
	Created       string // name of the migration created, if any
	Pair          domain.MigrationPair
	Ticket        string
	OutputPath    string
	ScriptWritten bool
}

// Pipeline sequences build, optional migration creation, pair
// resolution and script generation. Every stage runs to completion
// before the next; the first failure aborts the run with the failing
// stage named. Nothing is retried - build, migration creation and
// script generation are not safe to blindly repeat.
type Pipeline struct {
	cfg      *config.Config
	tool     Tool
	branches BranchReader
	tickets  *ticket.Resolver
	gen      Generator
	report   Reporter
}

// New creates a Pipeline with its collaborators.
func New(cfg *config.Config, tool Tool, branches BranchReader, tickets *ticket.Resolver, gen Generator, report Reporter) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		tool:     tool,
		branches: branches,
		tickets:  tickets,
		gen:      gen,
		report:   report,
	}
}

// Run executes the pipeline for the configured invocation.
func (p *Pipeline) Run() (*Result, error) {
	flags := p.cfg.Flags
	result := &Result{}

	// 1. Build. Stale binaries would make the later steps emit wrong
	// or misleading SQL, so a failed build is terminal.
	if !flags.SkipBuild {
		p.report.Building()
		if err := p.tool.Build(); err != nil {
			return nil, fmt.Errorf("build: %w", err)
		}
	}

	// 2. List migrations up front so creation failures are not
	// conflated with listing failures and the prior latest migration
	// is known.
	migrations, err := p.tool.ListMigrations()
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	// 3. Create the requested migration; on success it becomes the
	// chronological last entry.
	if flags.Create != "" {
		p.report.CreatingMigration(flags.Create)
		if err := p.tool.AddMigration(flags.Create); err != nil {
			return nil, fmt.Errorf("create migration: %w", err)
		}
		result.Created = flags.Create
		p.report.MigrationCreated(flags.Create)

		// Create-only run: stop before pair resolution so creating the
		// very first migration of a project still succeeds.
		if flags.NoScript {
			return result, nil
		}

		migrations, err = p.tool.ListMigrations()
		if err != nil {
			return nil, fmt.Errorf("list migrations: %w", err)
		}
	}

	if flags.NoScript {
		return result, nil
	}

	// 4. Resolve the migration pair against the post-creation list.
	pair, err := p.resolvePair(migrations)
	if err != nil {
		return nil, fmt.Errorf("resolve migrations: %w", err)
	}
	result.Pair = pair

	// 5. Resolve the output name from the final migration list; an
	// explicit ticket override always wins.
	token, err := p.tickets.Resolve(ticket.Inputs{
		Override:   flags.Ticket,
		Branch:     p.branches.CurrentBranch(),
		Migrations: migrations,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve ticket: %w", err)
	}
	result.Ticket = token
	result.OutputPath = p.cfg.OutputPath(token)

	// 6. Generate and place the script.
	p.report.GeneratingScript(pair, token, result.OutputPath)
	if err := p.gen.Generate(pair, flags.Idempotent, result.OutputPath); err != nil {
		return nil, fmt.Errorf("generate script: %w", err)
	}
	result.ScriptWritten = true
	p.report.ScriptWritten(result.OutputPath)

	return result, nil
}

// resolvePair picks the (from, to) span. Explicit --from/--to are used
// directly after both are located in the migration list and checked
// for chronological order; otherwise the last two migrations form the
// pair.
func (p *Pipeline) resolvePair(migrations []domain.Migration) (domain.MigrationPair, error) {
	flags := p.cfg.Flags

	if flags.From != "" && flags.To != "" {
		from := flags.From
		if from != domain.InitialMigration {
			m, err := findMigration(migrations, from)
			if err != nil {
				return domain.MigrationPair{}, err
			}
			from = m.ID()
		}
		to, err := findMigration(migrations, flags.To)
		if err != nil {
			return domain.MigrationPair{}, err
		}
		pair := domain.MigrationPair{From: from, To: to.ID()}
		if err := pair.Validate(); err != nil {
			return domain.MigrationPair{}, err
		}
		return pair, nil
	}

	switch len(migrations) {
	case 0:
		return domain.MigrationPair{}, domain.ErrNoMigrationsFound
	case 1:
		return domain.MigrationPair{}, fmt.Errorf("%w: found only %s", domain.ErrInsufficientMigrations, migrations[0].ID())
	}

	return domain.MigrationPair{
		From: migrations[len(migrations)-2].ID(),
		To:   migrations[len(migrations)-1].ID(),
	}, nil
}

// findMigration locates a migration by full identifier or bare name.
func findMigration(migrations []domain.Migration, ref string) (domain.Migration, error) {
	for _, m := range migrations {
		if m.ID() == ref || m.Name == ref {
			return m, nil
		}
	}
	return domain.Migration{}, fmt.Errorf("%w: %s", domain.ErrMigrationNotFound, ref)
}
