package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/belaosa/ef-migration-tools/internal/config"
	"github.com/belaosa/ef-migration-tools/internal/domain"
	"github.com/belaosa/ef-migration-tools/internal/ticket"
)

var (
	mInitial = domain.Migration{Timestamp: "20240101000000", Name: "Initial"}
	mUsers   = domain.Migration{Timestamp: "20240201000000", Name: "AddUsers"}
	mOrders  = domain.Migration{Timestamp: "20240301000000", Name: "AddOrders"}
)

// fakeTool scripts the dotnet-ef surface: successive ListMigrations
// calls pop entries from lists.
type fakeTool struct {
	lists      [][]domain.Migration
	listCalls  int
	buildCalls int
	buildErr   error
	added      []string
	addErr     error
}

func (f *fakeTool) Build() error {
	f.buildCalls++
	return f.buildErr
}

func (f *fakeTool) ListMigrations() ([]domain.Migration, error) {
	f.listCalls++
	if len(f.lists) == 0 {
		return nil, nil
	}
	list := f.lists[0]
	if len(f.lists) > 1 {
		f.lists = f.lists[1:]
	}
	return list, nil
}

func (f *fakeTool) AddMigration(name string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, name)
	return nil
}

type fakeGenerator struct {
	pair       domain.MigrationPair
	idempotent bool
	outputPath string
	calls      int
	err        error
}

func (f *fakeGenerator) Generate(pair domain.MigrationPair, idempotent bool, outputPath string) error {
	f.calls++
	f.pair = pair
	f.idempotent = idempotent
	f.outputPath = outputPath
	return f.err
}

type fakeBranch string

func (f fakeBranch) CurrentBranch() string { return string(f) }

type nopReporter struct{}

func (nopReporter) Building()                                             {}
func (nopReporter) CreatingMigration(string)                              {}
func (nopReporter) MigrationCreated(string)                               {}
func (nopReporter) GeneratingScript(domain.MigrationPair, string, string) {}
func (nopReporter) ScriptWritten(string)                                  {}

func testConfig(flags config.Flags) *config.Config {
	return &config.Config{
		RepoPath:       "/repo",
		ProjectName:    "Api.Data",
		StartupProject: "Api.Host",
		MigrationsDir:  "Api.Data/Migrations",
		ScriptsDir:     "scripts",
		TicketPattern:  config.DefaultTicketPattern,
		Flags:          flags,
	}
}

func newPipeline(t *testing.T, cfg *config.Config, tool *fakeTool, gen *fakeGenerator, branch string) *Pipeline {
	t.Helper()
	resolver, err := ticket.NewResolver(cfg.TicketPattern)
	if err != nil {
		t.Fatalf("failed to build resolver: %v", err)
	}
	return New(cfg, tool, fakeBranch(branch), resolver, gen, nopReporter{})
}

func TestPipeline_DefaultPair(t *testing.T) {
	tool := &fakeTool{lists: [][]domain.Migration{{mInitial, mUsers, mOrders}}}
	gen := &fakeGenerator{}
	p := newPipeline(t, testConfig(config.Flags{}), tool, gen, "OS-42-fix")

	result, err := p.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tool.buildCalls != 1 {
		t.Errorf("expected one build, got %d", tool.buildCalls)
	}
	want := domain.MigrationPair{From: mUsers.ID(), To: mOrders.ID()}
	if gen.pair != want {
		t.Errorf("pair = %+v, want %+v", gen.pair, want)
	}
	if result.Ticket != "OS-42" {
		t.Errorf("ticket = %q, want OS-42", result.Ticket)
	}
	if result.OutputPath != "/repo/scripts/OS-42.sql" {
		t.Errorf("output path = %q", result.OutputPath)
	}
	if !result.ScriptWritten {
		t.Error("expected script to be written")
	}
}

func TestPipeline_SkipBuild(t *testing.T) {
	tool := &fakeTool{lists: [][]domain.Migration{{mInitial, mUsers}}}
	p := newPipeline(t, testConfig(config.Flags{SkipBuild: true}), tool, &fakeGenerator{}, "main")

	if _, err := p.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tool.buildCalls != 0 {
		t.Errorf("build should be skipped, ran %d times", tool.buildCalls)
	}
}

func TestPipeline_BuildFailureAborts(t *testing.T) {
	tool := &fakeTool{buildErr: fmt.Errorf("%w: dotnet build exited 1", domain.ErrBuildFailed)}
	p := newPipeline(t, testConfig(config.Flags{}), tool, &fakeGenerator{}, "main")

	_, err := p.Run()
	if !errors.Is(err, domain.ErrBuildFailed) {
		t.Fatalf("expected ErrBuildFailed, got %v", err)
	}
	if tool.listCalls != 0 {
		t.Error("nothing after a failed build should run")
	}
}

func TestPipeline_InsufficientMigrations(t *testing.T) {
	tests := []struct {
		name    string
		list    []domain.Migration
		wantErr error
	}{
		{name: "no migrations", list: nil, wantErr: domain.ErrNoMigrationsFound},
		{name: "single migration", list: []domain.Migration{mInitial}, wantErr: domain.ErrInsufficientMigrations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := &fakeTool{lists: [][]domain.Migration{tt.list}}
			gen := &fakeGenerator{}
			p := newPipeline(t, testConfig(config.Flags{SkipBuild: true}), tool, gen, "main")

			_, err := p.Run()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if gen.calls != 0 {
				t.Error("generator should not run")
			}
		})
	}
}

func TestPipeline_CreateThenScript(t *testing.T) {
	created := domain.Migration{Timestamp: "20240401000000", Name: "AddPayments"}
	tool := &fakeTool{lists: [][]domain.Migration{
		{mInitial, mUsers},
		{mInitial, mUsers, created},
	}}
	gen := &fakeGenerator{}
	p := newPipeline(t, testConfig(config.Flags{SkipBuild: true, Create: "AddPayments"}), tool, gen, "main")

	result, err := p.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tool.added) != 1 || tool.added[0] != "AddPayments" {
		t.Fatalf("expected one created migration, got %v", tool.added)
	}
	if tool.listCalls != 2 {
		t.Errorf("expected re-list after creation, got %d list calls", tool.listCalls)
	}
	// The new migration is the to side; from is the migration that was
	// last before creation.
	want := domain.MigrationPair{From: mUsers.ID(), To: created.ID()}
	if gen.pair != want {
		t.Errorf("pair = %+v, want %+v", gen.pair, want)
	}
	if result.Created != "AddPayments" {
		t.Errorf("result.Created = %q", result.Created)
	}
}

func TestPipeline_CreateOnly(t *testing.T) {
	tool := &fakeTool{lists: [][]domain.Migration{nil}}
	gen := &fakeGenerator{}
	p := newPipeline(t, testConfig(config.Flags{SkipBuild: true, Create: "Initial", NoScript: true}), tool, gen, "main")

	result, err := p.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tool.added) != 1 || tool.added[0] != "Initial" {
		t.Fatalf("expected one created migration, got %v", tool.added)
	}
	if gen.calls != 0 {
		t.Error("no script should be generated")
	}
	if result.ScriptWritten {
		t.Error("result should not report a written script")
	}
}

func TestPipeline_CreateFailureAborts(t *testing.T) {
	tool := &fakeTool{
		lists:  [][]domain.Migration{{mInitial, mUsers}},
		addErr: fmt.Errorf("%w: collision", domain.ErrMigrationCreationFailed),
	}
	gen := &fakeGenerator{}
	p := newPipeline(t, testConfig(config.Flags{SkipBuild: true, Create: "AddUsers"}), tool, gen, "main")

	_, err := p.Run()
	if !errors.Is(err, domain.ErrMigrationCreationFailed) {
		t.Fatalf("expected ErrMigrationCreationFailed, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("script generation must not run against an inconsistent migration set")
	}
}

func TestPipeline_ExplicitPair(t *testing.T) {
	list := []domain.Migration{mInitial, mUsers, mOrders}

	tests := []struct {
		name     string
		from, to string
		wantPair domain.MigrationPair
		wantErr  error
	}{
		{
			name: "full identifiers",
			from: mInitial.ID(), to: mOrders.ID(),
			wantPair: domain.MigrationPair{From: mInitial.ID(), To: mOrders.ID()},
		},
		{
			name: "bare names",
			from: "Initial", to: "AddUsers",
			wantPair: domain.MigrationPair{From: mInitial.ID(), To: mUsers.ID()},
		},
		{
			name: "beginning of history sentinel",
			from: domain.InitialMigration, to: mInitial.ID(),
			wantPair: domain.MigrationPair{From: domain.InitialMigration, To: mInitial.ID()},
		},
		{
			name: "unknown from",
			from: "20990101000000_Nope", to: mOrders.ID(),
			wantErr: domain.ErrMigrationNotFound,
		},
		{
			name: "unknown to",
			from: mInitial.ID(), to: "Nope",
			wantErr: domain.ErrMigrationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := &fakeTool{lists: [][]domain.Migration{list}}
			gen := &fakeGenerator{}
			flags := config.Flags{SkipBuild: true, From: tt.from, To: tt.to}
			p := newPipeline(t, testConfig(flags), tool, gen, "OS-1-x")

			_, err := p.Run()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gen.pair != tt.wantPair {
				t.Errorf("pair = %+v, want %+v", gen.pair, tt.wantPair)
			}
		})
	}
}

func TestPipeline_ExplicitPairWrongOrder(t *testing.T) {
	tool := &fakeTool{lists: [][]domain.Migration{{mInitial, mUsers}}}
	flags := config.Flags{SkipBuild: true, From: mUsers.ID(), To: mInitial.ID()}
	p := newPipeline(t, testConfig(flags), tool, &fakeGenerator{}, "main")

	_, err := p.Run()
	if err == nil {
		t.Fatal("expected a chronological-order error")
	}
}

func TestPipeline_TicketResolution(t *testing.T) {
	t.Run("override wins over branch", func(t *testing.T) {
		tool := &fakeTool{lists: [][]domain.Migration{{mInitial, mUsers}}}
		p := newPipeline(t, testConfig(config.Flags{SkipBuild: true, Ticket: "HOTFIX-1"}), tool, &fakeGenerator{}, "OS-42-fix")

		result, err := p.Run()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.OutputPath != "/repo/scripts/HOTFIX-1.sql" {
			t.Errorf("output path = %q", result.OutputPath)
		}
	})

	t.Run("migration name fallback without branch match", func(t *testing.T) {
		fix := domain.Migration{Timestamp: "20240401000000", Name: "OS_99_Fix"}
		tool := &fakeTool{lists: [][]domain.Migration{{mInitial, fix}}}
		p := newPipeline(t, testConfig(config.Flags{SkipBuild: true}), tool, &fakeGenerator{}, "main")

		result, err := p.Run()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Ticket != "OS-99" {
			t.Errorf("ticket = %q, want OS-99", result.Ticket)
		}
	})

	t.Run("timestamp fallback", func(t *testing.T) {
		tool := &fakeTool{lists: [][]domain.Migration{{mInitial, mUsers}}}
		p := newPipeline(t, testConfig(config.Flags{SkipBuild: true}), tool, &fakeGenerator{}, "main")

		result, err := p.Run()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Ticket != mUsers.Timestamp {
			t.Errorf("ticket = %q, want %s", result.Ticket, mUsers.Timestamp)
		}
	})
}

func TestPipeline_IdempotentForwarded(t *testing.T) {
	tool := &fakeTool{lists: [][]domain.Migration{{mInitial, mUsers}}}
	gen := &fakeGenerator{}
	p := newPipeline(t, testConfig(config.Flags{SkipBuild: true, Idempotent: true}), tool, gen, "main")

	if _, err := p.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gen.idempotent {
		t.Error("idempotent flag was not forwarded to the generator")
	}
}

func TestPipeline_GeneratorFailure(t *testing.T) {
	tool := &fakeTool{lists: [][]domain.Migration{{mInitial, mUsers}}}
	gen := &fakeGenerator{err: fmt.Errorf("%w: exit 1", domain.ErrScriptGenerationFailed)}
	p := newPipeline(t, testConfig(config.Flags{SkipBuild: true}), tool, gen, "main")

	_, err := p.Run()
	if !errors.Is(err, domain.ErrScriptGenerationFailed) {
		t.Fatalf("expected ErrScriptGenerationFailed, got %v", err)
	}
}
