package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/belaosa/ef-migration-tools/internal/domain"
)

type fakeTool struct {
	sql        string
	err        error
	pair       domain.MigrationPair
	idempotent bool
}

func (f *fakeTool) Script(pair domain.MigrationPair, idempotent bool) (string, error) {
	f.pair = pair
	f.idempotent = idempotent
	return f.sql, f.err
}

func TestGenerator_Generate(t *testing.T) {
	pair := domain.MigrationPair{From: "20240101000000_A", To: "20240201000000_B"}

	t.Run("writes SQL verbatim and creates the directory", func(t *testing.T) {
		tool := &fakeTool{sql: "BEGIN TRANSACTION;\n-- migration\nCOMMIT;\n"}
		gen := NewGenerator(tool)
		outputPath := filepath.Join(t.TempDir(), "scripts", "OS-42.sql")

		if err := gen.Generate(pair, false, outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if string(data) != tool.sql {
			t.Errorf("written SQL differs from tool output:\n%q", string(data))
		}
		if tool.pair != pair {
			t.Errorf("pair not forwarded: %+v", tool.pair)
		}
	})

	t.Run("forwards idempotent flag", func(t *testing.T) {
		tool := &fakeTool{sql: "--"}
		gen := NewGenerator(tool)

		if err := gen.Generate(pair, true, filepath.Join(t.TempDir(), "x.sql")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !tool.idempotent {
			t.Error("idempotent flag was not forwarded")
		}
	})

	t.Run("overwrites an existing file byte for byte", func(t *testing.T) {
		tool := &fakeTool{sql: "SELECT 1;\n"}
		gen := NewGenerator(tool)
		outputPath := filepath.Join(t.TempDir(), "OS-42.sql")

		if err := os.WriteFile(outputPath, []byte("stale content"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		if err := gen.Generate(pair, false, outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first, _ := os.ReadFile(outputPath)

		// A rerun with unchanged inputs produces an identical file.
		if err := gen.Generate(pair, false, outputPath); err != nil {
			t.Fatalf("unexpected error on rerun: %v", err)
		}
		second, _ := os.ReadFile(outputPath)

		if string(first) != tool.sql || string(first) != string(second) {
			t.Errorf("rerun not byte-identical: %q vs %q", first, second)
		}
	})

	t.Run("tool failure writes nothing", func(t *testing.T) {
		tool := &fakeTool{err: domain.ErrScriptGenerationFailed}
		gen := NewGenerator(tool)
		outputPath := filepath.Join(t.TempDir(), "OS-42.sql")

		err := gen.Generate(pair, false, outputPath)
		if !errors.Is(err, domain.ErrScriptGenerationFailed) {
			t.Fatalf("expected ErrScriptGenerationFailed, got %v", err)
		}
		if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
			t.Error("no file should exist after a failed generation")
		}
	})
}
