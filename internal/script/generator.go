package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/belaosa/ef-migration-tools/internal/domain"
)

// Tool emits the SQL text for a migration pair.
type Tool interface {
	Script(pair domain.MigrationPair, idempotent bool) (string, error)
}

// Generator produces the SQL script artifact: it asks the tool for the
// script text and places it at the resolved output path.
type Generator struct {
	tool Tool
}

// NewGenerator creates a new Generator.
func NewGenerator(tool Tool) *Generator {
	return &Generator{tool: tool}
}

// Generate writes the script for pair to outputPath, creating the
// scripts directory if absent. An existing file at that path is
// overwritten without prompting, so reruns are idempotent on the
// filesystem side. The SQL text is written exactly as the tool
// returned it.
func (g *Generator) Generate(pair domain.MigrationPair, idempotent bool, outputPath string) error {
	sql, err := g.tool.Script(pair, idempotent)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("%w: create scripts dir: %v", domain.ErrScriptGenerationFailed, err)
	}
	if err := os.WriteFile(outputPath, []byte(sql), 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrScriptGenerationFailed, outputPath, err)
	}
	return nil
}
