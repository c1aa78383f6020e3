package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// InitialMigration is the "beginning of history" sentinel accepted by
// dotnet-ef as the from side when scripting the very first migration.
const InitialMigration = "0"

// migrationRe matches the canonical migration identifier:
// a 14-digit timestamp prefix followed by an underscore and the name.
var migrationRe = regexp.MustCompile(`^(\d{14})_(.+)$`)

// Migration is a single schema migration managed by dotnet-ef.
// The timestamp prefix is lexicographically and chronologically ordered.
type Migration struct {
	Timestamp string // 14 digits, e.g. "20240101000000"
	Name      string // e.g. "AddUsersTable"
}

// ParseMigration parses a canonical migration identifier.
// Returns false for anything that doesn't match the pattern.
func ParseMigration(id string) (Migration, bool) {
	m := migrationRe.FindStringSubmatch(strings.TrimSpace(id))
	if m == nil {
		return Migration{}, false
	}
	return Migration{Timestamp: m[1], Name: m[2]}, true
}

// ID returns the canonical <timestamp>_<Name> identifier.
func (m Migration) ID() string {
	return m.Timestamp + "_" + m.Name
}

// Before reports whether m chronologically precedes other.
func (m Migration) Before(other Migration) bool {
	return m.Timestamp < other.Timestamp
}

// MigrationPair is the ordered (from, to) span a script covers.
// From may be InitialMigration; To is always a concrete identifier.
type MigrationPair struct {
	From string
	To   string
}

// Validate rejects pairs whose from side does not precede the to side.
// The initial-migration sentinel precedes everything.
func (p MigrationPair) Validate() error {
	if p.To == "" {
		return fmt.Errorf("%w: empty to migration", ErrMigrationNotFound)
	}
	if p.From == InitialMigration {
		return nil
	}
	from, okFrom := ParseMigration(p.From)
	to, okTo := ParseMigration(p.To)
	if okFrom && okTo && !from.Before(to) {
		return fmt.Errorf("migration %q does not precede %q", p.From, p.To)
	}
	return nil
}
