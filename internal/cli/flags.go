package cli

import "github.com/belaosa/ef-migration-tools/internal/config"

// Flags holds command-line flags
type Flags struct {
	From       string
	To         string
	Ticket     string
	Context    string
	Create     string
	EnvFile    string
	Idempotent bool
	SkipBuild  bool
	NoScript   bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		From:       f.From,
		To:         f.To,
		Ticket:     f.Ticket,
		Context:    f.Context,
		Create:     f.Create,
		Idempotent: f.Idempotent,
		SkipBuild:  f.SkipBuild,
		NoScript:   f.NoScript,
	}
}
