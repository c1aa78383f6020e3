package ticket

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/belaosa/ef-migration-tools/internal/domain"
)

// Inputs is everything resolution may look at. Resolution is a pure
// function of these values: no prompts, no retries, no ambient state.
type Inputs struct {
	Override   string // explicit --ticket flag, wins unconditionally
	Branch     string // current git branch, empty when unavailable
	Migrations []domain.Migration
}

// Resolver derives the token used to name the output SQL file.
// Candidates are evaluated in strict priority order and the first
// non-empty valid token wins:
//  1. explicit override
//  2. ticket pattern in the git branch name
//  3. ticket pattern in the latest migration name
//  4. the latest migration's 14-digit timestamp prefix
type Resolver struct {
	pattern *regexp.Regexp
}

// NewResolver compiles the ticket pattern. The two-letter-hyphen-digits
// convention is project-specific, which is why the pattern comes from
// configuration rather than being hard-coded.
func NewResolver(pattern string) (*Resolver, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: bad ticket pattern %q: %v", domain.ErrInvalidConfig, pattern, err)
	}
	return &Resolver{pattern: re}, nil
}

// Resolve returns the first candidate token, or ErrTicketResolution
// when no candidate yields one.
func (r *Resolver) Resolve(in Inputs) (string, error) {
	if in.Override != "" {
		if !ValidToken(in.Override) {
			return "", fmt.Errorf("%w: ticket override %q is not filesystem-safe", domain.ErrTicketResolution, in.Override)
		}
		return in.Override, nil
	}

	if token := r.match(in.Branch); token != "" {
		return token, nil
	}

	if len(in.Migrations) > 0 {
		latest := in.Migrations[len(in.Migrations)-1]
		if token := r.match(latest.Name); token != "" {
			return token, nil
		}
		return latest.Timestamp, nil
	}

	return "", fmt.Errorf("%w: no override, no branch match and no migrations", domain.ErrTicketResolution)
}

// match applies the pattern and normalizes the result to the canonical
// upper-hyphen form (os_1234 -> OS-1234).
func (r *Resolver) match(s string) string {
	if s == "" {
		return ""
	}
	m := r.pattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	var token string
	if len(m) >= 3 {
		token = strings.ToUpper(m[1]) + "-" + m[2]
	} else {
		token = strings.ToUpper(strings.ReplaceAll(m[0], "_", "-"))
	}
	if !ValidToken(token) {
		return ""
	}
	return token
}

// ValidToken reports whether a token is safe to use as a filename.
func ValidToken(token string) bool {
	if token == "" || token == "." || token == ".." {
		return false
	}
	return !strings.ContainsAny(token, `/\ `)
}
