package domain

import "errors"

// Every fatal condition the pipeline can surface. Each aborts the run
// immediately; none are retried, since build, migration creation and
// script generation are not safe to blindly repeat.
var (
	// ErrToolNotFound means dotnet or dotnet-ef could not be located or
	// launched at all, as opposed to exiting nonzero.
	ErrToolNotFound = errors.New("tool not found")

	// ErrBuildFailed means dotnet build exited nonzero.
	ErrBuildFailed = errors.New("build failed")

	// ErrNoMigrationsFound means the project has no migrations at all.
	ErrNoMigrationsFound = errors.New("no migrations found")

	// ErrInsufficientMigrations means fewer than two migrations exist
	// and no explicit from/to pair was given.
	ErrInsufficientMigrations = errors.New("need at least two migrations")

	// ErrMigrationNotFound means an explicit --from/--to identifier is
	// absent from the migration list.
	ErrMigrationNotFound = errors.New("migration not found")

	// ErrMigrationCreationFailed means dotnet-ef migrations add exited
	// nonzero (name collision, rejected model changes, ...).
	ErrMigrationCreationFailed = errors.New("migration creation failed")

	// ErrTicketResolution means no candidate produced a usable token
	// for the output filename.
	ErrTicketResolution = errors.New("could not resolve a ticket token")

	// ErrScriptGenerationFailed means dotnet-ef migrations script
	// exited nonzero.
	ErrScriptGenerationFailed = errors.New("script generation failed")

	// ErrInvalidConfig means required configuration is missing or
	// malformed; reported before the pipeline starts.
	ErrInvalidConfig = errors.New("invalid configuration")
)
