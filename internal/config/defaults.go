package config

const (
	// DefaultEnvFile is the default .env file path
	DefaultEnvFile = ".env"
	// DefaultTicketPattern matches issue-tracker references like OS-1234
	// or OS_1234. The letter/digit bounds are a project convention, so
	// the pattern is overridable via TICKET_PATTERN.
	// No trailing \b: migration names like OS_99_Fix put a word
	// character right after the digits.
	DefaultTicketPattern = `(?i)\b([A-Za-z]{2})[-_](\d+)`
)
