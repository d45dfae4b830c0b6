package feedback

// ExitCode is the exit code of the process.
type ExitCode int

const (
	// Success (0 is the no-error return code in Unix)
	Success ExitCode = iota

	// ErrGeneric Generic error (1 is the reserved "catchall" code in Unix)
	ErrGeneric

	_ // (2 Is reserved in Unix)
	_ // 3
	_ // 4
	_ // 5
	_ // 6

	// ErrBadArgument is returned when the arguments are not valid (7)
	ErrBadArgument

	_ // 8
	_ // 9

	// ErrTargetFailed is returned when an action of a custom target fails (10)
	ErrTargetFailed
)
