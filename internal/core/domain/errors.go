package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidIdentity is returned when a case identity string cannot be parsed.
	ErrInvalidIdentity = zerr.New("invalid case identity")

	// ErrNoSpecsAtLine is returned when a line-based lookup matches no declaration.
	ErrNoSpecsAtLine = zerr.New("no specs found at the specified line")

	// ErrConfigNotFound is returned when no sift.yaml can be located.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrModuleNotFound is returned when a spec module path does not exist.
	ErrModuleNotFound = zerr.New("spec module not found")
)

// CompileError reports that a module failed to compile or execute. It is
// recovered locally by falling back to static parsing and is never
// propagated as a hard discovery error.
type CompileError struct {
	Path       string
	Diagnostic string
}

func (e *CompileError) Error() string {
	return "module failed to compile: " + e.Path
}
