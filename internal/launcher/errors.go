package launcher

import (
	"fmt"
	"strings"
)

// RuntimeNotFoundError is returned when no runtime candidate exists.
type RuntimeNotFoundError struct {
	Candidates []string
}

func (e *RuntimeNotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return "Could not find the runtime: no locations are configured."
	}
	return fmt.Sprintf("Could not find the runtime in any of the expected places:\n  - %s",
		strings.Join(e.Candidates, "\n  - "))
}

// ChildProcessError is returned when the interpreter could not be started
// or exited with a nonzero status. The two cases are not distinguished.
type ChildProcessError struct {
	CommandLine string
	// ExitCode is the child's exit status, or -1 if it never ran.
	ExitCode int
	Err      error
}

func (e *ChildProcessError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s failed with exit status %d", e.CommandLine, e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %v", e.CommandLine, e.Err)
}

func (e *ChildProcessError) Unwrap() error {
	return e.Err
}
