package launcher

import (
	"errors"

	"github.com/jeanhaley32/runtime-launcher/internal/constants"
)

// Step is a stage of a launch, in execution order.
type Step int

const (
	StepStart Step = iota
	StepResolveRuntime
	StepResolveDocumentsDir
	StepBuildEnvironment
	StepResolveLocale
	StepInvokeChild
	StepDone
)

var stepNames = [...]string{
	StepStart:               "start",
	StepResolveRuntime:      "resolve runtime",
	StepResolveDocumentsDir: "resolve documents directory",
	StepBuildEnvironment:    "build environment",
	StepResolveLocale:       "resolve locale",
	StepInvokeChild:         "invoke child",
	StepDone:                "done",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// Outcome is either success or a failure carrying a message fit for the user.
type Outcome struct {
	step Step
	err  error
}

// Success is the outcome of a launch whose child exited zero.
func Success() Outcome {
	return Outcome{step: StepDone}
}

// Failure records err as the reason the launch stopped at step.
func Failure(step Step, err error) Outcome {
	return Outcome{step: step, err: err}
}

// Failed reports whether the launch failed.
func (o Outcome) Failed() bool {
	return o.err != nil
}

// Step returns the step the launch stopped at.
func (o Outcome) Step() Step {
	return o.step
}

// Err returns the underlying error, nil on success.
func (o Outcome) Err() error {
	return o.err
}

// Message returns the user-facing failure text, "" on success.
func (o Outcome) Message() string {
	if o.err == nil {
		return ""
	}
	return o.err.Error()
}

// Heading returns a short title shown above the message, if any.
func (o Outcome) Heading() string {
	var notFound *RuntimeNotFoundError
	if errors.As(o.err, &notFound) {
		return constants.MissingRuntimeHeading
	}
	return ""
}

// ExitCode maps the outcome to the process exit status.
func (o Outcome) ExitCode() int {
	if o.err != nil {
		return 1
	}
	return 0
}
