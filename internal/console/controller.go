// Package console manages the launcher's console window: whether this
// process owns it, hiding it while the application runs, bringing it back
// to show a failure, and restoring the window of an already running
// launcher found by its title.
package console

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jeanhaley32/runtime-launcher/internal/logging"
)

// State is the visibility state of the console as seen by the controller.
type State int

const (
	// Unowned means the console belongs to an invoking shell and is left alone.
	Unowned State = iota
	// Visible means this process owns the console and it is shown.
	Visible
	// Hidden means this process owns the console and has hidden it.
	Hidden
)

func (s State) String() string {
	switch s {
	case Unowned:
		return "unowned"
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Host is the windowing capability the controller drives. Methods return
// an error wrapping errors.ErrUnsupported when the host lacks the feature.
type Host interface {
	// CursorAtOrigin reports whether the console cursor is at row 0, column 0.
	CursorAtOrigin() (bool, error)
	SetTitle(title string) error
	SetVisible(visible bool) error
	SetIcon() error
	// RestoreWindow finds a window titled exactly title and shows it.
	RestoreWindow(title string) (found bool, err error)
}

// WindowNotFoundError is returned in show-console mode when no window
// carries the configured title.
type WindowNotFoundError struct {
	Title string
}

func (e *WindowNotFoundError) Error() string {
	return fmt.Sprintf("no existing window titled %q", e.Title)
}

// Controller drives the console through its states.
type Controller struct {
	host   Host
	title  string
	out    io.Writer
	wait   func() error
	logger *slog.Logger
	state  State
}

// NewController observes the console once to decide ownership. A fresh
// console has its cursor at the origin; one inherited from a shell does not.
// wait blocks for a keypress and is used only when the console is owned.
func NewController(host Host, title string, out io.Writer, wait func() error, logger *slog.Logger) *Controller {
	c := &Controller{
		host:   host,
		title:  title,
		out:    out,
		wait:   wait,
		logger: logging.OrDiscard(logger),
		state:  Unowned,
	}

	atOrigin, err := host.CursorAtOrigin()
	if err != nil {
		c.logger.Debug("cannot read console cursor, assuming inherited console", "error", err)
	} else if atOrigin {
		c.state = Visible
	}
	c.logger.Debug("console ownership", "owned", c.Owned())
	return c
}

// Owned reports whether this process created its console.
func (c *Controller) Owned() bool {
	return c.state != Unowned
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Start titles, hides and decorates an owned console. An inherited
// console is not touched. Failures are logged, never returned.
func (c *Controller) Start() {
	if !c.Owned() {
		return
	}
	c.bestEffort("set title", c.host.SetTitle(c.title))
	if err := c.host.SetVisible(false); err != nil {
		c.bestEffort("hide console", err)
	} else {
		c.state = Hidden
	}
	c.bestEffort("set icon", c.host.SetIcon())
}

// ReportFailure writes the message to the console. An owned console is
// shown first and the call blocks for a keypress so the message can be
// read before the window closes.
func (c *Controller) ReportFailure(heading, message string) {
	if c.Owned() {
		if err := c.host.SetVisible(true); err != nil {
			c.bestEffort("restore console", err)
		} else {
			c.state = Visible
		}
	}

	fmt.Fprintln(c.out)
	if heading != "" {
		fmt.Fprintln(c.out, heading)
	}
	fmt.Fprintln(c.out, message)

	if c.Owned() && c.wait != nil {
		if err := c.wait(); err != nil {
			c.logger.Debug("keypress wait failed", "error", err)
		}
	}
}

// ShowExisting restores the window of a running launcher found by title.
func (c *Controller) ShowExisting() error {
	found, err := c.host.RestoreWindow(c.title)
	if err != nil {
		c.logger.Debug("window lookup failed", "title", c.title, "error", err)
	}
	if !found {
		return &WindowNotFoundError{Title: c.title}
	}
	c.logger.Info("restored existing console", "title", c.title)
	return nil
}

func (c *Controller) bestEffort(op string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrUnsupported):
		c.logger.Debug("console capability unsupported", "op", op)
	default:
		c.logger.Warn("console operation failed", "op", op, "error", err)
	}
}
