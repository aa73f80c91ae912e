//go:build !windows

package console

import (
	"errors"
	"fmt"
)

// TerminalHost is the host outside Windows. A terminal there always
// belongs to the invoking shell, so the launcher never owns it.
type TerminalHost struct{}

// NewHost returns the host for the running platform.
func NewHost() Host {
	return TerminalHost{}
}

func (TerminalHost) CursorAtOrigin() (bool, error) {
	return false, nil
}

func (TerminalHost) SetTitle(string) error {
	return fmt.Errorf("console title: %w", errors.ErrUnsupported)
}

func (TerminalHost) SetVisible(bool) error {
	return fmt.Errorf("console visibility: %w", errors.ErrUnsupported)
}

func (TerminalHost) SetIcon() error {
	return fmt.Errorf("console icon: %w", errors.ErrUnsupported)
}

func (TerminalHost) RestoreWindow(string) (bool, error) {
	return false, fmt.Errorf("window lookup: %w", errors.ErrUnsupported)
}
