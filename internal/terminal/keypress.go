package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// KeyWaiter blocks until the user presses a key.
type KeyWaiter struct {
	in     *os.File
	out    io.Writer
	prompt string
}

// NewKeyWaiter creates a KeyWaiter reading from in and prompting on out.
func NewKeyWaiter(in *os.File, out io.Writer, prompt string) *KeyWaiter {
	return &KeyWaiter{in: in, out: out, prompt: prompt}
}

// Wait prints the prompt and reads a single key. On a terminal the key is
// read in raw mode so no Enter is needed; otherwise a line is consumed.
func (k *KeyWaiter) Wait() error {
	if k.prompt != "" {
		fmt.Fprint(k.out, k.prompt)
	}

	if !IsTerminal(k.in) {
		_, err := bufio.NewReader(k.in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read input: %w", err)
		}
		return nil
	}

	fd := int(k.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprintln(k.out)
	}()

	buf := make([]byte, 1)
	if _, err := k.in.Read(buf); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read key: %w", err)
	}
	return nil
}
