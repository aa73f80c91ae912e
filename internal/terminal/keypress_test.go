package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInput(t *testing.T, content string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stdin")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestKeyWaiter_NonTerminalConsumesLine(t *testing.T) {
	in := openInput(t, "\n")
	var out bytes.Buffer

	err := NewKeyWaiter(in, &out, "Press any key to exit...").Wait()

	require.NoError(t, err)
	assert.Equal(t, "Press any key to exit...", out.String())
}

func TestKeyWaiter_EOFIsNotAnError(t *testing.T) {
	in := openInput(t, "")
	var out bytes.Buffer

	assert.NoError(t, NewKeyWaiter(in, &out, "").Wait())
	assert.Empty(t, out.String())
}

func TestIsTerminal_RegularFile(t *testing.T) {
	assert.False(t, IsTerminal(openInput(t, "")))
}
