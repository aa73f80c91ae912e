package probe

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanhaley32/runtime-launcher/internal/testutil"
)

// countingStat reports existence from a fixed set and records every call.
type countingStat struct {
	existing map[string]bool
	calls    []string
}

func (c *countingStat) stat(path string) error {
	c.calls = append(c.calls, path)
	if c.existing[path] {
		return nil
	}
	return fs.ErrNotExist
}

func TestFindFirstExisting(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		existing   []string
		wantPath   string
		wantFound  bool
		wantCalls  []string
	}{
		{
			name:       "first candidate exists",
			candidates: []string{"/a", "/b", "/c"},
			existing:   []string{"/a", "/b"},
			wantPath:   "/a",
			wantFound:  true,
			wantCalls:  []string{"/a"},
		},
		{
			name:       "second candidate exists",
			candidates: []string{"/a", "/b", "/c"},
			existing:   []string{"/b", "/c"},
			wantPath:   "/b",
			wantFound:  true,
			wantCalls:  []string{"/a", "/b"},
		},
		{
			name:       "none exist",
			candidates: []string{"/missing1", "/missing2"},
			wantCalls:  []string{"/missing1", "/missing2"},
		},
		{
			name:      "empty list",
			wantCalls: nil,
		},
		{
			name:       "empty entry terminates the list",
			candidates: []string{"/a", "", "/b"},
			existing:   []string{"/b"},
			wantCalls:  []string{"/a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &countingStat{existing: map[string]bool{}}
			for _, p := range tt.existing {
				fake.existing[p] = true
			}
			p := New(WithStat(fake.stat), WithLogger(testutil.NewTestLogger(t)))

			res := p.FindFirstExisting(tt.candidates, "")

			assert.Equal(t, tt.wantFound, res.Found)
			assert.Equal(t, tt.wantPath, res.Path)
			assert.Equal(t, tt.wantCalls, fake.calls)
		})
	}
}

func TestFindFirstExisting_Substitution(t *testing.T) {
	fake := &countingStat{existing: map[string]bool{"/home/ann/Documents/App": true}}
	p := New(WithStat(fake.stat))

	res := p.FindFirstExisting([]string{"{home}/My Documents/App", "{home}/Documents/App"}, "/home/ann")

	require.True(t, res.Found)
	assert.Equal(t, "/home/ann/Documents/App", res.Path)
	assert.Equal(t, []string{"/home/ann/My Documents/App", "/home/ann/Documents/App"}, fake.calls)
}

func TestFindFirstExisting_LastTried(t *testing.T) {
	p := New(WithStat(func(string) error { return errors.New("nope") }))

	res := p.FindFirstExisting([]string{"{home}/one", "{home}/two"}, "/h")

	assert.False(t, res.Found)
	assert.Equal(t, "/h/two", res.LastTried)
}

func TestFindFirstExisting_RealFilesystem(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "runtime.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	p := New()

	res := p.FindFirstExisting([]string{filepath.Join(dir, "missing"), file, dir}, "")
	require.True(t, res.Found)
	assert.Equal(t, file, res.Path)

	res = p.FindFirstExisting([]string{dir}, "")
	require.True(t, res.Found)
	assert.Equal(t, dir, res.Path)
}

func TestExpand(t *testing.T) {
	assert.Equal(t, "/u/Docs", Expand("{home}/Docs", "/u"))
	assert.Equal(t, "/abs/path", Expand("/abs/path", "/u"))
}
