package docsdir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanhaley32/runtime-launcher/internal/probe"
	"github.com/jeanhaley32/runtime-launcher/internal/testutil"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	return NewResolver(probe.New(probe.WithLogger(logger)), logger)
}

// cwd returns the working directory with symlinks resolved, so it can be
// compared against t.TempDir paths on systems where /tmp is a link.
func cwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	wd, err = filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	return wd
}

func evalPath(t *testing.T, p string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return resolved
}

func TestResolveOrCreate_ExistingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	existing := filepath.Join(home, "Documents", "App")
	require.NoError(t, os.MkdirAll(existing, 0755))

	r := newTestResolver(t)
	created := 0
	r.mkdir = func(string, os.FileMode) error {
		created++
		return nil
	}

	res, err := r.ResolveOrCreate([]string{"{home}/My Documents/App", "{home}/Documents/App"}, home)
	require.NoError(t, err)

	assert.Equal(t, existing, res.Path)
	assert.False(t, res.Created)
	assert.Zero(t, created)
	assert.Equal(t, evalPath(t, existing), cwd(t))
}

func TestResolveOrCreate_CreatesLastTried(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, "Documents"), 0755))

	r := newTestResolver(t)

	res, err := r.ResolveOrCreate([]string{"{home}/Other/App", "{home}/Documents/App"}, home)
	require.NoError(t, err)

	want := filepath.Join(home, "Documents", "App")
	assert.Equal(t, want, res.Path)
	assert.True(t, res.Created)

	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, evalPath(t, want), cwd(t))

	_, err = os.Stat(filepath.Join(home, "Other"))
	assert.True(t, os.IsNotExist(err), "only the last candidate may be created")
}

func TestResolveOrCreate_MissingParentFails(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	r := newTestResolver(t)

	_, err := r.ResolveOrCreate([]string{"{home}/no/such/parent/App"}, home)
	require.Error(t, err)

	var dirErr *DirectoryError
	require.True(t, errors.As(err, &dirErr))
	assert.Equal(t, "create", dirErr.Op)
	assert.Equal(t, filepath.Join(home, "no/such/parent/App"), dirErr.Path)
	assert.Contains(t, err.Error(), dirErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestResolveOrCreate_ChdirFailure(t *testing.T) {
	home := t.TempDir()
	r := newTestResolver(t)
	r.chdir = func(string) error { return os.ErrPermission }

	_, err := r.ResolveOrCreate([]string{"{home}"}, home)

	var dirErr *DirectoryError
	require.True(t, errors.As(err, &dirErr))
	assert.Equal(t, "chdir", dirErr.Op)
	assert.Equal(t, home, dirErr.Path)
	assert.Contains(t, err.Error(), "could not change")
}

func TestResolveOrCreate_NoTemplates(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.ResolveOrCreate(nil, "/home/nobody")

	assert.True(t, errors.Is(err, ErrNoTemplates))
}

func TestResolveOrCreate_Idempotent(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	templates := []string{"{home}/App"}

	r := newTestResolver(t)
	mkdirCalls := 0
	r.mkdir = func(path string, perm os.FileMode) error {
		mkdirCalls++
		return os.Mkdir(path, perm)
	}

	first, err := r.ResolveOrCreate(templates, home)
	require.NoError(t, err)
	second, err := r.ResolveOrCreate(templates, home)
	require.NoError(t, err)

	assert.Equal(t, first.Path, second.Path)
	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, 1, mkdirCalls)
}
