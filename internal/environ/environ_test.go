package environ

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanhaley32/runtime-launcher/internal/constants"
	"github.com/jeanhaley32/runtime-launcher/internal/platform"
)

func TestBuild_AlwaysSetKeys(t *testing.T) {
	b := NewBuilder([]string{"PATH=/usr/bin", "HOME=/home/ann"}, platform.Linux)

	env := b.Build("/opt/rt", "./launcher", "")

	assert.Equal(t, "/opt/rt/bin"+string(os.PathListSeparator)+"/usr/bin", env[constants.PathEnvVar])
	assert.Equal(t, "utf-8", env[constants.IOEncodingEnvVar])
	assert.Equal(t, "./launcher", env[constants.LauncherEnvVar])
	_, hasLocale := env[constants.LocaleEnvVar]
	assert.False(t, hasLocale)
	assert.Len(t, env, 3)
}

func TestBuild_LocaleOnlyWhenNonEmpty(t *testing.T) {
	b := NewBuilder(nil, platform.Linux)

	assert.Equal(t, "fr", b.Build("/rt", "l", "fr")[constants.LocaleEnvVar])
	assert.NotContains(t, b.Build("/rt", "l", "").Keys(), constants.LocaleEnvVar)
}

func TestBuild_PathBeginsWithBinDir(t *testing.T) {
	tests := []struct {
		name   string
		parent []string
	}{
		{"no inherited PATH", nil},
		{"empty inherited PATH", []string{"PATH="}},
		{"inherited PATH", []string{"PATH=/bin:/usr/bin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewBuilder(tt.parent, platform.Linux).Build("/srv/runtime", "l", "")
			assert.True(t, strings.HasPrefix(env[constants.PathEnvVar], filepath.Join("/srv/runtime", "bin")))
		})
	}

	env := NewBuilder(nil, platform.Linux).Build("/srv/runtime", "l", "")
	assert.Equal(t, filepath.Join("/srv/runtime", "bin"), env[constants.PathEnvVar])
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder([]string{"PATH=/usr/bin"}, platform.Linux)

	first := b.Build("/rt", `C:\odd path\launcher-ru.exe`, "ru")
	second := b.Build("/rt", `C:\odd path\launcher-ru.exe`, "ru")

	assert.Equal(t, first, second)
	assert.Equal(t, `C:\odd path\launcher-ru.exe`, first[constants.LauncherEnvVar])
}

func TestBuild_WindowsPathKeyCase(t *testing.T) {
	b := NewBuilder([]string{`Path=C:\Windows`}, platform.Windows)

	env := b.Build(`C:\rt`, "l", "")

	assert.True(t, strings.HasSuffix(env[constants.PathEnvVar], `C:\Windows`))
	merged := b.Environ(env)
	for _, kv := range merged {
		assert.False(t, strings.HasPrefix(kv, "Path="), "inherited Path must be replaced, got %q", kv)
	}
}

func TestEnviron_KeepsUnrelatedKeys(t *testing.T) {
	parent := []string{"PATH=/usr/bin", "LANG=de_DE.UTF-8", "HOME=/home/ann", "WEIRD"}
	b := NewBuilder(parent, platform.Linux)

	merged := b.Environ(b.Build("/rt", "l", ""))

	assert.Contains(t, merged, "LANG=de_DE.UTF-8")
	assert.Contains(t, merged, "HOME=/home/ann")
	assert.Contains(t, merged, "WEIRD")
	assert.Contains(t, merged, "PYTHONIOENCODING=utf-8")
	assert.Contains(t, merged, "LAUNCHER=l")
	assert.NotContains(t, merged, "PATH=/usr/bin")
}

func TestEnviron_LocaleOverridesInherited(t *testing.T) {
	b := NewBuilder([]string{"LANG=de_DE.UTF-8"}, platform.Linux)

	merged := b.Environ(b.Build("/rt", "l", "fr"))

	assert.Contains(t, merged, "LANG=fr")
	assert.NotContains(t, merged, "LANG=de_DE.UTF-8")
}

func TestWithLocale_DoesNotMutateReceiver(t *testing.T) {
	base := NewBuilder(nil, platform.Linux).Base("/rt", "l")

	withLocale := base.WithLocale("ru")

	assert.NotContains(t, base.Keys(), constants.LocaleEnvVar)
	assert.Equal(t, "ru", withLocale[constants.LocaleEnvVar])
}

func TestFromProcess_LeavesProcessEnvironmentAlone(t *testing.T) {
	t.Setenv("PATH", "/only/this")
	before := os.Environ()

	b := FromProcess()
	merged := b.Environ(b.Build("/rt", "l", "fr"))

	require.Equal(t, before, os.Environ())
	assert.Equal(t, "/only/this", os.Getenv("PATH"))
	assert.NotContains(t, merged, "PATH=/only/this")
}
