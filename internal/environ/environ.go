// Package environ builds the environment overlay handed to the child process.
// The launcher's own environment is never modified.
package environ

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jeanhaley32/runtime-launcher/internal/constants"
	"github.com/jeanhaley32/runtime-launcher/internal/platform"
)

// ExecutionEnvironment is the set of variables added or replaced for the child.
type ExecutionEnvironment map[string]string

// Keys returns the overlay keys in sorted order.
func (e ExecutionEnvironment) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithLocale returns a copy of e with the locale variable set. An empty
// locale returns an unchanged copy so the inherited locale is kept.
func (e ExecutionEnvironment) WithLocale(locale string) ExecutionEnvironment {
	out := make(ExecutionEnvironment, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	if locale != "" {
		out[constants.LocaleEnvVar] = locale
	}
	return out
}

// Builder derives overlays from a snapshot of the parent environment.
type Builder struct {
	parent []string
	os     platform.OS
}

// NewBuilder snapshots parent, typically os.Environ().
func NewBuilder(parent []string, hostOS platform.OS) *Builder {
	return &Builder{
		parent: append([]string(nil), parent...),
		os:     hostOS,
	}
}

// FromProcess snapshots the current process environment.
func FromProcess() *Builder {
	return NewBuilder(os.Environ(), platform.Detect())
}

// lookup finds key in the parent snapshot. The last occurrence wins, as
// with os.Getenv.
func (b *Builder) lookup(key string) (string, bool) {
	var (
		val   string
		found bool
	)
	for _, kv := range b.parent {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if b.os.SameEnvKey(k, key) {
			val, found = v, true
		}
	}
	return val, found
}

// BinDir returns the runtime's executable directory.
func BinDir(runtimeDir string) string {
	return filepath.Join(runtimeDir, constants.RuntimeBinDir)
}

// Base returns the overlay without a locale: PATH with the runtime's bin
// directory prepended, the I/O encoding directive and the launcher
// self-reference, copied verbatim.
func (b *Builder) Base(runtimeDir, launcherSelfPath string) ExecutionEnvironment {
	path := BinDir(runtimeDir)
	if inherited, ok := b.lookup(constants.PathEnvVar); ok && inherited != "" {
		path += string(os.PathListSeparator) + inherited
	}

	return ExecutionEnvironment{
		constants.PathEnvVar:       path,
		constants.IOEncodingEnvVar: constants.IOEncoding,
		constants.LauncherEnvVar:   launcherSelfPath,
	}
}

// Build returns the full overlay for the given inputs. The same inputs
// always yield the same mapping.
func (b *Builder) Build(runtimeDir, launcherSelfPath, locale string) ExecutionEnvironment {
	return b.Base(runtimeDir, launcherSelfPath).WithLocale(locale)
}

// Environ merges overlay into the parent snapshot and returns a new
// KEY=VALUE slice for exec.Cmd.Env. Parent entries whose key the overlay
// sets are dropped; every other entry is kept as is.
func (b *Builder) Environ(overlay ExecutionEnvironment) []string {
	out := make([]string, 0, len(b.parent)+len(overlay))
	for _, kv := range b.parent {
		k, _, ok := strings.Cut(kv, "=")
		if ok && b.overridden(overlay, k) {
			continue
		}
		out = append(out, kv)
	}
	for _, k := range overlay.Keys() {
		out = append(out, k+"="+overlay[k])
	}
	return out
}

func (b *Builder) overridden(overlay ExecutionEnvironment, key string) bool {
	if _, ok := overlay[key]; ok {
		return true
	}
	if !b.os.FoldsEnvKeys() {
		return false
	}
	for k := range overlay {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
