// Package probe finds the first existing path in an ordered candidate list.
package probe

import (
	"log/slog"
	"os"
	"strings"

	"github.com/jeanhaley32/runtime-launcher/internal/constants"
	"github.com/jeanhaley32/runtime-launcher/internal/logging"
)

// StatFunc reports whether a filesystem entry exists at path.
type StatFunc func(path string) error

// Prober probes candidate paths in order.
type Prober struct {
	stat   StatFunc
	logger *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithStat replaces the existence check. Used by tests to count probes.
func WithStat(stat StatFunc) Option {
	return func(p *Prober) {
		p.stat = stat
	}
}

// WithLogger sets the logger used to trace each attempt.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = logger
	}
}

// New creates a Prober backed by os.Stat.
func New(opts ...Option) *Prober {
	p := &Prober{
		stat: func(path string) error {
			_, err := os.Stat(path)
			return err
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.OrDiscard(p.logger)
	return p
}

// Expand substitutes the home placeholder in template with subst.
// Templates without the placeholder are returned unchanged.
func Expand(template, subst string) string {
	return strings.ReplaceAll(template, constants.HomePlaceholder, subst)
}

// Result is the outcome of a probe.
type Result struct {
	// Path is the first existing candidate, after substitution.
	Path string
	// Found is false when every candidate was missing or none were given.
	Found bool
	// LastTried is the last candidate tested, after substitution.
	LastTried string
}

// FindFirstExisting tests candidates in order and stops at the first one
// that exists. An empty candidate ends the list early, so lists may be
// empty-terminated. Not finding anything is a normal outcome.
func (p *Prober) FindFirstExisting(candidates []string, subst string) Result {
	var res Result
	for _, candidate := range candidates {
		if candidate == "" {
			break
		}
		path := Expand(candidate, subst)
		res.LastTried = path

		p.logger.Info("trying", "path", path)
		if err := p.stat(path); err != nil {
			p.logger.Debug("not usable", "path", path, "error", err)
			continue
		}

		p.logger.Info("found", "path", path)
		res.Path = path
		res.Found = true
		return res
	}
	return res
}
