// Package locale resolves the UI language passed to the child process.
//
// Two strategies exist. The ini strategy reads a single key from the
// application's settings file and is authoritative. The filename strategy
// is the older heuristic that derives the language from a "-<lang>" marker
// at the end of the launcher's own file name (gpx-trip-planner-ru.exe).
// Neither validates the value beyond logging a warning.
package locale

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/ini.v1"

	"github.com/jeanhaley32/runtime-launcher/internal/logging"
)

// Strategy names accepted by NewResolver.
const (
	StrategyINI         = "ini"
	StrategyFilename    = "filename"
	StrategyINIFilename = "ini+filename"
)

// ConfigReadError reports why the settings file could not supply a value.
// It never reaches the user; the resolver logs it and reports no value.
type ConfigReadError struct {
	Path string
	Err  error
}

func (e *ConfigReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ConfigReadError) Unwrap() error {
	return e.Err
}

// Strategy yields a locale or "" when it has none.
type Strategy interface {
	Name() string
	Resolve() (string, error)
}

// INIStrategy reads Key from Section of the ini file at Path.
type INIStrategy struct {
	Path    string
	Section string
	Key     string
}

func (s INIStrategy) Name() string { return StrategyINI }

// Resolve returns the raw value. A missing file, section or key yields ""
// together with a *ConfigReadError describing what was missing.
func (s INIStrategy) Resolve() (string, error) {
	cfg, err := ini.Load(s.Path)
	if err != nil {
		return "", &ConfigReadError{Path: s.Path, Err: err}
	}
	sec, err := cfg.GetSection(s.Section)
	if err != nil {
		return "", &ConfigReadError{Path: s.Path, Err: err}
	}
	key, err := sec.GetKey(s.Key)
	if err != nil {
		return "", &ConfigReadError{Path: s.Path, Err: err}
	}
	return key.String(), nil
}

// ReadINI returns the value of key in section of the ini file at path.
// ok is false when the file, section or key is missing.
func ReadINI(path, section, key string) (value string, ok bool) {
	value, err := INIStrategy{Path: path, Section: section, Key: key}.Resolve()
	return value, err == nil
}

// FilenameStrategy derives the locale from a "-<lang>" suffix on the
// launcher's file name, ignoring the extension.
type FilenameStrategy struct {
	LauncherPath string
}

func (s FilenameStrategy) Name() string { return StrategyFilename }

// Resolve returns the suffix when it is a known two-letter language code.
func (s FilenameStrategy) Resolve() (string, error) {
	return suffixLocale(s.LauncherPath), nil
}

func suffixLocale(launcherPath string) string {
	base := filepath.Base(strings.ReplaceAll(launcherPath, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	i := strings.LastIndex(base, "-")
	if i < 0 || i == len(base)-1 {
		return ""
	}
	suffix := base[i+1:]
	if len(suffix) != 2 {
		return ""
	}
	b, err := language.ParseBase(strings.ToLower(suffix))
	if err != nil {
		return ""
	}
	return b.String()
}

// Resolver runs its strategies in order and returns the first non-empty value.
type Resolver struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewResolver selects strategies by name: "ini", "filename" or
// "ini+filename" (ini first, filename as fallback).
func NewResolver(name string, fromINI INIStrategy, fromFilename FilenameStrategy, logger *slog.Logger) (*Resolver, error) {
	r := &Resolver{logger: logging.OrDiscard(logger)}
	switch name {
	case StrategyINI:
		r.strategies = []Strategy{fromINI}
	case StrategyFilename:
		r.strategies = []Strategy{fromFilename}
	case StrategyINIFilename, "":
		r.strategies = []Strategy{fromINI, fromFilename}
	default:
		return nil, fmt.Errorf("unknown locale strategy %q (want %s, %s or %s)",
			name, StrategyINI, StrategyFilename, StrategyINIFilename)
	}
	return r, nil
}

// Resolve returns the locale, or "" when no strategy produced one.
// It never fails: read errors are logged and treated as no value.
func (r *Resolver) Resolve() string {
	for _, s := range r.strategies {
		value, err := s.Resolve()
		if err != nil {
			var readErr *ConfigReadError
			if errors.As(err, &readErr) {
				r.logger.Debug("no locale from settings file", "strategy", s.Name(), "error", err)
			} else {
				r.logger.Warn("locale strategy failed", "strategy", s.Name(), "error", err)
			}
			continue
		}
		if value == "" {
			continue
		}
		if _, err := language.Parse(value); err != nil {
			r.logger.Warn("locale is not a valid language tag, passing it through", "locale", value, "error", err)
		}
		r.logger.Info("locale resolved", "strategy", s.Name(), "locale", value)
		return value
	}
	return ""
}
