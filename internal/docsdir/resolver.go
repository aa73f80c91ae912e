// Package docsdir finds or creates the per-user documents directory and
// makes it the working directory.
package docsdir

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jeanhaley32/runtime-launcher/internal/constants"
	"github.com/jeanhaley32/runtime-launcher/internal/logging"
	"github.com/jeanhaley32/runtime-launcher/internal/probe"
)

// ErrNoTemplates is returned when there is nothing to probe or create.
var ErrNoTemplates = errors.New("no documents directory templates configured")

// DirectoryError reports a failure to create or enter the documents directory.
type DirectoryError struct {
	Op   string // "home", "create" or "chdir"
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	switch e.Op {
	case "create":
		return fmt.Sprintf("could not create documents directory %q: %v", e.Path, e.Err)
	case "chdir":
		return fmt.Sprintf("could not change to documents directory %q: %v", e.Path, e.Err)
	case "home":
		return fmt.Sprintf("could not locate the documents directory: %v", e.Err)
	default:
		return fmt.Sprintf("documents directory %q: %v", e.Path, e.Err)
	}
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// Result describes the resolved documents directory.
type Result struct {
	Path    string
	Created bool
}

// Resolver resolves the documents directory.
type Resolver struct {
	prober *probe.Prober
	mkdir  func(path string, perm os.FileMode) error
	chdir  func(path string) error
	logger *slog.Logger
}

// NewResolver creates a Resolver using prober for existence checks.
func NewResolver(prober *probe.Prober, logger *slog.Logger) *Resolver {
	return &Resolver{
		prober: prober,
		mkdir:  os.Mkdir,
		chdir:  os.Chdir,
		logger: logging.OrDiscard(logger),
	}
}

// ResolveOrCreate probes templates with homeDir substituted. When none
// exists, the last template tried is created with a single-level mkdir;
// missing parents are an error. The working directory is then changed to
// the resolved path.
func (r *Resolver) ResolveOrCreate(templates []string, homeDir string) (Result, error) {
	res := r.prober.FindFirstExisting(templates, homeDir)

	out := Result{Path: res.Path}
	if !res.Found {
		if res.LastTried == "" {
			return Result{}, &DirectoryError{Op: "create", Err: ErrNoTemplates}
		}
		r.logger.Info("creating documents directory", "path", res.LastTried)
		if err := r.mkdir(res.LastTried, constants.DirPermissions); err != nil {
			return Result{}, &DirectoryError{Op: "create", Path: res.LastTried, Err: err}
		}
		out = Result{Path: res.LastTried, Created: true}
	}

	if err := r.chdir(out.Path); err != nil {
		return Result{}, &DirectoryError{Op: "chdir", Path: out.Path, Err: err}
	}
	return out, nil
}
