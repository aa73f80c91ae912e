// Package launcher sequences a launch: find the runtime, enter the
// documents directory, prepare the child environment, resolve the locale
// and run the interpreter on the entry-point script. The first failing
// step ends the launch.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jeanhaley32/runtime-launcher/internal/config"
	"github.com/jeanhaley32/runtime-launcher/internal/docsdir"
	"github.com/jeanhaley32/runtime-launcher/internal/environ"
	"github.com/jeanhaley32/runtime-launcher/internal/locale"
	"github.com/jeanhaley32/runtime-launcher/internal/logging"
	"github.com/jeanhaley32/runtime-launcher/internal/platform"
	"github.com/jeanhaley32/runtime-launcher/internal/probe"
)

// Options carries everything a Launcher depends on.
type Options struct {
	Config config.LauncherConfig
	// StartupDir is the absolute base for relative runtime and script paths.
	StartupDir string
	// HomeDir returns the directory substituted for {home}.
	HomeDir func() (string, error)
	// SelfPath is the launcher's invocation path, passed on verbatim.
	SelfPath string
	// Args are forwarded to the script unchanged.
	Args []string

	Environ *environ.Builder
	OS      platform.OS
	// Run executes the child and waits for it. Defaults to (*exec.Cmd).Run.
	Run func(cmd *exec.Cmd) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Launcher runs one launch.
type Launcher struct {
	opts   Options
	prober *probe.Prober
	docs   *docsdir.Resolver
	logger *slog.Logger
}

// New creates a Launcher, filling unset options with process defaults.
func New(opts Options) *Launcher {
	opts.Logger = logging.OrDiscard(opts.Logger)
	if opts.Environ == nil {
		opts.Environ = environ.FromProcess()
	}
	if opts.OS == "" {
		opts.OS = platform.Detect()
	}
	if opts.Run == nil {
		opts.Run = func(cmd *exec.Cmd) error { return cmd.Run() }
	}
	if opts.HomeDir == nil {
		opts.HomeDir = os.UserHomeDir
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	prober := probe.New(probe.WithLogger(opts.Logger))
	return &Launcher{
		opts:   opts,
		prober: prober,
		docs:   docsdir.NewResolver(prober, opts.Logger),
		logger: opts.Logger,
	}
}

// Run performs the launch. It blocks until the child exits; ctx is handed
// to the child process and is the only way to stop it early.
func (l *Launcher) Run(ctx context.Context) Outcome {
	cfg := l.opts.Config

	runtimeDir, err := l.resolveRuntime()
	if err != nil {
		return Failure(StepResolveRuntime, err)
	}

	docsDir, err := l.resolveDocumentsDir()
	if err != nil {
		return Failure(StepResolveDocumentsDir, err)
	}

	overlay := l.opts.Environ.Base(runtimeDir, l.opts.SelfPath)
	l.logger.Info("new PATH", "value", overlay["PATH"])

	resolver, err := locale.NewResolver(cfg.LocaleStrategy,
		locale.INIStrategy{Path: cfg.INIPath(docsDir), Section: cfg.INISection, Key: cfg.INIKey},
		locale.FilenameStrategy{LauncherPath: l.opts.SelfPath},
		l.logger)
	if err != nil {
		return Failure(StepResolveLocale, err)
	}
	overlay = overlay.WithLocale(resolver.Resolve())

	if err := l.invokeChild(ctx, runtimeDir, docsDir, overlay); err != nil {
		return Failure(StepInvokeChild, err)
	}
	return Success()
}

func (l *Launcher) resolveRuntime() (string, error) {
	candidates := l.opts.Config.RuntimePaths(l.opts.StartupDir)
	res := l.prober.FindFirstExisting(candidates, "")
	if !res.Found {
		return "", &RuntimeNotFoundError{Candidates: candidates}
	}
	return res.Path, nil
}

func (l *Launcher) resolveDocumentsDir() (string, error) {
	home, err := l.opts.HomeDir()
	if err != nil {
		return "", &docsdir.DirectoryError{Op: "home", Err: fmt.Errorf("cannot determine home directory: %w", err)}
	}
	res, err := l.docs.ResolveOrCreate(l.opts.Config.DocumentsTemplates, home)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// interpreterPath prefers the runtime's own interpreter. The PATH overlay
// only applies to the child, so the parent's lookup would not see it.
func (l *Launcher) interpreterPath(runtimeDir string) string {
	name := l.opts.Config.Interpreter
	candidate := filepath.Join(environ.BinDir(runtimeDir), l.opts.OS.ExecutableName(name))
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	l.logger.Warn("interpreter not in runtime, falling back to PATH", "expected", candidate)
	return name
}

func (l *Launcher) invokeChild(ctx context.Context, runtimeDir, docsDir string, overlay environ.ExecutionEnvironment) error {
	argv := append([]string{
		l.interpreterPath(runtimeDir),
		l.opts.Config.ScriptPath(l.opts.StartupDir),
	}, l.opts.Args...)
	commandLine := CommandLine(argv)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = l.opts.Environ.Environ(overlay)
	cmd.Dir = docsDir
	cmd.Stdin = l.opts.Stdin
	cmd.Stdout = l.opts.Stdout
	cmd.Stderr = l.opts.Stderr

	l.logger.Info("running", "command", commandLine)
	if err := l.opts.Run(cmd); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ChildProcessError{CommandLine: commandLine, ExitCode: code, Err: err}
	}
	return nil
}

// CommandLine renders argv as a single line, quoting arguments that
// contain whitespace or quotes so each survives as one argument.
func CommandLine(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		parts[i] = quoteArg(arg)
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n\"") {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}
