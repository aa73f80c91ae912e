// Package cli provides the launcher's command-line entry point.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/jeanhaley32/runtime-launcher/internal/config"
	"github.com/jeanhaley32/runtime-launcher/internal/console"
	"github.com/jeanhaley32/runtime-launcher/internal/constants"
	"github.com/jeanhaley32/runtime-launcher/internal/environ"
	"github.com/jeanhaley32/runtime-launcher/internal/launcher"
	"github.com/jeanhaley32/runtime-launcher/internal/logging"
	"github.com/jeanhaley32/runtime-launcher/internal/terminal"
)

// Version is set at build time.
var Version = "0.1.0"

// Deps are the process-level collaborators of the root command.
type Deps struct {
	Host       console.Host
	WaitKey    func() error
	Executable func() (string, error)
	HomeDir    func() (string, error)
	// SelfPath is argv[0], passed to the child verbatim.
	SelfPath string
	Run      func(cmd *exec.Cmd) error
	Environ  *environ.Builder
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// DefaultDeps wires the real process, console and terminal.
func DefaultDeps() *Deps {
	return &Deps{
		Host:       console.NewHost(),
		WaitKey:    terminal.NewKeyWaiter(os.Stdin, os.Stdout, "Press any key to exit...").Wait,
		Executable: os.Executable,
		HomeDir:    homedir.Dir,
		SelfPath:   os.Args[0],
		Environ:    environ.FromProcess(),
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// NewRootCmd creates the root command. The process exit status is
// stored in exitCode when the command finishes.
func NewRootCmd(deps *Deps, exitCode *int) *cobra.Command {
	// The launcher is normally started by double-clicking it.
	cobra.MousetrapHelpText = ""

	return &cobra.Command{
		Use:   "launcher [args...]",
		Short: "Start the bundled application with its runtime",
		Long: `Finds the bundled interpreter runtime, enters the per-user documents
directory and runs the application script, forwarding every argument.

  launcher --show-console   restore the console of a running launcher`,
		Version:            Version,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*exitCode = run(cmd.Context(), deps, args)
			return nil
		},
	}
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	code := 0
	rootCmd := NewRootCmd(DefaultDeps(), &code)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return code
}

func run(ctx context.Context, deps *Deps, args []string) int {
	exeDir, err := executableDir(deps.Executable)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		return 1
	}

	configFile := config.FindConfigFile(exeDir)
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		return 1
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(deps.Stderr, level)
	logger.Debug("starting", "version", Version, "exe_dir", exeDir, "config", configFile)

	ctrl := console.NewController(deps.Host, cfg.ConsoleTitle, deps.Stderr, deps.WaitKey, logger)

	if len(args) > 0 && args[0] == constants.ShowConsoleArg {
		return showConsole(ctrl, deps, args[1:], logger)
	}

	ctrl.Start()

	startupDir, err := cfg.ResolveStartupDir(exeDir)
	if err != nil {
		ctrl.ReportFailure("", err.Error())
		return 1
	}

	l := launcher.New(launcher.Options{
		Config:     cfg,
		StartupDir: startupDir,
		HomeDir:    deps.HomeDir,
		SelfPath:   deps.SelfPath,
		Args:       args,
		Environ:    deps.Environ,
		Run:        deps.Run,
		Stdin:      deps.Stdin,
		Stdout:     deps.Stdout,
		Stderr:     deps.Stderr,
		Logger:     logger,
	})

	release := holdInterrupts(logger)
	outcome := l.Run(ctx)
	release()

	if outcome.Failed() {
		logger.Debug("launch failed", "step", outcome.Step().String())
		ctrl.ReportFailure(outcome.Heading(), outcome.Message())
		return outcome.ExitCode()
	}

	fmt.Fprintln(deps.Stdout, "Launcher exiting.")
	return outcome.ExitCode()
}

func showConsole(ctrl *console.Controller, deps *Deps, extra []string, logger *slog.Logger) int {
	if len(extra) > 0 {
		logger.Warn("ignoring arguments after "+constants.ShowConsoleArg, "args", extra)
	}
	if err := ctrl.ShowExisting(); err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func executableDir(executable func() (string, error)) (string, error) {
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate launcher executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
