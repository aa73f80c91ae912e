// Package config loads the launcher configuration.
//
// Values come from compiled-in defaults, an optional launcher.yaml and
// RTLAUNCHER_* environment variables, later sources winning. The result is
// resolved once at startup and treated as read-only afterwards.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jeanhaley32/runtime-launcher/internal/constants"
	"github.com/jeanhaley32/runtime-launcher/internal/locale"
	"github.com/jeanhaley32/runtime-launcher/internal/logging"
)

// ConfigFileEnvVar names an explicit config file, overriding discovery.
const ConfigFileEnvVar = constants.EnvPrefix + "CONFIG"

// listKeys are split on the OS path list separator when set from the environment.
var listKeys = map[string]bool{
	"runtime_candidates":  true,
	"documents_templates": true,
}

// LauncherConfig holds everything the launcher needs before it starts.
type LauncherConfig struct {
	// RuntimeCandidates are runtime directories, relative to the startup directory.
	RuntimeCandidates []string `koanf:"runtime_candidates"`
	// DocumentsTemplates may contain {home}; the last one is created if none exist.
	DocumentsTemplates []string `koanf:"documents_templates"`
	// Script is the entry point, relative to the startup directory.
	Script string `koanf:"script"`
	// Interpreter is the executable name looked up in the runtime's bin directory.
	Interpreter string `koanf:"interpreter"`
	// INIFile is read for the UI language, relative to the documents directory.
	INIFile        string `koanf:"ini_file"`
	INISection     string `koanf:"ini_section"`
	INIKey         string `koanf:"ini_key"`
	ConsoleTitle   string `koanf:"console_title"`
	LocaleStrategy string `koanf:"locale_strategy"`
	// StartupDir overrides the executable's directory as the base for
	// relative runtime and script paths.
	StartupDir string `koanf:"startup_dir"`
	LogLevel   string `koanf:"log_level"`
}

// Defaults returns the compiled-in configuration.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"runtime_candidates":  append([]string(nil), constants.DefaultRuntimeCandidates...),
		"documents_templates": append([]string(nil), constants.DefaultDocumentsTemplates...),
		"script":              constants.DefaultScript,
		"interpreter":         constants.DefaultInterpreter,
		"ini_file":            constants.DefaultINIFile,
		"ini_section":         constants.DefaultINISection,
		"ini_key":             constants.DefaultINIKey,
		"console_title":       constants.DefaultConsoleTitle,
		"locale_strategy":     constants.DefaultLocaleStrategy,
		"startup_dir":         "",
		"log_level":           "info",
	}
}

// FindConfigFile returns the config file to load, or "" if there is none.
// Priority: RTLAUNCHER_CONFIG > launcher.yaml next to the executable >
// runtime-launcher/launcher.yaml in the XDG config directories.
func FindConfigFile(exeDir string) string {
	if explicit := os.Getenv(ConfigFileEnvVar); explicit != "" {
		return explicit
	}
	if exeDir != "" {
		candidate := filepath.Join(exeDir, constants.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if found, err := xdg.SearchConfigFile(filepath.Join(constants.ConfigDirName, constants.ConfigFileName)); err == nil {
		return found
	}
	return ""
}

// Load builds the configuration. configFile may be empty. A config file
// that is named but unreadable or malformed is an error.
func Load(configFile string) (LauncherConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return LauncherConfig{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return LauncherConfig{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// RTLAUNCHER_CONSOLE_TITLE -> console_title
	if err := k.Load(env.ProviderWithValue(constants.EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, constants.EnvPrefix))
		if key == "config" {
			return "", nil
		}
		if listKeys[key] {
			return key, strings.Split(value, string(os.PathListSeparator))
		}
		return key, value
	}), nil); err != nil {
		return LauncherConfig{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg LauncherConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return LauncherConfig{}, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return LauncherConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks fields that would otherwise fail late and obscurely.
func (c LauncherConfig) Validate() error {
	switch {
	case c.Script == "":
		return fmt.Errorf("script must not be empty")
	case c.Interpreter == "":
		return fmt.Errorf("interpreter must not be empty")
	case c.ConsoleTitle == "":
		return fmt.Errorf("console_title must not be empty")
	}

	switch c.LocaleStrategy {
	case locale.StrategyINI, locale.StrategyFilename, locale.StrategyINIFilename:
	default:
		return fmt.Errorf("locale_strategy %q is not one of %s, %s, %s",
			c.LocaleStrategy, locale.StrategyINI, locale.StrategyFilename, locale.StrategyINIFilename)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ResolveStartupDir returns the absolute directory that relative runtime
// and script paths are based on.
func (c LauncherConfig) ResolveStartupDir(exeDir string) (string, error) {
	dir := c.StartupDir
	switch {
	case dir == "":
		dir = exeDir
	case !filepath.IsAbs(dir):
		dir = filepath.Join(exeDir, dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve startup directory %s: %w", dir, err)
	}
	return abs, nil
}

// RuntimePaths returns the runtime candidates made absolute against startupDir.
func (c LauncherConfig) RuntimePaths(startupDir string) []string {
	paths := make([]string, 0, len(c.RuntimeCandidates))
	for _, candidate := range c.RuntimeCandidates {
		if candidate == "" {
			break
		}
		paths = append(paths, resolvePathRelativeTo(candidate, startupDir))
	}
	return paths
}

// ScriptPath returns the entry-point script made absolute against startupDir.
func (c LauncherConfig) ScriptPath(startupDir string) string {
	return resolvePathRelativeTo(c.Script, startupDir)
}

// INIPath returns the settings file path made absolute against docsDir.
func (c LauncherConfig) INIPath(docsDir string) string {
	return resolvePathRelativeTo(c.INIFile, docsDir)
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, filepath.FromSlash(path))
}
