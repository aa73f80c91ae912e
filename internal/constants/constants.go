package constants

import "os"

// Runtime discovery defaults
const (
	// DefaultInterpreter is the interpreter executable name, without extension.
	DefaultInterpreter = "python"

	// RuntimeBinDir is the subdirectory of a runtime holding its executables.
	RuntimeBinDir = "bin"

	// DefaultScript is the entry-point script, relative to the startup directory.
	DefaultScript = "Code/gpx-trip-planner.py"
)

// DefaultRuntimeCandidates lists runtime directories probed in order,
// relative to the startup directory.
var DefaultRuntimeCandidates = []string{
	"Win32_Runtime",
	"../Win32_Runtime",
}

// Documents directory defaults
const (
	// HomePlaceholder is replaced with the user's home directory in templates.
	HomePlaceholder = "{home}"

	// DefaultDocumentsName is the per-user data directory name.
	DefaultDocumentsName = "GPX Trip Planner"
)

// DefaultDocumentsTemplates lists documents directory templates probed in order.
// When none exist the last one is created.
var DefaultDocumentsTemplates = []string{
	"{home}/My Documents/" + DefaultDocumentsName,
	"{home}/Documents/" + DefaultDocumentsName,
}

// Locale defaults
const (
	// DefaultINIFile is the settings file read for the UI language,
	// relative to the documents directory.
	DefaultINIFile = "gpx-trip-planner.ini"

	// DefaultINISection is the section holding the UI language.
	DefaultINISection = "Win32"

	// DefaultINIKey is the key holding the UI language.
	DefaultINIKey = "ui_language"

	// DefaultLocaleStrategy prefers the ini file and falls back to the launcher filename.
	DefaultLocaleStrategy = "ini+filename"
)

// Console defaults
const (
	// DefaultConsoleTitle is the console window title, also used to find a
	// running instance in show-console mode.
	DefaultConsoleTitle = "GPX Trip Planner Debug Console"

	// ShowConsoleArg is the reserved argument selecting show-console mode.
	ShowConsoleArg = "--show-console"

	// MissingRuntimeHeading is printed above the runtime-not-found message.
	MissingRuntimeHeading = "The Snake is Missing"
)

// Environment variables set for the child process
const (
	// PathEnvVar is the executable search path.
	PathEnvVar = "PATH"

	// LauncherEnvVar carries the launcher's own invocation path.
	LauncherEnvVar = "LAUNCHER"

	// IOEncodingEnvVar forces the interpreter's stdio encoding.
	IOEncodingEnvVar = "PYTHONIOENCODING"

	// IOEncoding is the value of IOEncodingEnvVar.
	IOEncoding = "utf-8"

	// LocaleEnvVar carries the UI language.
	LocaleEnvVar = "LANG"
)

// Configuration sources
const (
	// ConfigFileName is looked up next to the executable, then in XDG config dirs.
	ConfigFileName = "launcher.yaml"

	// ConfigDirName is the XDG config subdirectory.
	ConfigDirName = "runtime-launcher"

	// EnvPrefix prefixes environment overrides, e.g. RTLAUNCHER_CONSOLE_TITLE.
	EnvPrefix = "RTLAUNCHER_"
)

// File permissions
const (
	// DirPermissions is the default permission mode for directories.
	DirPermissions os.FileMode = 0755
)
