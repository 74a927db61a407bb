// Package cmdcommon provides shared constants and defaults for the
// command-line tool.
package cmdcommon

import (
	"os"
	"path/filepath"
)

// Exit codes returned by the CLI.
const (
	ExitOK          = 0
	ExitLintFailure = 1
)

// Configuration file names discovered per target directory.
const (
	RCFileName     = ".jsonlintrc"
	RCTOMLFileName = ".jsonlintrc.toml"
	IgnoreFileName = ".jsonlintignore"
)

// CacheDirEnvVar overrides the schema cache location.
const CacheDirEnvVar = "JSONLINT_CACHE_DIR"

// cacheDirName is the schema cache directory created next to the executable.
const cacheDirName = ".jsonlint-cache"

// Defaults applied before config files and flags are merged in.
const (
	DefaultIndent = "  "
	DefaultEnv    = "json-schema-draft-04"
)

// DefaultIgnore returns the ignore globs applied when neither flags nor
// config files provide any.
func DefaultIgnore() []string {
	return []string{"node_modules/**/*"}
}

// CacheDir determines the schema cache directory. The environment variable
// takes precedence; otherwise the cache lives next to the executable, and as
// a last resort under the working directory.
func CacheDir() string {
	if dir := os.Getenv(CacheDirEnvVar); dir != "" {
		return dir
	}
	exe, err := os.Executable()
	if err != nil {
		return cacheDirName
	}
	return filepath.Join(filepath.Dir(exe), cacheDirName)
}
