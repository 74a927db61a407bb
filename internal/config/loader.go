// Package config discovers and parses per-directory linter configuration:
// an rc file (ini-style .jsonlintrc, or .jsonlintrc.toml) and an ignore
// file listing glob patterns. Discovery walks from the target file's
// directory up to the filesystem root; the first file found of each kind
// wins. Results are cached per directory, shared across concurrent
// pipelines.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"

	"github.com/jsonlint-go/jsonlint/internal/cmdcommon"
	"github.com/jsonlint-go/jsonlint/internal/common"
	"github.com/jsonlint-go/jsonlint/internal/lint"
)

// Loader discovers config layers for target files.
type Loader struct {
	mu   sync.Mutex
	dirs map[string]*dirResult
}

type dirResult struct {
	overrides lint.Overrides
	err       error
}

// NewLoader creates a config loader with an empty discovery cache.
func NewLoader() *Loader {
	return &Loader{dirs: make(map[string]*dirResult)}
}

// LoadFor returns the config-file overrides layer for the given target
// file. A parse failure is returned as an error and is considered fatal to
// the whole process, not attributed to the one file.
func (l *Loader) LoadFor(target string) (lint.Overrides, error) {
	dir := filepath.Dir(target)
	abs, err := filepath.Abs(dir)
	if err != nil {
		return lint.Overrides{}, fmt.Errorf("resolving config directory for %s: %w", target, err)
	}

	l.mu.Lock()
	cached, ok := l.dirs[abs]
	l.mu.Unlock()
	if ok {
		return cached.overrides, cached.err
	}

	overrides, err := discover(abs)

	l.mu.Lock()
	l.dirs[abs] = &dirResult{overrides: overrides, err: err}
	l.mu.Unlock()
	return overrides, err
}

// discover walks dir and its ancestors for the rc and ignore files.
func discover(dir string) (lint.Overrides, error) {
	var overrides lint.Overrides
	rcFound := false
	ignoreFound := false

	for current := dir; ; current = filepath.Dir(current) {
		if !rcFound {
			found, o, err := loadRC(current)
			if err != nil {
				return lint.Overrides{}, err
			}
			if found {
				rcFound = true
				ignores := overrides.Ignore
				overrides = o
				overrides.Ignore = append(overrides.Ignore, ignores...)
			}
		}
		if !ignoreFound {
			found, globs, err := loadIgnoreFile(current)
			if err != nil {
				return lint.Overrides{}, err
			}
			if found {
				ignoreFound = true
				overrides.Ignore = append(overrides.Ignore, globs...)
			}
		}
		if (rcFound && ignoreFound) || current == filepath.Dir(current) {
			break
		}
	}

	return overrides, nil
}

// loadRC reads the rc file in dir, preferring the TOML variant.
func loadRC(dir string) (bool, lint.Overrides, error) {
	tomlPath := filepath.Join(dir, cmdcommon.RCTOMLFileName)
	if data, err := os.ReadFile(tomlPath); err == nil {
		o, err := parseTOML(data)
		if err != nil {
			return false, lint.Overrides{}, fmt.Errorf("parsing %s: %w", tomlPath, err)
		}
		return true, o, nil
	}

	iniPath := filepath.Join(dir, cmdcommon.RCFileName)
	if data, err := os.ReadFile(iniPath); err == nil {
		o, err := parseINI(data)
		if err != nil {
			return false, lint.Overrides{}, fmt.Errorf("parsing %s: %w", iniPath, err)
		}
		return true, o, nil
	}

	return false, lint.Overrides{}, nil
}

// tomlRC mirrors the rc schema for TOML decoding; pointer fields separate
// "unset" from explicit zero values.
type tomlRC struct {
	Ignore   []string `toml:"ignore"`
	Validate *string  `toml:"validate"`
	Indent   *string  `toml:"indent"`
	Env      *string  `toml:"env"`
	Quiet    *bool    `toml:"quiet"`
	Pretty   *bool    `toml:"pretty"`
	Sort     *bool    `toml:"sort"`
}

func parseTOML(data []byte) (lint.Overrides, error) {
	var rc tomlRC
	if err := toml.Unmarshal(data, &rc); err != nil {
		return lint.Overrides{}, err
	}

	var o lint.Overrides
	o.Ignore = rc.Ignore
	if rc.Validate != nil {
		o.Validate = common.Some(*rc.Validate)
	}
	if rc.Indent != nil {
		o.Indent = common.Some(*rc.Indent)
	}
	if rc.Env != nil {
		o.Env = common.Some(*rc.Env)
	}
	if rc.Quiet != nil {
		o.Quiet = common.Some(*rc.Quiet)
	}
	if rc.Pretty != nil {
		o.Pretty = common.Some(*rc.Pretty)
	}
	if rc.Sort != nil {
		o.Sort = common.Some(*rc.Sort)
	}
	return o, nil
}

func parseINI(data []byte) (lint.Overrides, error) {
	f, err := ini.Load(data)
	if err != nil {
		return lint.Overrides{}, err
	}
	section := f.Section(ini.DefaultSection)

	var o lint.Overrides
	if section.HasKey("ignore") {
		o.Ignore = section.Key("ignore").Strings(",")
	}
	if section.HasKey("validate") {
		o.Validate = common.Some(section.Key("validate").String())
	}
	if section.HasKey("indent") {
		o.Indent = common.Some(unquoteIndent(section.Key("indent").String()))
	}
	if section.HasKey("env") {
		o.Env = common.Some(section.Key("env").String())
	}
	for key, dst := range map[string]*common.Optional[bool]{
		"quiet":  &o.Quiet,
		"pretty": &o.Pretty,
		"sort":   &o.Sort,
	} {
		if section.HasKey(key) {
			v, err := section.Key(key).Bool()
			if err != nil {
				return lint.Overrides{}, fmt.Errorf("key %q: %w", key, err)
			}
			*dst = common.Some(v)
		}
	}
	return o, nil
}

// unquoteIndent strips surrounding double quotes so whitespace-only indent
// values survive ini parsing.
func unquoteIndent(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	return v
}

// loadIgnoreFile reads the ignore file in dir: one glob per line, blank
// lines and #-comments skipped.
func loadIgnoreFile(dir string) (bool, []string, error) {
	path := filepath.Join(dir, cmdcommon.IgnoreFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var globs []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		globs = append(globs, line)
	}
	return true, globs, nil
}
