// Package main provides the entry point for the jsonlint command. It
// handles command-line arguments, per-file configuration discovery, and
// runs the lint pipelines for all selected documents.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/jsonlint-go/jsonlint/internal/cmdcommon"
	"github.com/jsonlint-go/jsonlint/internal/color"
	"github.com/jsonlint-go/jsonlint/internal/common"
	"github.com/jsonlint-go/jsonlint/internal/config"
	"github.com/jsonlint-go/jsonlint/internal/lint"
	"github.com/jsonlint-go/jsonlint/internal/logging"
	"github.com/jsonlint-go/jsonlint/internal/schemacache"
	"github.com/jsonlint-go/jsonlint/internal/schemafetch"
	"github.com/jsonlint-go/jsonlint/internal/schemaval"
	"github.com/jsonlint-go/jsonlint/internal/terminal"
)

const version = "1.0.0"

// multiFlag collects repeatable string flags.
type multiFlag []string

// String implements flag.Value.
func (m *multiFlag) String() string {
	return strings.Join(*m, ",")
}

// Set implements flag.Value.
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

var (
	ignoreFlags  multiFlag
	validateFlag = registerString("validate", "s", "", "validate documents against a schema (URI or path)")
	indentFlag   = registerString("indent", "w", cmdcommon.DefaultIndent, "indentation string for pretty printing")
	envFlag      = registerString("env", "e", cmdcommon.DefaultEnv, "schema draft dialect identifier")
	quietFlag    = registerBool("quiet", "q", false, "suppress diagnostic text, keep the exit code")
	prettyFlag   = registerBool("pretty", "p", false, "reformat documents to stdout")
	sortFlag     = flag.Bool("sort", false, "sort object keys before validation")
	versionFlag  = registerBool("version", "v", false, "print version and exit")
	logLevel     = flag.String("log-level", "warn", "log level (debug, info, warn, error)")
)

// registerString registers a flag under its long and short names, sharing
// one destination.
func registerString(long, short, value, usage string) *string {
	p := flag.String(long, value, usage)
	flag.StringVar(p, short, value, usage)
	return p
}

func registerBool(long, short string, value bool, usage string) *bool {
	p := flag.Bool(long, value, usage)
	flag.BoolVar(p, short, value, usage)
	return p
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `jsonlint %s - lint and validate JSON documents

Usage:
  jsonlint [options] [patterns...]
  jsonlint [options] < document.json

Patterns are glob expressions (** supported). Without patterns the
document is read from stdin.

Options:
`, version)
	flag.PrintDefaults()
}

func main() {
	runID := logging.GenerateRunID()
	code, err := run(runID)
	if err != nil {
		// Unexpected failures abort the whole process instead of being
		// attributed to a single file.
		var stderr strings.Builder
		fmt.Fprintf(&stderr, "Error: %v\n", err)
		fmt.Fprintf(&stderr, "  Run ID: %s\n", runID)
		fmt.Fprint(os.Stderr, stderr.String())
		os.Exit(cmdcommon.ExitLintFailure)
	}
	os.Exit(code)
}

func run(runID string) (int, error) {
	flag.Usage = usage
	flag.Var(&ignoreFlags, "ignore", "glob pattern of files to skip (repeatable)")
	flag.Var(&ignoreFlags, "i", "glob pattern of files to skip (repeatable)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("jsonlint %s\n", version)
		return cmdcommon.ExitOK, nil
	}

	logging.Setup(*logLevel, os.Stderr, runID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	detector := terminal.NewDetector()
	palette := color.NewPalette(detector.UseColor())

	cache := schemacache.New(cmdcommon.CacheDir())
	fetcher := schemafetch.New(cache)
	engine := schemaval.NewEngine(fetcher)
	linter := lint.New(fetcher, engine, os.Stdout)

	cli := cliOverrides()

	if flag.NArg() == 0 {
		return runStdin(ctx, linter, detector, palette, cli)
	}
	return runFiles(ctx, linter, palette, cli, flag.Args())
}

// runStdin lints a single document from standard input. Stdin gets no
// per-path config discovery, only defaults and CLI flags.
func runStdin(ctx context.Context, linter *lint.Linter, detector *terminal.Detector, palette *color.Palette, cli lint.Overrides) (int, error) {
	if detector.IsStdinTerminal() {
		fmt.Fprintln(os.Stderr, palette.Yellow("reading document from stdin, finish with Ctrl-D"))
	}

	settings := lint.DefaultSettings().Apply(cli)
	result := linter.LintStdin(ctx, os.Stdin, settings)
	if !result.Failed {
		return cmdcommon.ExitOK, nil
	}
	if result.Message != "" {
		printBlock(os.Stderr, palette, result.Message)
	}
	return cmdcommon.ExitLintFailure, nil
}

// runFiles expands the positional glob patterns and lints every selected
// file concurrently. Diagnostic blocks print in completion order; ordering
// between independent files is not guaranteed.
func runFiles(ctx context.Context, linter *lint.Linter, palette *color.Palette, cli lint.Overrides, patterns []string) (int, error) {
	files, err := expandTargets(patterns)
	if err != nil {
		return 0, err
	}

	loader := config.NewLoader()
	var failed atomic.Int64
	var outMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		file := file
		g.Go(func() error {
			overrides, err := loader.LoadFor(file)
			if err != nil {
				return err
			}
			settings := lint.DefaultSettings().Apply(overrides).Apply(cli)
			if ignored(file, settings.Ignore) {
				return nil
			}

			result := linter.LintFile(ctx, file, settings)
			if result.Failed {
				failed.Add(1)
				if result.Message != "" {
					outMu.Lock()
					printBlock(os.Stderr, palette, result.Message)
					outMu.Unlock()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if failed.Load() > 0 {
		return cmdcommon.ExitLintFailure, nil
	}
	return cmdcommon.ExitOK, nil
}

// cliOverrides builds the highest-precedence settings layer from flags the
// user actually passed. Defaults registered with the flag package do not
// count as explicit.
func cliOverrides() lint.Overrides {
	var o lint.Overrides
	o.Ignore = append(o.Ignore, ignoreFlags...)

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "validate", "s":
			o.Validate = common.Some(*validateFlag)
		case "indent", "w":
			o.Indent = common.Some(*indentFlag)
		case "env", "e":
			o.Env = common.Some(*envFlag)
		case "quiet", "q":
			o.Quiet = common.Some(*quietFlag)
		case "pretty", "p":
			o.Pretty = common.Some(*prettyFlag)
		case "sort":
			o.Sort = common.Some(*sortFlag)
		}
	})
	return o
}

// hasGlobMeta reports whether pattern contains glob syntax.
func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandTargets resolves positional patterns to a deduplicated file list.
// A literal path is kept even when it does not exist, so the missing file
// is reported as that document's failure instead of vanishing silently.
func expandTargets(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, pattern := range patterns {
		if !hasGlobMeta(pattern) {
			add(pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if info, err := os.Stat(match); err == nil && info.IsDir() {
				continue
			}
			add(match)
		}
	}
	return files, nil
}

// ignored reports whether path matches any of the ignore globs. Patterns
// are matched against the path as given and against any suffix directory
// chain, so "node_modules/**/*" also covers nested node_modules trees.
func ignored(path string, patterns []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match("**/"+pattern, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

// printBlock writes one diagnostic block, coloring the header line.
func printBlock(w io.Writer, palette *color.Palette, message string) {
	head, rest, found := strings.Cut(message, "\n")
	if !found {
		fmt.Fprintln(w, palette.Red(head))
		return
	}
	fmt.Fprintf(w, "%s\n%s\n", palette.Red(head), rest)
}
