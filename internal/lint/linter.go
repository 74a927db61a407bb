// Package lint runs the per-document pipeline: parse, optional key
// canonicalization, optional pretty printing, optional schema validation.
package lint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	gojson "github.com/goccy/go-json"

	"github.com/jsonlint-go/jsonlint/internal/jsonfmt"
	"github.com/jsonlint-go/jsonlint/internal/schemafetch"
	"github.com/jsonlint-go/jsonlint/internal/schemaval"
)

// Result is the outcome of linting one document.
type Result struct {
	// Path is the document's absolute path, empty for stdin.
	Path string
	// Failed reports the failure signal. It is never suppressed.
	Failed bool
	// Message is the diagnostic text, empty on success and in quiet mode.
	Message string
}

// Linter orchestrates document pipelines. One linter, holding the shared
// fetcher and engine, serves all concurrent pipelines of a run.
type Linter struct {
	fetcher *schemafetch.Fetcher
	engine  *schemaval.Engine
	out     io.Writer
}

// New creates a linter. Pretty-printed documents are written to out.
func New(fetcher *schemafetch.Fetcher, engine *schemaval.Engine, out io.Writer) *Linter {
	return &Linter{
		fetcher: fetcher,
		engine:  engine,
		out:     out,
	}
}

// LintFile reads and lints the file at path.
func (l *Linter) LintFile(ctx context.Context, path string, settings Settings) Result {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return failure(abs, settings, fmt.Errorf("reading %q: %w", path, err))
	}
	return l.Lint(ctx, source, abs, settings)
}

// LintStdin lints a document read from r, reported with a null path.
func (l *Linter) LintStdin(ctx context.Context, r io.Reader, settings Settings) Result {
	source, err := io.ReadAll(r)
	if err != nil {
		return failure("", settings, fmt.Errorf("reading stdin: %w", err))
	}
	return l.Lint(ctx, source, "", settings)
}

// Lint runs the pipeline on raw source text. path is used for diagnostics
// only; it is empty for stdin.
func (l *Linter) Lint(ctx context.Context, source []byte, path string, settings Settings) Result {
	var doc any
	if err := gojson.Unmarshal(source, &doc); err != nil {
		return failure(path, settings, &ParseError{Path: path, Err: err})
	}

	if settings.Sort {
		doc = jsonfmt.Sort(doc)
	}

	if settings.Pretty && !settings.Quiet {
		// Reformats the original text, not a serialization of the parsed
		// value, so the document survives byte-for-byte outside whitespace.
		formatted := jsonfmt.Format(string(source), settings.Indent)
		if _, err := io.WriteString(l.out, formatted+"\n"); err != nil {
			slog.Warn("pretty print failed", "file", displayPath(path), "error", err)
		}
	}

	if settings.Validate != "" {
		if result, failed := l.validate(ctx, doc, path, settings); failed {
			return result
		}
	}

	return Result{Path: path}
}

// validate resolves the configured schema and checks doc against it.
// The second return value reports whether the pipeline failed.
func (l *Linter) validate(ctx context.Context, doc any, path string, settings Settings) (Result, bool) {
	schema, err := l.fetcher.Resolve(ctx, settings.Validate)
	if err != nil {
		return failure(path, settings, err), true
	}

	failures, err := l.engine.Validate(doc, schema, settings.Env)
	if err != nil {
		return failure(path, settings, err), true
	}
	if len(failures) == 0 {
		return Result{}, false
	}

	verr := &SchemaValidationError{
		Path:     path,
		Schema:   settings.Validate,
		Messages: schemaval.Translate(failures),
	}
	return failure(path, settings, verr), true
}

// failure builds a failed result. Quiet mode nulls the message text but
// never the failure signal.
func failure(path string, settings Settings, err error) Result {
	result := Result{Path: path, Failed: true}
	if !settings.Quiet {
		result.Message = err.Error()
	}
	slog.Debug("lint failed", "file", displayPath(path), "error", err)
	return result
}
