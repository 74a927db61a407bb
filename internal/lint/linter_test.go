package lint

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonlint-go/jsonlint/internal/schemacache"
	"github.com/jsonlint-go/jsonlint/internal/schemafetch"
	"github.com/jsonlint-go/jsonlint/internal/schemaval"
)

// newTestLinter wires a linter against a throwaway cache directory and
// returns the buffer capturing pretty-printed output.
func newTestLinter(t *testing.T) (*Linter, *bytes.Buffer) {
	t.Helper()
	fetcher := schemafetch.New(schemacache.New(filepath.Join(t.TempDir(), "cache")))
	engine := schemaval.NewEngine(fetcher)
	out := &bytes.Buffer{}
	return New(fetcher, engine, out), out
}

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLinter_ValidDocument(t *testing.T) {
	linter, out := newTestLinter(t)

	result := linter.Lint(context.Background(), []byte(`{"a":1}`), "/tmp/doc.json", DefaultSettings())
	assert.False(t, result.Failed)
	assert.Empty(t, result.Message)
	assert.Empty(t, out.String())
}

func TestLinter_ParseError(t *testing.T) {
	linter, _ := newTestLinter(t)

	result := linter.Lint(context.Background(), []byte(`{"a":`), "/tmp/doc.json", DefaultSettings())
	assert.True(t, result.Failed)
	assert.Contains(t, result.Message, "/tmp/doc.json")
	assert.Contains(t, result.Message, "invalid JSON")
}

func TestLinter_PrettyOutput(t *testing.T) {
	linter, out := newTestLinter(t)

	settings := DefaultSettings()
	settings.Pretty = true
	result := linter.Lint(context.Background(), []byte(`{ "x": 1,"y":2 }`), "/tmp/doc.json", settings)

	assert.False(t, result.Failed)
	assert.Equal(t, "{\n  \"x\": 1,\n  \"y\": 2\n}\n", out.String())
}

func TestLinter_PrettySuppressedWhenQuiet(t *testing.T) {
	linter, out := newTestLinter(t)

	settings := DefaultSettings()
	settings.Pretty = true
	settings.Quiet = true
	linter.Lint(context.Background(), []byte(`{"x":1}`), "/tmp/doc.json", settings)

	assert.Empty(t, out.String())
}

func TestLinter_ValidationSuccess(t *testing.T) {
	linter, _ := newTestLinter(t)
	schema := writeSchema(t, `{"type":"object","required":["a","b"]}`)

	settings := DefaultSettings()
	settings.Validate = schema
	settings.Sort = true

	result := linter.Lint(context.Background(), []byte(`{"b":1,"a":2}`), "/tmp/doc.json", settings)
	assert.False(t, result.Failed)
	assert.Empty(t, result.Message)
}

func TestLinter_ValidationFailure(t *testing.T) {
	linter, _ := newTestLinter(t)
	schema := writeSchema(t, `{"type":"object","required":["a","b"]}`)

	settings := DefaultSettings()
	settings.Validate = schema
	settings.Sort = true

	result := linter.Lint(context.Background(), []byte(`{"b":1}`), "/tmp/doc.json", settings)
	require.True(t, result.Failed)
	assert.Contains(t, result.Message, `"/tmp/doc.json" fails against schema`)
	assert.Contains(t, result.Message, `"a" is required but unset`)

	// Messages after the header are tab-indented.
	lines := strings.Split(result.Message, "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "\t"), "line %q is not tab-indented", line)
	}
}

func TestLinter_QuietPreservesFailureSignal(t *testing.T) {
	linter, _ := newTestLinter(t)
	schema := writeSchema(t, `{"type":"object","required":["a"]}`)

	settings := DefaultSettings()
	settings.Validate = schema
	settings.Quiet = true

	result := linter.Lint(context.Background(), []byte(`{}`), "/tmp/doc.json", settings)
	assert.True(t, result.Failed, "quiet controls text, not the failure outcome")
	assert.Empty(t, result.Message)
}

func TestLinter_SchemaUnavailable(t *testing.T) {
	linter, _ := newTestLinter(t)

	settings := DefaultSettings()
	settings.Validate = filepath.Join(t.TempDir(), "absent.json")

	result := linter.Lint(context.Background(), []byte(`{}`), "/tmp/doc.json", settings)
	assert.True(t, result.Failed)
	assert.Contains(t, result.Message, "schema unavailable")
}

func TestLinter_LintFile(t *testing.T) {
	linter, _ := newTestLinter(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ok":true}`), 0o644))

	result := linter.LintFile(context.Background(), path, DefaultSettings())
	assert.False(t, result.Failed)
	assert.True(t, filepath.IsAbs(result.Path))
}

func TestLinter_LintFileMissing(t *testing.T) {
	linter, _ := newTestLinter(t)

	result := linter.LintFile(context.Background(), filepath.Join(t.TempDir(), "absent.json"), DefaultSettings())
	assert.True(t, result.Failed)
	assert.Contains(t, result.Message, "absent.json")
}

func TestLinter_LintStdin(t *testing.T) {
	linter, _ := newTestLinter(t)

	result := linter.LintStdin(context.Background(), strings.NewReader(`{"a":1}`), DefaultSettings())
	assert.False(t, result.Failed)
	assert.Empty(t, result.Path, "stdin results carry a null path")
}

func TestLinter_StdinParseErrorNamesStdin(t *testing.T) {
	linter, _ := newTestLinter(t)

	result := linter.LintStdin(context.Background(), strings.NewReader(`nope{`), DefaultSettings())
	require.True(t, result.Failed)
	assert.Contains(t, result.Message, "<stdin>")
}
