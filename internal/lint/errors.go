package lint

import (
	"fmt"
	"strings"
)

// displayPath names a document in diagnostics; stdin has no path.
func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}

// ParseError indicates malformed JSON text. It carries the parser's native
// message and the file path.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%q contains invalid JSON: %v", displayPath(e.Path), e.Err)
}

// Unwrap implements error wrapping for errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaValidationError indicates a document that parses but violates its
// schema. It bundles the full formatted diagnostic text: a header naming
// the file and schema, then one tab-indented message per rule violation in
// engine-discovery order.
type SchemaValidationError struct {
	Path     string
	Schema   string
	Messages []string
}

// Error implements the error interface.
func (e *SchemaValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q fails against schema %q", displayPath(e.Path), e.Schema)
	for _, msg := range e.Messages {
		b.WriteString("\n\t")
		b.WriteString(msg)
	}
	return b.String()
}
