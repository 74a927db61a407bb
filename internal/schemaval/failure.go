// Package schemaval wraps the external JSON Schema validation engine and
// turns its raw error tree into per-field diagnostic messages.
package schemaval

// Failure is one schema rule violation on one field. The adapter produces
// Failure values at the engine boundary so the translator never reads the
// engine's native error shape.
type Failure struct {
	// Field is the dot-joined path of the offending field within the
	// document. Violations on the document root use "document".
	Field string
	// Rule is the violated keyword, e.g. "minLength" or "required".
	Rule string
	// Limit is the rule's configured value, interpolated into messages
	// verbatim.
	Limit any
	// Observed is the offending value or measure reported by the engine,
	// when it reports one.
	Observed any
	// Description is the violated subschema's declared description, empty
	// when the schema has none. Only the fallback message template uses it.
	Description string
}
