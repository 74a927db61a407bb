package schemaval

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jsonlint-go/jsonlint/internal/jsonfmt"
	"github.com/jsonlint-go/jsonlint/internal/schemafetch"
)

// Error definitions
var (
	// ErrUnknownDialect indicates an unrecognized schema environment
	// identifier.
	ErrUnknownDialect = errors.New("unknown schema dialect")

	// ErrSchemaInvalid indicates that a schema document failed to compile.
	// Fatal for the lint operation, like an unavailable schema.
	ErrSchemaInvalid = errors.New("schema does not compile")
)

// dialects maps environment identifiers to engine draft dialects.
var dialects = map[string]*jsonschema.Draft{
	"json-schema-draft-04": jsonschema.Draft4,
	"draft-04":             jsonschema.Draft4,
	"draft4":               jsonschema.Draft4,
	"json-schema-draft-06": jsonschema.Draft6,
	"draft-06":             jsonschema.Draft6,
	"draft6":               jsonschema.Draft6,
	"json-schema-draft-07": jsonschema.Draft7,
	"draft-07":             jsonschema.Draft7,
	"draft7":               jsonschema.Draft7,
	"draft-2019-09":        jsonschema.Draft2019,
	"2019-09":              jsonschema.Draft2019,
	"draft-2020-12":        jsonschema.Draft2020,
	"2020-12":              jsonschema.Draft2020,
}

// printer renders engine error kinds for the fallback message template.
var printer = message.NewPrinter(language.English)

// Engine adapts the external validation engine. Compiled schemas are
// memoized per (resource, dialect) pair; one engine instance is shared by
// all concurrent document pipelines of a run.
type Engine struct {
	loader jsonschema.URLLoader

	mu       sync.Mutex
	compiled map[compileKey]*jsonschema.Schema
}

type compileKey struct {
	url     string
	dialect string
}

// NewEngine creates an engine. loader resolves $ref targets during
// compilation; passing the schema fetcher routes those loads through the
// cache. A nil loader restricts schemas to self-contained documents.
func NewEngine(loader jsonschema.URLLoader) *Engine {
	return &Engine{
		loader:   loader,
		compiled: make(map[compileKey]*jsonschema.Schema),
	}
}

// Validate checks doc against schema under the dialect selected by env.
// A nil failure slice means the document is valid. A non-nil error means
// validation could not run at all.
func (e *Engine) Validate(doc any, schema *schemafetch.Schema, env string) ([]Failure, error) {
	compiled, err := e.compile(schema, env)
	if err != nil {
		return nil, err
	}

	err = compiled.Validate(jsonfmt.Unordered(doc))
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, fmt.Errorf("validating against %s: %w", schema.Reference, err)
	}

	return flatten(verr, schema.Doc, nil), nil
}

func (e *Engine) compile(schema *schemafetch.Schema, env string) (*jsonschema.Schema, error) {
	dialect, ok := dialects[strings.ToLower(env)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, env)
	}

	key := compileKey{url: schema.URL, dialect: env}

	e.mu.Lock()
	defer e.mu.Unlock()
	if compiled, ok := e.compiled[key]; ok {
		return compiled, nil
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(dialect)
	if e.loader != nil {
		compiler.UseLoader(e.loader)
	}
	if err := compiler.AddResource(schema.URL, schema.Doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaInvalid, schema.Reference, err)
	}
	compiled, err := compiler.Compile(schema.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaInvalid, schema.Reference, err)
	}

	e.compiled[key] = compiled
	return compiled, nil
}

// flatten walks the engine's error tree depth-first, emitting failures at
// the leaves. Inner nodes only group their causes; discovery order is
// preserved.
func flatten(verr *jsonschema.ValidationError, schemaDoc any, acc []Failure) []Failure {
	if len(verr.Causes) > 0 {
		for _, cause := range verr.Causes {
			acc = flatten(cause, schemaDoc, acc)
		}
		return acc
	}
	return append(acc, failuresFrom(verr, schemaDoc)...)
}

// fieldPath renders an instance location for diagnostics.
func fieldPath(location []string) string {
	if len(location) == 0 {
		return "document"
	}
	return strings.Join(location, ".")
}

// childField extends a field path by one property name, used when a single
// engine error names several properties.
func childField(location []string, name string) string {
	if len(location) == 0 {
		return name
	}
	return strings.Join(location, ".") + "." + name
}

// failuresFrom converts one leaf engine error into tagged failures.
// Rules that name several properties in one error (required, additional
// properties) fan out one failure per property.
func failuresFrom(verr *jsonschema.ValidationError, schemaDoc any) []Failure {
	field := fieldPath(verr.InstanceLocation)

	switch k := verr.ErrorKind.(type) {
	case *kind.Type:
		return []Failure{{Field: field, Rule: "type", Limit: strings.Join(k.Want, " or "), Observed: k.Got}}
	case *kind.MinLength:
		return []Failure{{Field: field, Rule: "minLength", Limit: k.Want, Observed: k.Got}}
	case *kind.MaxLength:
		return []Failure{{Field: field, Rule: "maxLength", Limit: k.Want, Observed: k.Got}}
	case *kind.MinProperties:
		return []Failure{{Field: field, Rule: "minProperties", Limit: k.Want, Observed: k.Got}}
	case *kind.MaxProperties:
		return []Failure{{Field: field, Rule: "maxProperties", Limit: k.Want, Observed: k.Got}}
	case *kind.MinItems:
		return []Failure{{Field: field, Rule: "minItems", Limit: k.Want, Observed: k.Got}}
	case *kind.MaxItems:
		return []Failure{{Field: field, Rule: "maxItems", Limit: k.Want, Observed: k.Got}}
	case *kind.Required:
		failures := make([]Failure, 0, len(k.Missing))
		for _, missing := range k.Missing {
			failures = append(failures, Failure{
				Field: childField(verr.InstanceLocation, missing),
				Rule:  "required",
			})
		}
		return failures
	case *kind.AdditionalProperties:
		failures := make([]Failure, 0, len(k.Properties))
		for _, prop := range k.Properties {
			failures = append(failures, Failure{
				Field: childField(verr.InstanceLocation, prop),
				Rule:  "additionalProperties",
			})
		}
		return failures
	default:
		return []Failure{fallbackFailure(verr, schemaDoc, field)}
	}
}

// fallbackFailure handles every rule without dedicated phrasing. The rule's
// configured value and the subschema description are looked up best-effort
// in the raw schema document; when the lookup fails the localized engine
// detail stands in for the value.
func fallbackFailure(verr *jsonschema.ValidationError, schemaDoc any, field string) Failure {
	keywordPath := verr.ErrorKind.KeywordPath()
	rule := "schema"
	if len(keywordPath) > 0 {
		rule = keywordPath[len(keywordPath)-1]
	}

	failure := Failure{Field: field, Rule: rule}

	subschema, ok := subschemaAt(verr.SchemaURL, schemaDoc)
	if ok {
		if value, ok := pointerWalk(subschema, keywordPath); ok {
			failure.Limit = value
		}
		if m, ok := subschema.(map[string]any); ok {
			if desc, ok := m["description"].(string); ok {
				failure.Description = desc
			}
		}
	}
	if failure.Limit == nil {
		failure.Limit = verr.ErrorKind.LocalizedString(printer)
	}
	return failure
}

// subschemaAt resolves the fragment pointer of an absolute schema URL
// against the raw schema document.
func subschemaAt(schemaURL string, schemaDoc any) (any, bool) {
	u, err := url.Parse(schemaURL)
	if err != nil {
		return nil, false
	}
	fragment := strings.TrimPrefix(u.Fragment, "/")
	if fragment == "" {
		return schemaDoc, true
	}
	return pointerWalk(schemaDoc, strings.Split(fragment, "/"))
}

// pointerWalk follows JSON pointer tokens through a parsed document.
func pointerWalk(doc any, tokens []string) (any, bool) {
	current := doc
	for _, token := range tokens {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		switch node := current.(type) {
		case map[string]any:
			child, ok := node[token]
			if !ok {
				return nil, false
			}
			current = child
		case []any:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}
	return current, true
}
