package lint

import (
	"github.com/jsonlint-go/jsonlint/internal/cmdcommon"
	"github.com/jsonlint-go/jsonlint/internal/common"
)

// Settings is the fully merged configuration for one lint operation.
// It is immutable once constructed for a file.
type Settings struct {
	// Ignore holds glob patterns excluding files from linting.
	Ignore []string
	// Validate is the schema reference (URI or path), empty for none.
	Validate string
	// Indent is the whitespace unit used by the pretty printer.
	Indent string
	// Env selects the schema draft dialect.
	Env string
	// Quiet suppresses message text but preserves failure signaling.
	Quiet bool
	// Pretty reformats the document to stdout.
	Pretty bool
	// Sort canonicalizes object key order before validation.
	Sort bool
}

// Overrides is one layer of partial settings. Unset fields inherit from the
// layer below; Ignore entries append instead of replacing the default.
type Overrides struct {
	Ignore   []string
	Validate common.Optional[string]
	Indent   common.Optional[string]
	Env      common.Optional[string]
	Quiet    common.Optional[bool]
	Pretty   common.Optional[bool]
	Sort     common.Optional[bool]
}

// DefaultSettings returns the lowest-precedence settings layer.
func DefaultSettings() Settings {
	return Settings{
		Ignore: cmdcommon.DefaultIgnore(),
		Indent: cmdcommon.DefaultIndent,
		Env:    cmdcommon.DefaultEnv,
	}
}

// Apply merges one overrides layer on top of s and returns the result.
// Explicitly set fields win; Ignore patterns accumulate. Layers apply in
// precedence order: defaults, then config file, then CLI flags.
func (s Settings) Apply(o Overrides) Settings {
	merged := s
	merged.Ignore = append(append([]string(nil), s.Ignore...), o.Ignore...)
	merged.Validate = o.Validate.Or(s.Validate)
	merged.Indent = o.Indent.Or(s.Indent)
	merged.Env = o.Env.Or(s.Env)
	merged.Quiet = o.Quiet.Or(s.Quiet)
	merged.Pretty = o.Pretty.Or(s.Pretty)
	merged.Sort = o.Sort.Or(s.Sort)
	return merged
}
