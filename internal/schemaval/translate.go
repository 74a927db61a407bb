package schemaval

import (
	"fmt"
	"strings"
)

// Translate maps failures to formatted diagnostic strings, one per rule
// violation, preserving the engine's discovery order.
func Translate(failures []Failure) []string {
	messages := make([]string, 0, len(failures))
	for _, f := range failures {
		messages = append(messages, translateOne(f))
	}
	return messages
}

// translateOne applies the rule-specific message template. Limits are
// interpolated as given by the engine, without reformatting.
func translateOne(f Failure) string {
	switch {
	case f.Rule == "type":
		return fmt.Sprintf("%q must be of type %q", f.Field, fmt.Sprint(f.Limit))
	case f.Rule == "minLength":
		return fmt.Sprintf("%q must be at least %q characters", f.Field, fmt.Sprint(f.Limit))
	case f.Rule == "maxLength":
		return fmt.Sprintf("%q may be at most %q characters", f.Field, fmt.Sprint(f.Limit))
	case f.Rule == "minProperties":
		return fmt.Sprintf("%q must hold at least %q properties", f.Field, fmt.Sprint(f.Limit))
	case f.Rule == "maxProperties":
		return fmt.Sprintf("%q may hold at most %q properties", f.Field, fmt.Sprint(f.Limit))
	case f.Rule == "patternProperties":
		return fmt.Sprintf("%q must hold %q properties", f.Field, fmt.Sprint(f.Limit))
	case f.Rule == "minItems":
		return fmt.Sprintf("%q must have at least %q items", f.Field, fmt.Sprint(f.Limit))
	case f.Rule == "maxItems":
		return fmt.Sprintf("%q may have at most %q items", f.Field, fmt.Sprint(f.Limit))
	case f.Rule == "required":
		return fmt.Sprintf("%q is %s but unset", f.Field, f.Rule)
	case strings.HasPrefix(f.Rule, "additional"):
		return fmt.Sprintf("%q is not allowed as %s key", f.Field, f.Rule)
	default:
		return fmt.Sprintf("%q does not meet rule \"%s=%v\" - %s", f.Field, f.Rule, f.Limit, f.Description)
	}
}
