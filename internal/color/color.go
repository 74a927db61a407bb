// Package color provides small helpers for coloring terminal output using
// ANSI escape sequences. Diagnostic formatting uses a Palette so color can
// be disabled wholesale for non-interactive runs.
//
//nolint:revive // package name conflicts with standard library
package color

const (
	resetCode  = "\033[0m"
	redCode    = "\033[31m"
	yellowCode = "\033[33m"
)

// Palette wraps text with ANSI escape sequences when enabled, and passes
// text through untouched when disabled.
type Palette struct {
	enabled bool
}

// NewPalette creates a palette. Pass false to strip all coloring.
func NewPalette(enabled bool) *Palette {
	return &Palette{enabled: enabled}
}

// Enabled reports whether the palette emits escape sequences.
func (p *Palette) Enabled() bool {
	return p.enabled
}

func (p *Palette) paint(code, text string) string {
	if !p.enabled {
		return text
	}
	return code + text + resetCode
}

// Red colors text in red. Used for failure headers.
func (p *Palette) Red(text string) string {
	return p.paint(redCode, text)
}

// Yellow colors text in yellow. Used for interactive hints.
func (p *Palette) Yellow(text string) string {
	return p.paint(yellowCode, text)
}
