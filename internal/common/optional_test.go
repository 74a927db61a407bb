//nolint:revive // common is an appropriate name for shared utilities package
package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptional(t *testing.T) {
	t.Run("unset value reports IsSet false", func(t *testing.T) {
		o := None[string]()
		assert.False(t, o.IsSet())
		assert.Equal(t, "", o.Value())
	})

	t.Run("set value reports IsSet true", func(t *testing.T) {
		o := Some(true)
		assert.True(t, o.IsSet())
		assert.True(t, o.Value())
	})

	t.Run("explicit zero is still set", func(t *testing.T) {
		o := Some(false)
		assert.True(t, o.IsSet())
		assert.False(t, o.Value())
	})

	t.Run("Or prefers the stored value", func(t *testing.T) {
		assert.Equal(t, "  ", Some("  ").Or("\t"))
		assert.Equal(t, "\t", None[string]().Or("\t"))
	})
}
