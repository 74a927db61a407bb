package cmdcommon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheDir(t *testing.T) {
	t.Run("environment variable wins", func(t *testing.T) {
		t.Setenv(CacheDirEnvVar, "/tmp/jsonlint-test-cache")
		assert.Equal(t, "/tmp/jsonlint-test-cache", CacheDir())
	})

	t.Run("defaults next to the executable", func(t *testing.T) {
		t.Setenv(CacheDirEnvVar, "")
		dir := CacheDir()
		assert.Equal(t, cacheDirName, filepath.Base(dir))
	})
}

func TestDefaultIgnore(t *testing.T) {
	// Callers mutate the returned slice while merging settings, so every
	// call must return a fresh copy.
	a := DefaultIgnore()
	a[0] = "mutated"
	assert.Equal(t, []string{"node_modules/**/*"}, DefaultIgnore())
}
