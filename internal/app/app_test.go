package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFailsWhenCatalogDirMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "catalog.yaml")
	_, err := Run(Config{CatalogPath: missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch catalog")
	assert.NotErrorIs(t, err, ErrCancelled)
}
