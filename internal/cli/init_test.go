package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhofdc/sourcecode-scanner/internal/config"
)

func TestInitWritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	cmd := newInitCmd()
	cmd.SetArgs([]string{"--dir", dir})
	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(filepath.Join(dir, ".scanner-config.json"))
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal(b, &cfg))
	assert.Equal(t, config.Default(), cfg)
}
