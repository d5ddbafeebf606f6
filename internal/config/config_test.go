package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/profit-calculator/internal/row"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./profit-calculator-state.json", cfg.StateFile)
	assert.Equal(t, "profit-calculator-state.json", cfg.ExportFileName)
	assert.True(t, cfg.ShouldRecomputeOnImport())
	assert.Equal(t, ",", cfg.CSVDelimiter)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "stderr", cfg.LogOutput)
	assert.Equal(t, row.BuiltinDefaults(), cfg.RowDefaults())
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profitcalc.yaml")
	content := `
state_file: sheet.yaml
recompute_on_import: false
log_level: debug
log_format: json
defaults:
  item_name: Cable
  gst: "0.05"
  quantity: "100"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sheet.yaml", cfg.StateFile)
	assert.False(t, cfg.ShouldRecomputeOnImport())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	d := cfg.RowDefaults()
	assert.Equal(t, "Cable", d.ItemName)
	assert.Equal(t, "0.05", d.GST)
	assert.Equal(t, "100", d.Quantity)
	assert.Equal(t, "9.75", d.Cost, "unset defaults fall back to the built-in ones")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults: [\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
