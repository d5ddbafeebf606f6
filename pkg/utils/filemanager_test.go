package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestBackupFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	backup, err := BackupFile(path)
	require.NoError(t, err)
	assert.Empty(t, backup, "nothing to back up")

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	backup, err = BackupFile(path)
	require.NoError(t, err)
	assert.Equal(t, path+BackupSuffix, backup)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestGenerateOutputFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	tests := []struct {
		name   string
		format string
		params map[string]string
		want   string
	}{
		{name: "plain", format: "profit-calculator-state.json", want: "profit-calculator-state.json"},
		{name: "date", format: "profit-{date}.xlsx", want: "profit-20240115.xlsx"},
		{name: "timestamp", format: "profit-{timestamp}.csv", want: "profit-20240115_143022.csv"},
		{name: "params", format: "{sheet}-{time}.yaml", params: map[string]string{"sheet": "q1"}, want: "q1-143022.yaml"},
		{name: "adds extension", format: "profit", want: "profit.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateOutputFileName(tt.format, tt.params, now))
		})
	}
}

func TestGenerateOutputFileNameUUID(t *testing.T) {
	a := GenerateOutputFileName("state-{uuid}.json", nil)
	b := GenerateOutputFileName("state-{uuid}.json", nil)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "state-"))
	assert.Len(t, a, len("state-.json")+36)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "nope")))
}
