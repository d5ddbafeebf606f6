package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/profit-calculator/internal/codec"
	"github.com/ginjaninja78/profit-calculator/internal/config"
	"github.com/ginjaninja78/profit-calculator/internal/row"
	"github.com/ginjaninja78/profit-calculator/pkg/utils"
)

func strp(s string) *string { return &s }

func openEmpty(t *testing.T, name string) *Session {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), name), config.Default(), nil)
	require.NoError(t, err)
	require.Zero(t, s.Sheet.Len())
	return s
}

func TestOpenMissingStateFile(t *testing.T) {
	s := openEmpty(t, "state.json")
	assert.False(t, utils.FileExists(s.Path()))
}

func TestSaveAndReopen(t *testing.T) {
	for _, name := range []string{"state.json", "state.yaml", "state.xlsx", "state.csv", "state.xml"} {
		t.Run(name, func(t *testing.T) {
			s := openEmpty(t, name)
			first := s.Sheet.Add(row.Overrides{})
			second := s.Sheet.Add(row.Overrides{ItemName: strp("Rope"), Quantity: strp("10")})
			require.NoError(t, s.Save())

			reopened, err := Open(s.Path(), config.Default(), nil)
			require.NoError(t, err)

			rows := reopened.Sheet.Rows()
			require.Len(t, rows, 2)
			assert.Equal(t, first, rows[0])
			assert.Equal(t, second, rows[1])
		})
	}
}

func TestSaveEmptySheet(t *testing.T) {
	s := openEmpty(t, "state.json")
	require.NoError(t, s.Save())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestOpenCorruptStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644))

	_, err := Open(path, config.Default(), nil)
	assert.ErrorIs(t, err, codec.ErrNotSequence)
}

func TestExportRefusesEmptySheet(t *testing.T) {
	s := openEmpty(t, "state.json")
	out := filepath.Join(t.TempDir(), "out.json")

	_, err := s.Export(out)
	assert.ErrorIs(t, err, codec.ErrEmptyExport)
	assert.False(t, utils.FileExists(out))
}

func TestExportWritesDocument(t *testing.T) {
	s := openEmpty(t, "state.json")
	added := s.Sheet.Add(row.Overrides{})
	out := filepath.Join(t.TempDir(), "out.json")

	result, err := s.Export(out)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)
	assert.Equal(t, codec.JSON, result.Format)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	rows, err := codec.Import(data, codec.JSON)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, added, rows[0])
}

func TestImportReplacesAndBacksUp(t *testing.T) {
	s := openEmpty(t, "state.json")
	s.Sheet.Add(row.Overrides{ItemName: strp("Old")})
	require.NoError(t, s.Save())

	doc := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(doc, []byte(`[
  {"id": "a", "itemName": "Wire", "quantity": "30", "cost": "9.75", "discount": "0.02",
   "gst": "0.18", "expense": "55", "sellingPrice": "660", "profit": "999"}
]`), 0o644))

	result, err := s.Import(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)
	assert.Equal(t, s.Path()+utils.BackupSuffix, result.Backup)

	rows := s.Sheet.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Wire", rows[0].ItemName)
	assert.Equal(t, "266.75", rows[0].Profit, "derived values are recomputed")

	reopened, err := Open(s.Path(), config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, rows, reopened.Sheet.Rows())

	backup, err := os.ReadFile(result.Backup)
	require.NoError(t, err)
	assert.Contains(t, string(backup), "Old")
}

func TestImportWithoutRecompute(t *testing.T) {
	off := false
	cfg := config.Default()
	cfg.RecomputeOnImport = &off

	s, err := Open(filepath.Join(t.TempDir(), "state.json"), cfg, nil)
	require.NoError(t, err)

	doc := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(doc, []byte(`[{"itemName": "Wire", "profit": "999"}]`), 0o644))

	_, err = s.Import(doc)
	require.NoError(t, err)
	assert.Equal(t, "999", s.Sheet.Rows()[0].Profit)
}

func TestImportRejectedLeavesStateUntouched(t *testing.T) {
	s := openEmpty(t, "state.json")
	kept := s.Sheet.Add(row.Overrides{})
	require.NoError(t, s.Save())
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		target  error
	}{
		{name: "not a list", content: `{"itemName": "x"}`, target: codec.ErrNotSequence},
		{name: "no item name", content: `[{"cost": "1"}]`, target: codec.ErrMissingItemName},
		{name: "malformed element", content: `[{"itemName": "x"}, 5]`, target: codec.ErrMalformedRecord},
		{name: "unreadable", content: `[{`, target: codec.ErrUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := filepath.Join(t.TempDir(), "in.json")
			require.NoError(t, os.WriteFile(doc, []byte(tt.content), 0o644))

			_, err := s.Import(doc)
			assert.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, codec.ErrInvalidImport)

			assert.Equal(t, []row.Row{kept}, s.Sheet.Rows())
			after, err := os.ReadFile(s.Path())
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.False(t, utils.FileExists(s.Path()+utils.BackupSuffix))
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	s := openEmpty(t, "state.json")

	_, err := s.Import(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestImportFromSpreadsheet(t *testing.T) {
	src := openEmpty(t, "state.json")
	src.Sheet.Add(row.Overrides{})
	src.Sheet.Add(row.Overrides{ItemName: strp("Rope")})
	out := filepath.Join(t.TempDir(), "sheet.xlsx")
	_, err := src.Export(out)
	require.NoError(t, err)

	dst := openEmpty(t, "state.json")
	result, err := dst.Import(out)
	require.NoError(t, err)
	assert.Equal(t, codec.XLSX, result.Format)
	assert.Equal(t, src.Sheet.Rows(), dst.Sheet.Rows())
}

func TestExportImportXMLWithControlCharacters(t *testing.T) {
	src := openEmpty(t, "state.json")
	src.Sheet.Add(row.Overrides{ItemName: strp("x\x01y")})
	out := filepath.Join(t.TempDir(), "out.xml")
	_, err := src.Export(out)
	require.NoError(t, err)

	dst := openEmpty(t, "state.json")
	result, err := dst.Import(out)
	require.NoError(t, err)
	assert.Equal(t, codec.XML, result.Format)

	rows := dst.Sheet.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "x\uFFFDy", rows[0].ItemName)
	assert.Equal(t, src.Sheet.Rows()[0].Profit, rows[0].Profit)
}
