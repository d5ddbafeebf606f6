// =============================================================================
// Profit Calculator - Session
// =============================================================================
//
// A Session ties a Sheet to the state file it was loaded from. The CLI opens
// one per command, applies the user's action to the sheet and saves it.
//
// LIFECYCLE:
//   1. Open    - read the state file (if any) into a fresh sheet
//   2. act     - Add / Update / Delete on Session.Sheet, or Import / Export
//   3. Save    - write the sheet back to the state file atomically
//
// IMPORT:
//   The document is read to completion and validated before anything is
//   touched. A rejected document leaves both the sheet and the state file as
//   they were. An accepted one replaces the collection wholesale; the
//   previous state file is kept as <state>.bak.
//
// =============================================================================

package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/profit-calculator/internal/codec"
	"github.com/ginjaninja78/profit-calculator/internal/config"
	"github.com/ginjaninja78/profit-calculator/internal/csvio"
	"github.com/ginjaninja78/profit-calculator/internal/sheet"
	"github.com/ginjaninja78/profit-calculator/pkg/utils"
)

// ErrNoFile is returned when an import names a file that does not exist.
var ErrNoFile = errors.New("no file selected")

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of an import or export.
type Result struct {
	// Path is the file that was read or written.
	Path string

	// Format is the document format used.
	Format codec.Format

	// Rows is the number of rows transferred.
	Rows int

	// Backup is the copy of the previous state file made before an import.
	// Empty when there was nothing to back up.
	Backup string

	// Elapsed is the time taken.
	Elapsed time.Duration
}

// =============================================================================
// SESSION STRUCTURE
// =============================================================================

// Session holds the sheet loaded from a state file.
type Session struct {
	// Sheet is the working collection.
	Sheet *sheet.Sheet

	path   string
	config *config.Config
	logger *zap.Logger
}

// New returns a session with an empty sheet bound to path. Nothing is read.
func New(path string, cfg *config.Config, logger *zap.Logger) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		Sheet: sheet.New(
			sheet.WithDefaults(cfg.RowDefaults()),
			sheet.WithLogger(logger.Named("sheet")),
		),
		path:   path,
		config: cfg,
		logger: logger,
	}
}

// Open loads the state file at path. A missing file yields an empty sheet.
func Open(path string, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	s := New(path, cfg, logger)
	cfg, logger = s.config, s.logger

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("state file not found, starting empty", zap.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	rows, err := decode(data, codec.FormatFromPath(path), s.csvSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to load state file %s: %w", path, err)
	}
	s.Sheet.Replace(rows, cfg.ShouldRecomputeOnImport())

	logger.Debug("state loaded", zap.String("path", path), zap.Int("rows", len(rows)))
	return s, nil
}

// Path returns the state file path.
func (s *Session) Path() string { return s.path }

// Save writes the sheet to the state file. An empty sheet is saved as an
// empty document.
func (s *Session) Save() error {
	data, err := encode(s.Sheet.Rows(), codec.FormatFromPath(s.path), s.csvSettings())
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := utils.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	s.logger.Debug("state saved", zap.String("path", s.path), zap.Int("rows", s.Sheet.Len()))
	return nil
}

// =============================================================================
// EXPORT / IMPORT
// =============================================================================

// Export writes the sheet to path in the format its extension names. An
// empty sheet is refused with codec.ErrEmptyExport and no file is written.
func (s *Session) Export(path string) (Result, error) {
	start := time.Now()
	format := codec.FormatFromPath(path)
	result := Result{Path: path, Format: format}

	rows := s.Sheet.Rows()
	if len(rows) == 0 {
		return result, codec.ErrEmptyExport
	}

	data, err := encode(rows, format, s.csvSettings())
	if err != nil {
		return result, fmt.Errorf("failed to encode export: %w", err)
	}
	if err := utils.WriteFileAtomic(path, data, 0o644); err != nil {
		return result, fmt.Errorf("failed to write export: %w", err)
	}

	result.Rows = len(rows)
	result.Elapsed = time.Since(start)

	s.logger.Info("exported",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("rows", result.Rows),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// Import replaces the sheet with the rows of the document at path and
// saves the state file. Nothing changes unless the document is valid.
func (s *Session) Import(path string) (Result, error) {
	start := time.Now()
	format := codec.FormatFromPath(path)
	result := Result{Path: path, Format: format}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return result, fmt.Errorf("%w: %s", ErrNoFile, path)
	}
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", path, err)
	}

	rows, err := decode(data, format, s.csvSettings())
	if err != nil {
		s.logger.Warn("import rejected", zap.String("path", path), zap.Error(err))
		return result, err
	}

	backup, err := utils.BackupFile(s.path)
	if err != nil {
		return result, err
	}

	s.Sheet.Replace(rows, s.config.ShouldRecomputeOnImport())
	if err := s.Save(); err != nil {
		return result, err
	}

	result.Rows = len(rows)
	result.Backup = backup
	result.Elapsed = time.Since(start)

	s.logger.Info("imported",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("rows", result.Rows),
		zap.String("backup", backup),
	)
	return result, nil
}

func (s *Session) csvSettings() csvio.Settings {
	return csvio.Settings{Delimiter: s.config.CSVDelimiter}
}
