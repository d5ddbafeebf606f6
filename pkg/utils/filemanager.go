// =============================================================================
// Profit Calculator - File Manager Utility
// =============================================================================
//
// This module provides the file utilities used around state documents:
//   - Atomic writes (temp file + rename)
//   - Backups of a state file before an import replaces it
//   - Export file naming with placeholders
//
// WRITE STRATEGY:
//   Documents are written to a temporary file in the target directory and
//   renamed over the target, so an interrupted save never leaves a truncated
//   state file behind.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BackupSuffix is appended to a state file's name to form its backup.
const BackupSuffix = ".bak"

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic writes data to path via a temporary file and a rename.
//
// PARAMETERS:
//   - path: The destination file.
//   - data: The full file contents.
//   - mode: The permission bits of the resulting file.
//
// RETURNS:
//   - An error if any step fails; the destination is then left untouched.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// BACKUPS
// =============================================================================

// BackupFile copies path to path+BackupSuffix.
//
// RETURNS:
//   - The backup path, or "" when path does not exist.
//   - An error if copying fails.
func BackupFile(path string) (string, error) {
	if !FileExists(path) {
		return "", nil
	}

	backup := path + BackupSuffix
	if err := copyFile(path, backup); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return backup, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands the placeholders of an export file name.
//
// PARAMETERS:
//   - format: The file name template.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//   - params: Extra placeholder values, keyed without braces.
//
// RETURNS:
//   - The generated file name. A name without an extension gets ".json".
//
// EXAMPLE:
//   format: "profit-{date}.xlsx"
//   output: "profit-20240115.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	return generateOutputFileName(format, params, time.Now())
}

func generateOutputFileName(format string, params map[string]string, now time.Time) string {
	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if filepath.Ext(result) == "" {
		result += ".json"
	}

	return result
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
