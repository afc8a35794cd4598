// Package fileutils provides the file operations shared by the store and the CSV writers.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/budget-csv/internal/models"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// EnsureDirectoryExists creates a directory, and its parents, if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dirPath, err)
	}
	return nil
}

// CreateFile creates or truncates filePath for writing, creating parent directories.
func CreateFile(filePath string, perm os.FileMode) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("error creating file %s: %w", filePath, err)
	}
	return file, nil
}

// WriteFileAtomic replaces filePath with data. The data is written and synced to a
// temporary file in the same directory, which is then renamed over filePath; readers
// see either the old or the new content, and a failure leaves the old file intact.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing %s: %w", filePath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error syncing %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", filePath, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("error setting permissions of %s: %w", filePath, err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("error replacing %s: %w", filePath, err)
	}
	return nil
}
