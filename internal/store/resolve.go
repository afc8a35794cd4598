package store

import (
	"os"
	"path/filepath"

	"fjacquet/budget-csv/internal/fileutils"
)

// ResolvePath locates an existing category file. Absolute paths are returned as-is.
// A relative name is looked up in the working directory, then ./config/, then
// $HOME/.config/budget-csv/. When none exists, filename itself is returned so that
// the first save creates it in the working directory.
func ResolvePath(filename string) string {
	if filename == "" {
		filename = DefaultCategoriesFile
	}
	if filepath.IsAbs(filename) {
		return filename
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "budget-csv", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location
		}
	}
	return filename
}
