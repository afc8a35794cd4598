// Package validation checks the file paths handed to the commands before any work starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("an input file is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input %s is not a regular file", path)
	}
	return nil
}

// IsValidOutputFile checks that output can be created and would not replace input.
// An empty output is valid and means standard output.
func IsValidOutputFile(input, output string) error {
	if output == "" {
		return nil
	}
	if input != "" && samePath(input, output) {
		return fmt.Errorf("output file %s would overwrite the input file", output)
	}
	dir := filepath.Dir(output)
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("output directory does not exist: %s", dir)
	}
	if err != nil {
		return fmt.Errorf("error checking output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return fmt.Errorf("output %s is a directory", output)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	if absA == absB {
		return true
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
