package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindConfigFile searches for name starting from startDir and walking up the
// directory tree. It stops at the first directory holding go.mod, so a
// module never picks up a file from an enclosing project.
//
// It returns the absolute path of the file, or an error if it was not found.
//
// Example:
//
//	path, err := FindConfigFile("/home/user/project/cmd/nfekey", "nfekey.yaml")
//	if err != nil {
//	    // no config file, rely on the environment
//	}
func FindConfigFile(startDir, name string) (string, error) {
	absPath, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absPath
	for {
		candidate := filepath.Join(currentDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		if _, err := os.Stat(filepath.Join(currentDir, "go.mod")); err == nil {
			return "", fmt.Errorf("%s not found below module root %s", name, currentDir)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", fmt.Errorf("%s not found in any parent directory", name)
		}
		currentDir = parentDir
	}
}
