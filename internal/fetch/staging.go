package fetch

import (
	"fmt"
	"os"
	"path/filepath"
)

// stagingFile creates a temp file next to localPath and returns its name.
// Keeping it on the same filesystem makes the final rename atomic.
func stagingFile(localPath string) (string, error) {
	dir := filepath.Dir(localPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".plantframe-fetch-*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to close staging file: %w", err)
	}
	return name, nil
}

// commit moves the staged file over the destination.
func commit(staged, localPath string) error {
	if err := os.Rename(staged, localPath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", localPath, err)
	}
	return nil
}
