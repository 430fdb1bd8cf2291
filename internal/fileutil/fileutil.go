// Package fileutil provides common file operations.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFile writes data to path atomically via a temp file in the same
// directory, creating parent directories if needed. A failed write never
// leaves a partial file at path.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create parent directories: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Ensure cleanup on any failure
	success := false
	defer func() {
		if !success {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write content: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename to destination: %w", err)
	}

	success = true
	return nil
}

// ReplaceDir atomically replaces dst with the contents of src by renaming
// directories. src is consumed on success. If dst does not exist yet, src
// is simply renamed into place. On failure the previous dst is restored.
func ReplaceDir(dst, src string) error {
	_, statErr := os.Stat(dst)
	dstExists := statErr == nil

	if !dstExists {
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return fmt.Errorf("create parent directories: %w", err)
		}
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("rename into place: %w", err)
		}
		return nil
	}

	// UUID suffix prevents collisions with a concurrent replace
	oldDir := dst + ".old-" + uuid.New().String()[:8]

	if err := os.Rename(dst, oldDir); err != nil {
		return fmt.Errorf("rename current directory: %w", err)
	}

	if err := os.Rename(src, dst); err != nil {
		// Put the previous directory back so dst is never left missing
		if recoverErr := os.Rename(oldDir, dst); recoverErr != nil {
			return fmt.Errorf("rename into place: %w (recovery also failed: %v)", err, recoverErr)
		}
		return fmt.Errorf("rename into place: %w", err)
	}

	os.RemoveAll(oldDir)
	return nil
}

// DirHasContent reports whether dir exists and has at least one entry.
func DirHasContent(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	return len(entries) > 0
}
