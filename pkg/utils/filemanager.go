// =============================================================================
// R2 Troubleshooter - File Utilities
// =============================================================================
//
// This module provides the small set of file operations the tool needs:
//   - Directory management (create parent directories on demand)
//   - Atomic writes (a reader never sees a half-written table)
//
// ATOMIC WRITE STRATEGY:
//   The document is written to a temporary file in the destination directory
//   and renamed over the target. A failed run leaves any previous output
//   untouched and no stray partial file behind. The temporary file is
//   created with the requested permissions, so the process umask applies
//   to the final file as it does for os.WriteFile.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// EnsureParentDir creates the directory that will contain path.
func EnsureParentDir(path string) error {
	return EnsureDir(filepath.Dir(path))
}

// =============================================================================
// FILE WRITING
// =============================================================================

// WriteFileAtomic writes data to path through a temporary file and a rename.
//
// PARAMETERS:
//   - path: The destination file. Its directory must already exist.
//   - data: The full file contents.
//   - perm: The permission bits of the final file, before the umask.
//
// RETURNS:
//   - An error if any step fails; the temporary file is removed in that case.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)

	tmpName := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	tmp, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
