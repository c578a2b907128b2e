// Package fsio performs the actual filesystem I/O for approved operations:
// reads with a streamed size cap, writes with optional backup, and bounded
// recursive directory listing.
package fsio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// backupFormat names a backup file: <path>.backup.<unix-seconds>.
const backupFormat = "%s.backup.%d"

// nowFunc is overridable in tests.
var nowFunc = time.Now

// Backup copies the file at path to a sibling "<path>.backup.<unix-seconds>"
// file, grounded on the teacher's sandbox.copyFile idiom but bounded to a
// single file rather than a whole workspace tree, since there is no
// commit/diff concept to preserve here. Returns the backup path. If path
// does not exist, this is a no-op (nothing to back up before an overwrite
// that is really a create).
func Backup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open for backup: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat for backup: %w", err)
	}

	dst := fmt.Sprintf(backupFormat, path, nowFunc().Unix())
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_EXCL, info.Mode())
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("copy backup: %w", err)
	}

	return dst, nil
}

// EnsureParentDir creates path's parent directory tree when it does not
// already exist, used by write_file's create_directories option.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
