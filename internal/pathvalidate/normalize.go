package pathvalidate

import (
	"os"
	"path/filepath"
	"strings"
)

// expandHome expands a leading "~/" (or a bare "~") to the current user's
// home directory. "~otheruser/..." is left untouched — paths are data, not
// shell syntax, and resolving another account's home is not this bridge's
// business.
func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") && home != "" {
		return filepath.Join(home, path[2:])
	}
	return path
}

// longestExistingPrefix walks up from path until it finds a prefix that
// exists on disk, returning that prefix and the remainder. This lets the
// validator canonicalize paths that don't exist yet (new files, new
// directories) while still resolving symlinks on the part of the path that
// does exist.
func longestExistingPrefix(path string) (existing, remainder string) {
	cur := path
	var tail []string
	for {
		if _, err := os.Lstat(cur); err == nil {
			return cur, filepath.Join(tail...)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached the root without finding anything that exists.
			return parent, filepath.Join(append([]string{filepath.Base(cur)}, tail...)...)
		}
		tail = append([]string{filepath.Base(cur)}, tail...)
		cur = parent
	}
}
