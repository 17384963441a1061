//go:build !windows

package diskcache

import "os"

// hardenWorkspace restricts the workspace root to its owner outside
// Windows by setting POSIX permission bits 0700 on it.
func hardenWorkspace(root string) error {
	return os.Chmod(root, 0700)
}
