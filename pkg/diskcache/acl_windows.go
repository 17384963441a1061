//go:build windows

package diskcache

import (
	"os"

	"github.com/hectane/go-acl"
)

// hardenWorkspace restricts the cache workspace to the current user,
// mirroring the ownership/permission hardening
// mutagen's filesystem.SetPermissionsByPath applies to synchronization
// roots. Run once, at first-instance startup, before PurgeOrphanWorkspace.
func hardenWorkspace(root string) error {
	return acl.Chmod(root, os.FileMode(0700))
}
