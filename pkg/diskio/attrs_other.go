//go:build !windows

package diskio

import "os"

// fileAttributes has no non-Windows equivalent; Disk-kind paths outside
// Windows report no read-only/hidden/system bits, matching
// volume.NewSyscalls's non-Windows stub posture for the same reason (this
// core engine's Non-goals are scoped to Windows Explorer shell behavior).
func fileAttributes(info os.FileInfo) (readOnly, hidden, system bool, attrs uint32) {
	return false, false, false, 0
}

func setFileAttributes(native string, readOnly, hidden, system bool) error {
	return nil
}

func shortName(native string) (string, bool) {
	return "", false
}
