//go:build !windows

package volume

import "github.com/altap-salamander/core/pkg/path"

// stubSyscalls reports every query as unsupported. VolumeResolver's
// semantics are Windows-specific (substs, NTFS reparse points, volume
// GUIDs); non-Windows builds exist only so the rest of the module compiles
// and tests.
type stubSyscalls struct{}

// NewSyscalls returns a no-op Syscalls implementation on platforms without
// native subst/reparse/volume-GUID support.
func NewSyscalls() Syscalls {
	return stubSyscalls{}
}

func (stubSyscalls) SubstTarget(drive byte) (path.Path, bool) {
	return path.Path{}, false
}

func (stubSyscalls) Reparse(p path.Path) (ReparseInfo, bool, error) {
	return ReparseInfo{}, false, nil
}

func (stubSyscalls) VolumeGUID(p path.Path) (string, path.Path, bool) {
	return "", path.Path{}, false
}
