package volume

import "github.com/altap-salamander/core/pkg/path"

// LinkKind identifies what a reparse point represents.
type LinkKind int

const (
	// LinkUnknown covers reparse tags the resolver does not specifically
	// recognize.
	LinkUnknown LinkKind = iota
	// LinkMountPoint is a volume mount point (an opaque reparse: it
	// terminates resolution without fully substituting a path).
	LinkMountPoint
	// LinkJunction is an NTFS directory junction.
	LinkJunction
	// LinkSymlink is an NTFS symbolic link.
	LinkSymlink
)

// ReparseInfo describes a single reparse point as reported by the
// filesystem.
type ReparseInfo struct {
	// Kind identifies the reparse tag.
	Kind LinkKind
	// Target is the link's target path, meaningful for Junction and
	// Symlink; it is the zero Path for MountPoint and Unknown.
	Target path.Path
	// TargetIsNetwork is true when Target names a network (UNC) location.
	TargetIsNetwork bool
	// Opaque is true when the reparse point should be treated as a volume
	// boundary that the resolver must not attempt to substitute past
	// (mount points, and any unrecognized reparse tag).
	Opaque bool
}

// Syscalls abstracts the Windows-specific primitives VolumeResolver needs.
// The real implementation (syscalls_windows.go) is backed by
// golang.org/x/sys/windows; a non-Windows build gets a stub that reports
// every query as unsupported, and tests use an in-memory fake.
type Syscalls interface {
	// SubstTarget returns the real target of a substituted drive letter
	// (as set by the SUBST command), if drive is in fact a subst.
	SubstTarget(drive byte) (path.Path, bool)
	// Reparse reports whether p is a reparse point and, if so, describes
	// it.
	Reparse(p path.Path) (ReparseInfo, bool, error)
	// VolumeGUID returns the volume GUID path and the mount point it was
	// obtained from for the nearest mount point at or above p. ok is false
	// if no GUID could be obtained (e.g. a network path).
	VolumeGUID(p path.Path) (guidPath string, mountPoint path.Path, ok bool)
}
