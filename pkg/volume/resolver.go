package volume

import "github.com/altap-salamander/core/pkg/path"

// maxReparseHops bounds ResolveReparsePoints' walk as a cycle guard (spec
// §4.2 and the boundary case in spec §8: exactly 50 hops succeeds, 51 falls
// back to the original path).
const maxReparseHops = 50

// Resolver answers volume-identity questions against a live filesystem.
type Resolver struct {
	syscalls Syscalls
}

// New creates a Resolver backed by the given Syscalls implementation.
func New(syscalls Syscalls) *Resolver {
	return &Resolver{syscalls: syscalls}
}

// ResolveSubsts replaces a substituted drive letter with its true target.
// Non-Disk paths, and Disk paths on a non-substituted drive, are returned
// unchanged.
func (r *Resolver) ResolveSubsts(p path.Path) path.Path {
	if p.Kind() != path.Disk {
		return p
	}
	root, tail := p.DiskParts()
	drive := root[0]
	target, ok := r.syscalls.SubstTarget(drive)
	if !ok {
		return p
	}
	return joinTailOnto(target, tail)
}

// joinTailOnto appends tail (already-normalized Disk/UNC segments) onto
// base, whatever kind base is.
func joinTailOnto(base path.Path, tail string) path.Path {
	if tail == "" {
		return base
	}
	switch base.Kind() {
	case path.Disk:
		root, baseTail := base.DiskParts()
		return path.NewDisk(root, joinTails(baseTail, tail))
	case path.UNC:
		server, share, baseTail := base.UNCParts()
		return path.NewUNC(server, share, joinTails(baseTail, tail))
	default:
		return base
	}
}

func joinTails(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + `\` + b
}

// ReparseResolution is the result of ResolveReparsePoints.
type ReparseResolution struct {
	// Resolved is the path after walking any reparse points.
	Resolved path.Path
	// LastReparsePoint is the last reparse point encountered, if any.
	LastReparsePoint *path.Path
	// LinkTarget is the target of LastReparsePoint, if any.
	LinkTarget *path.Path
	// LinkKind is the kind of LastReparsePoint; meaningless if
	// LastReparsePoint is nil.
	LinkKind LinkKind
	// NetRedirect is set instead of continuing resolution when a symlink
	// targets a network path.
	NetRedirect *path.Path
	// Truncatable reports whether callers may shorten Resolved further
	// (e.g. during PanelEngine's fallback chain). It is false when
	// resolution terminated at an opaque reparse point, since shortening
	// past it would cross a volume boundary.
	Truncatable bool
}

// ResolveReparsePoints walks at most maxReparseHops reparse points starting
// from p. See spec §4.2 for the full semantics.
func (r *Resolver) ResolveReparsePoints(p path.Path) (ReparseResolution, error) {
	current := p
	result := ReparseResolution{Resolved: p, Truncatable: true}

	for hop := 0; hop < maxReparseHops; hop++ {
		info, isReparse, err := r.syscalls.Reparse(current)
		if err != nil {
			return ReparseResolution{}, err
		}
		if !isReparse {
			result.Resolved = current
			return result, nil
		}

		kind := info.Kind
		target := info.Target

		if info.TargetIsNetwork {
			result.NetRedirect = &target
			result.Resolved = current
			result.LastReparsePoint = copyPath(current)
			result.LinkTarget = copyPath(target)
			result.LinkKind = kind
			result.Truncatable = true
			return result, nil
		}

		if info.Opaque {
			result.Resolved = current
			result.LastReparsePoint = copyPath(current)
			result.LinkKind = kind
			result.Truncatable = false
			return result, nil
		}

		result.LastReparsePoint = copyPath(current)
		result.LinkTarget = copyPath(target)
		result.LinkKind = kind
		current = target
	}

	// After exactly maxReparseHops hops, the last target resolves if it is
	// not itself a reparse point.
	_, isReparse, err := r.syscalls.Reparse(current)
	if err != nil {
		return ReparseResolution{}, err
	}
	if !isReparse {
		result.Resolved = current
		return result, nil
	}

	// Cycle guard tripped: fall back to the original path.
	return ReparseResolution{Resolved: p, Truncatable: true}, nil
}

func copyPath(p path.Path) *path.Path {
	c := p
	return &c
}

// SameVolumeResult is the outcome of SameVolume.
type SameVolumeResult struct {
	// Answer is the best-effort answer to "are a and b on the same
	// volume".
	Answer bool
	// Certain is true only when both sides resolved a volume GUID from a
	// local mount point.
	Certain bool
}

// SameVolume compares the volume GUIDs of the nearest mount points of a and
// b.
func (r *Resolver) SameVolume(a, b path.Path) SameVolumeResult {
	guidA, _, okA := r.syscalls.VolumeGUID(a)
	guidB, _, okB := r.syscalls.VolumeGUID(b)

	if okA && okB {
		return SameVolumeResult{Answer: guidA == guidB, Certain: true}
	}

	// Best-effort: fall back to root equality without claiming certainty.
	return SameVolumeResult{Answer: rootsEqual(a, b), Certain: false}
}

func rootsEqual(a, b path.Path) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case path.Disk:
		rootA, _ := a.DiskParts()
		rootB, _ := b.DiskParts()
		return rootA == rootB
	case path.UNC:
		serverA, shareA, _ := a.UNCParts()
		serverB, shareB, _ := b.UNCParts()
		return serverA == serverB && shareA == shareB
	default:
		return false
	}
}

// MountInfo identifies the storage underlying a path.
type MountInfo struct {
	// MountPoint is the path to the nearest mount point at or above the
	// queried path.
	MountPoint path.Path
	// GUIDPath is the volume GUID path (e.g. "\\?\Volume{...}\").
	GUIDPath string
}

// GetGuidAndMountPoint identifies the storage underlying p, for comparing
// identity across reparses and substs. It returns nil if no GUID could be
// obtained.
func (r *Resolver) GetGuidAndMountPoint(p path.Path) *MountInfo {
	guid, mountPoint, ok := r.syscalls.VolumeGUID(p)
	if !ok {
		return nil
	}
	return &MountInfo{MountPoint: mountPoint, GUIDPath: guid}
}
