package path

import "strings"

// Prober answers filesystem-existence questions for SplitForOperation. It
// is the one place PathKit touches the filesystem.
type Prober interface {
	// Stat reports whether p exists and, if so, whether it is a directory.
	Stat(p Path) (isDir bool, exists bool)
}

// SplitResultKind distinguishes a plain directory target from a target that
// resolves into an archive.
type SplitResultKind int

const (
	// SplitNormal indicates ExistingPrefix is a plain Disk/UNC directory
	// (or, in the degenerate case, the target IS the full path with
	// nothing left to create).
	SplitNormal SplitResultKind = iota
	// SplitIntoArchive indicates ExistingPrefix names a file that is also
	// a registered archive format; ToCreateSegment is then interpreted as
	// a path inside that archive.
	SplitIntoArchive
)

// SplitResult is the outcome of SplitForOperation.
type SplitResult struct {
	// ExistingPrefix is the longest prefix of the input that exists on
	// disk (or, for SplitIntoArchive, the archive file itself).
	ExistingPrefix Path
	// ToCreateSegment is the remainder of the input beyond ExistingPrefix,
	// using "\" as its internal separator if it spans more than one
	// level. Empty if the input resolved entirely to an existing path.
	ToCreateSegment string
	// Mask is the operation mask: either an explicit wildcard token taken
	// from the input, a literal rename target, or the synthesized "*.*".
	Mask string
	// Kind distinguishes a plain-directory target from an into-archive
	// target.
	Kind SplitResultKind
	// IsDir reports whether ExistingPrefix is a directory. False for
	// SplitIntoArchive (where ExistingPrefix's container is a file) and
	// for the degenerate single-file case.
	IsDir bool
}

func containsWildcard(s string) bool {
	return strings.ContainsAny(s, "*?#")
}

// SplitForOperation splits user-entered input for a Copy/Move/Pack target
// into an existing prefix, a to-create remainder, and an operation mask.
// See spec §4.1 for the full algorithm description.
func SplitForOperation(
	input string,
	ctx Context,
	prober Prober,
	selectionCount int,
	focusedName string,
) (SplitResult, error) {
	normalized := normalizeSeparators(input)

	var explicitMask string
	directoryPortion := normalized
	if idx := strings.LastIndexByte(normalized, '\\'); idx >= 0 {
		lastSegment := normalized[idx+1:]
		if lastSegment != "" && containsWildcard(lastSegment) {
			explicitMask = lastSegment
			directoryPortion = normalized[:idx]
		}
	} else if containsWildcard(normalized) {
		explicitMask = normalized
		directoryPortion = ""
	}

	if directoryPortion == "" && explicitMask != "" {
		// The entire input was a bare mask: resolve against the current
		// directory.
		if ctx == nil {
			return SplitResult{}, ErrIncompletePath
		}
		cur, ok := ctx.CurrentPath()
		if !ok {
			return SplitResult{}, ErrIncompletePath
		}
		return SplitResult{
			ExistingPrefix: cur,
			Mask:           explicitMask,
			Kind:           SplitNormal,
			IsDir:          true,
		}, nil
	}

	base, err := Parse(directoryPortion, ctx)
	if err != nil {
		return SplitResult{}, err
	}
	if base.Kind() == Archive {
		// Re-flatten an archive-classified path so the existence walk below
		// finds the archive file and reports an into-archive split.
		container, interior := base.ArchiveParts()
		root, server, share := baseRoot(container)
		flat := append(tailSegments(baseTail(container)), tailSegments(interior)...)
		base = buildDiskOrUNC(container.Kind(), root, server, share, flat)
	}
	if base.Kind() != Disk && base.Kind() != UNC {
		return SplitResult{}, ErrInvalidPath
	}

	segments := tailSegments(baseTail(base))
	root, server, share := baseRoot(base)

	existingCount := len(segments)
	var isDir, exists bool
	for existingCount >= 0 {
		candidate := buildDiskOrUNC(base.Kind(), root, server, share, segments[:existingCount])
		isDir, exists = prober.Stat(candidate)
		if exists {
			break
		}
		existingCount--
	}
	if existingCount < 0 {
		existingCount = 0
		isDir = true
	}

	existingPrefix := buildDiskOrUNC(base.Kind(), root, server, share, segments[:existingCount])
	remainderSegments := segments[existingCount:]

	result := SplitResult{
		ExistingPrefix: existingPrefix,
		Kind:           SplitNormal,
		IsDir:          isDir,
	}

	if exists && !isDir && len(remainderSegments) > 0 {
		// The longest existing prefix is a file; if it's a registered
		// archive format, reinterpret as an into-archive target.
		var associations *ArchiveAssociations
		if ctx != nil {
			associations = ctx.Associations()
		}
		name := segments[existingCount-1]
		if associations != nil && associations.IsArchiveName(name) {
			container := buildDiskOrUNC(base.Kind(), root, server, share, segments[:existingCount])
			result.ExistingPrefix = NewArchive(container, "")
			result.Kind = SplitIntoArchive
			result.IsDir = false
		}
	}

	switch {
	case explicitMask != "":
		result.Mask = explicitMask
		result.ToCreateSegment = joinTail(remainderSegments)
	case len(remainderSegments) == 1 && selectionCount <= 1:
		// A single trailing segment with no wildcard, targeting a single
		// selected (or focused) source, is a rename-style literal target
		// name rather than a directory mask.
		result.Mask = remainderSegments[0]
	case len(remainderSegments) == 0:
		result.Mask = "*.*"
	default:
		result.Mask = "*.*"
		result.ToCreateSegment = joinTail(remainderSegments)
	}

	_ = focusedName // reserved for future default-focus heuristics
	return result, nil
}

func baseTail(p Path) string {
	switch p.kind {
	case Disk:
		return p.tail
	case UNC:
		return p.tail
	default:
		return ""
	}
}

func baseRoot(p Path) (root, server, share string) {
	switch p.kind {
	case Disk:
		return p.root, "", ""
	case UNC:
		return "", p.server, p.share
	default:
		return "", "", ""
	}
}

func buildDiskOrUNC(kind Kind, root, server, share string, segments []string) Path {
	if kind == Disk {
		return NewDisk(root, joinTail(segments))
	}
	return NewUNC(server, share, joinTail(segments))
}
