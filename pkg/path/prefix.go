package path

import "strings"

// pathItems decomposes p into a sequence of comparison items: a root-
// identity item (folded to a stable case) followed by one item per path
// segment. It underlies CommonPrefixLength and IsPrefix.
func pathItems(p Path) []string {
	switch p.kind {
	case Disk:
		items := []string{strings.ToUpper(p.root)}
		return append(items, foldSegments(tailSegments(p.tail))...)
	case UNC:
		items := []string{strings.ToUpper(`\\` + p.server + `\` + p.share)}
		return append(items, foldSegments(tailSegments(p.tail))...)
	case Archive:
		items := pathItems(*p.container)
		items = append(items, "\x00archive\x00")
		return append(items, foldSegments(tailSegments(p.interior))...)
	case PluginFS:
		items := []string{p.fsName}
		return append(items, strings.Split(p.userPart, "/")...)
	default:
		return nil
	}
}

func foldSegments(segments []string) []string {
	folded := make([]string, len(segments))
	for i, s := range segments {
		folded[i] = strings.ToUpper(s)
	}
	return folded
}

// CommonPrefixLength returns the length, in characters of a's formatted
// representation, of the shared directory prefix of a and b. Comparison is
// case-insensitive and counts only whole matching segments (never a partial
// segment overlap). Paths of different Kind share no prefix. For UNC paths
// the root item folds in both server and share, so they must match exactly
// for any prefix to be reported.
func CommonPrefixLength(a, b Path) int {
	if a.kind != b.kind {
		return 0
	}

	itemsA := pathItems(a)
	itemsB := pathItems(b)

	n := 0
	for n < len(itemsA) && n < len(itemsB) && itemsA[n] == itemsB[n] {
		n++
	}
	if n == 0 {
		return 0
	}

	return lengthOfPrefix(a, n)
}

// lengthOfPrefix returns the character length of the formatted string that
// the first n items of p's decomposition would produce.
func lengthOfPrefix(p Path, n int) int {
	switch p.kind {
	case Disk:
		if n <= 1 {
			return len(p.root)
		}
		segments := tailSegments(p.tail)[:n-1]
		return len(p.root) + len(joinTail(segments))
	case UNC:
		base := `\\` + p.server + `\` + p.share
		if n <= 1 {
			return len(base)
		}
		segments := tailSegments(p.tail)[:n-1]
		return len(base) + 1 + len(joinTail(segments))
	case Archive:
		containerItemCount := len(pathItems(*p.container))
		if n <= containerItemCount {
			return lengthOfPrefix(*p.container, n)
		}
		base := p.container.Format()
		// Subtract one for the "\x00archive\x00" marker item itself.
		segments := tailSegments(p.interior)[:n-containerItemCount-1]
		if len(segments) == 0 {
			return len(base)
		}
		return len(base) + 1 + len(joinTail(segments))
	case PluginFS:
		base := p.fsName + ":"
		if n <= 1 {
			return len(base) - 1
		}
		segments := strings.Split(p.userPart, "/")[:n-1]
		return len(base) + len(strings.Join(segments, "/"))
	default:
		return 0
	}
}

// IsPrefix reports whether prefix structurally names an ancestor directory
// of path (or path itself). The comparison is case-insensitive and
// tolerant of a single trailing separator on either operand, since PathKit
// never stores one internally.
func IsPrefix(prefix, path Path) bool {
	if prefix.kind != path.kind {
		return false
	}
	itemsP := pathItems(prefix)
	itemsQ := pathItems(path)
	if len(itemsP) > len(itemsQ) {
		return false
	}
	for i := range itemsP {
		if itemsP[i] != itemsQ[i] {
			return false
		}
	}
	return true
}

// IsTheSamePath reports whether a and b name the same path. It is exactly
// IsPrefix(a, b) && IsPrefix(b, a) (spec §8 invariant 4).
func IsTheSamePath(a, b Path) bool {
	return IsPrefix(a, b) && IsPrefix(b, a)
}

// CutLastSegment removes the final segment from p, returning the parent
// path and the removed segment. It fails with ErrNoShorter for a Disk root,
// a UNC share root, an Archive whose interior is already empty, and a
// PluginFS path whose userPart has no '/'-separated remainder.
func CutLastSegment(p Path) (parent Path, cut string, err error) {
	switch p.kind {
	case Disk:
		if p.tail == "" {
			return Path{}, "", ErrNoShorter
		}
		segments := tailSegments(p.tail)
		cut = segments[len(segments)-1]
		return NewDisk(p.root, joinTail(segments[:len(segments)-1])), cut, nil
	case UNC:
		if p.tail == "" {
			return Path{}, "", ErrNoShorter
		}
		segments := tailSegments(p.tail)
		cut = segments[len(segments)-1]
		return NewUNC(p.server, p.share, joinTail(segments[:len(segments)-1])), cut, nil
	case Archive:
		if p.interior == "" {
			return Path{}, "", ErrNoShorter
		}
		segments := tailSegments(p.interior)
		cut = segments[len(segments)-1]
		return NewArchive(*p.container, joinTail(segments[:len(segments)-1])), cut, nil
	case PluginFS:
		if !strings.Contains(p.userPart, "/") {
			return Path{}, "", ErrNoShorter
		}
		idx := strings.LastIndexByte(p.userPart, '/')
		return NewPluginFS(p.fsName, p.userPart[:idx]), p.userPart[idx+1:], nil
	default:
		return Path{}, "", ErrNoShorter
	}
}
