package path

import "strings"

// Kind identifies which of the four path variants a Path value holds.
type Kind uint8

const (
	// Disk identifies a local or mapped-letter-drive path.
	Disk Kind = iota
	// UNC identifies a \\server\share path.
	UNC
	// Archive identifies a path into an archive file.
	Archive
	// PluginFS identifies an fsName:userPart path owned by a registered
	// plugin.
	PluginFS
)

// String renders the Kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Disk:
		return "Disk"
	case UNC:
		return "UNC"
	case Archive:
		return "Archive"
	case PluginFS:
		return "PluginFS"
	default:
		return "Unknown"
	}
}

// Path is a tagged value over the four path variants described in spec §3.
// The zero value is not a valid Path; construct one with NewDisk, NewUNC,
// NewArchive, or NewPluginFS.
type Path struct {
	kind Kind

	// root is the Disk root, formatted "X:\".
	root string
	// tail is the Disk or UNC tail: backslash-separated, no leading or
	// trailing separator, empty when the path is exactly the root/share.
	tail string

	// server and share hold the UNC host and share name.
	server string
	share  string

	// container holds the Disk or UNC path to the archive file itself, for
	// Archive paths.
	container *Path
	// interior is the backslash-separated path within the archive, empty
	// for the archive root.
	interior string

	// fsName and userPart hold the plugin-FS name and opaque plugin-owned
	// remainder, for PluginFS paths.
	fsName   string
	userPart string
}

// Kind reports which variant p holds.
func (p Path) Kind() Kind { return p.kind }

// NewDisk constructs a Disk path. root must be formatted "X:\" and tail must
// already be normalized (no leading/trailing separators, no "." or "..").
func NewDisk(root, tail string) Path {
	return Path{kind: Disk, root: root, tail: tail}
}

// NewUNC constructs a UNC path.
func NewUNC(server, share, tail string) Path {
	return Path{kind: UNC, server: server, share: share, tail: tail}
}

// NewArchive constructs an Archive path. container must be a Disk or UNC
// path referring to the archive file.
func NewArchive(container Path, interior string) Path {
	c := container
	return Path{kind: Archive, container: &c, interior: interior}
}

// NewPluginFS constructs a PluginFS path.
func NewPluginFS(fsName, userPart string) Path {
	return Path{kind: PluginFS, fsName: fsName, userPart: userPart}
}

// DiskParts returns the root and tail of a Disk path. It panics if p is not
// a Disk path.
func (p Path) DiskParts() (root, tail string) {
	if p.kind != Disk {
		panic("DiskParts called on non-Disk path")
	}
	return p.root, p.tail
}

// UNCParts returns the server, share, and tail of a UNC path. It panics if p
// is not a UNC path.
func (p Path) UNCParts() (server, share, tail string) {
	if p.kind != UNC {
		panic("UNCParts called on non-UNC path")
	}
	return p.server, p.share, p.tail
}

// ArchiveParts returns the container path and interior of an Archive path.
// It panics if p is not an Archive path.
func (p Path) ArchiveParts() (container Path, interior string) {
	if p.kind != Archive {
		panic("ArchiveParts called on non-Archive path")
	}
	return *p.container, p.interior
}

// PluginFSParts returns the fsName and userPart of a PluginFS path. It
// panics if p is not a PluginFS path.
func (p Path) PluginFSParts() (fsName, userPart string) {
	if p.kind != PluginFS {
		panic("PluginFSParts called on non-PluginFS path")
	}
	return p.fsName, p.userPart
}

// tailSegments splits a Disk/UNC tail or Archive interior into its
// components. An empty tail yields no segments.
func tailSegments(tail string) []string {
	if tail == "" {
		return nil
	}
	return strings.Split(tail, `\`)
}

// joinTail reassembles segments into a tail string.
func joinTail(segments []string) string {
	return strings.Join(segments, `\`)
}

// Format renders p back into its canonical string form. Format and Parse
// are inverses (testable property 1 in spec §8).
func (p Path) Format() string {
	switch p.kind {
	case Disk:
		if p.tail == "" {
			return p.root
		}
		return p.root + p.tail
	case UNC:
		base := `\\` + p.server + `\` + p.share
		if p.tail == "" {
			return base
		}
		return base + `\` + p.tail
	case Archive:
		base := p.container.Format()
		if p.interior == "" {
			return base
		}
		return base + `\` + p.interior
	case PluginFS:
		return p.fsName + ":" + p.userPart
	default:
		return ""
	}
}

func (p Path) String() string { return p.Format() }

// Equal reports whether two paths compare as the same path. Disk/UNC/Archive
// comparison is case-insensitive per Windows path semantics; PluginFS
// comparison is case-sensitive because userPart is plugin-owned.
func (p Path) Equal(o Path) bool {
	if p.kind != o.kind {
		return false
	}
	switch p.kind {
	case Disk:
		return strings.EqualFold(p.root, o.root) && strings.EqualFold(p.tail, o.tail)
	case UNC:
		return strings.EqualFold(p.server, o.server) &&
			strings.EqualFold(p.share, o.share) &&
			strings.EqualFold(p.tail, o.tail)
	case Archive:
		return p.container.Equal(*o.container) && strings.EqualFold(p.interior, o.interior)
	case PluginFS:
		return p.fsName == o.fsName && p.userPart == o.userPart
	default:
		return false
	}
}

// IsRoot reports whether p refers to the root of its kind (a Disk drive
// root, a UNC share root, or an Archive root). PluginFS paths are never
// considered roots by PathKit; the plugin owns that notion.
func (p Path) IsRoot() bool {
	switch p.kind {
	case Disk, UNC:
		return p.tail == ""
	case Archive:
		return p.interior == ""
	default:
		return false
	}
}
