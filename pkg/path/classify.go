package path

import "strings"

// ArchiveAssociations holds the extension-to-archive-format table used by
// Classify and Parse. It is safe for concurrent read access once built; it
// is typically populated once at startup from the plugin registry's
// archive-format handlers (spec §6).
type ArchiveAssociations struct {
	extensions map[string]bool
}

// NewArchiveAssociations creates an association table seeded with the given
// extensions (without leading dots, case-insensitive).
func NewArchiveAssociations(extensions ...string) *ArchiveAssociations {
	a := &ArchiveAssociations{extensions: make(map[string]bool, len(extensions))}
	for _, ext := range extensions {
		a.Register(ext)
	}
	return a
}

// Register adds ext (without a leading dot) to the association table.
func (a *ArchiveAssociations) Register(ext string) {
	a.extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
}

// Unregister removes ext from the association table.
func (a *ArchiveAssociations) Unregister(ext string) {
	delete(a.extensions, strings.ToLower(strings.TrimPrefix(ext, ".")))
}

// IsArchiveName reports whether name's extension matches a registered
// archive format. It is purely structural: no filesystem access occurs.
func (a *ArchiveAssociations) IsArchiveName(name string) bool {
	if a == nil {
		return false
	}
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return false
	}
	return a.extensions[strings.ToLower(name[idx+1:])]
}

// Classify returns p's structural Kind, which is simply p.Kind(). Parse
// recognizes the Disk/UNC -> Archive transition itself and does not call
// Classify, and Classify does not re-check p against the association
// table.
func Classify(p Path) Kind {
	return p.Kind()
}

// classifyArchiveTransition walks a Disk or UNC tail's segments looking for
// the first one that names a registered archive file; if found (and it is
// not the final segment, i.e. there is an interior remainder, or it is the
// final segment with no remainder, meaning the archive root itself), it
// returns the split point. ok is false if no segment matches, in which case
// the path remains a plain Disk/UNC path.
func classifyArchiveTransition(segments []string, associations *ArchiveAssociations) (containerUpTo int, ok bool) {
	if associations == nil {
		return 0, false
	}
	for i, segment := range segments {
		if associations.IsArchiveName(segment) {
			return i, true
		}
	}
	return 0, false
}
