// Package listing defines the shared directory-listing shape produced by
// Disk/UNC enumeration, archive readers, and plugin-FS providers alike, per
// spec.md §3's "Listing entry" definition.
package listing

import "time"

// Entry is a single item in a directory listing. Fields noted as optional
// in spec.md are zero-valued when the source does not supply them; HasSize
// and HasModified distinguish "supplied as zero" from "not supplied" for
// the two fields where that matters to callers, Size and Modified.
type Entry struct {
	Name     string
	IsDir    bool
	Size     int64
	Modified time.Time
	Attrs    uint32

	HasSize     bool
	HasModified bool

	// IconIndex is a source-defined icon identifier; -1 means unset.
	IconIndex int
	// PluginData is an opaque value a plugin-FS provider may attach to an
	// entry and later recover (e.g. a remote listing cursor or handle).
	PluginData any
}

// Listing is an ordered sequence of entries; order reflects the panel's
// current sort criterion, not listing order from the source.
type Listing struct {
	Entries []Entry
}

// ByName finds an entry by case-insensitive name match, as used when
// transferring selection and focus from an old listing to its replacement.
func (l Listing) ByName(name string) (Entry, bool) {
	for _, e := range l.Entries {
		if foldEqual(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

func foldEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
