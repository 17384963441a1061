package panel

import (
	"github.com/altap-salamander/core/pkg/listing"
	"github.com/altap-salamander/core/pkg/path"
	"github.com/altap-salamander/core/pkg/pluginfs"
)

// State is the panel's current path-kind state, plus the transient
// Changing state that suppresses further user-initiated transitions until
// the in-flight one resolves.
type State uint8

const (
	StateDisk State = iota
	StateUNC
	StateArchive
	StatePluginFS
	StateChanging
)

// historyCapacity bounds the per-panel path history ring buffer.
const historyCapacity = 32

// Panel holds one side's navigation state.
type Panel struct {
	Path    path.Path
	hasPath bool
	State   State
	Listing listing.Listing

	Selection       map[string]bool
	SelectionStored map[string]bool
	Focused         string
	TopIndex        int
	Filter          string

	WorkingDirUsed bool

	history     []path.Path
	historyHead int
	historyLen  int

	pluginInstance *pluginfs.Instance

	// archiveContainerModified/archiveContainerSize cache the container
	// file's last-known mtime/size, for change detection on Refresh and
	// on re-entering the archive.
	archiveContainerModified int64
	archiveContainerSize     int64
}

// New creates an empty panel with no current path.
func New() *Panel {
	return &Panel{
		Selection: make(map[string]bool),
		history:   make([]path.Path, historyCapacity),
	}
}

// CurrentPath returns the panel's current path and whether one is set. A
// freshly created Panel has none; a ChangePath that fails outright leaves
// the previous path (or the lack of one) in place.
func (p *Panel) CurrentPath() (path.Path, bool) {
	return p.Path, p.hasPath
}

// PushHistory records p in the ring buffer, overwriting the oldest entry
// once full.
func (p *Panel) PushHistory(entry path.Path) {
	p.history[p.historyHead] = entry
	p.historyHead = (p.historyHead + 1) % historyCapacity
	if p.historyLen < historyCapacity {
		p.historyLen++
	}
}

// History returns recorded paths, most recent first.
func (p *Panel) History() []path.Path {
	result := make([]path.Path, 0, p.historyLen)
	idx := p.historyHead
	for i := 0; i < p.historyLen; i++ {
		idx = (idx - 1 + historyCapacity) % historyCapacity
		result = append(result, p.history[idx])
	}
	return result
}

// StoreSelection saves the current selection for later restoration (the
// "Restore Selection" command), then clears it.
func (p *Panel) StoreSelection() {
	stored := make(map[string]bool, len(p.Selection))
	for name := range p.Selection {
		stored[name] = true
	}
	p.SelectionStored = stored
	p.Selection = make(map[string]bool)
}

// RestoreSelection replays the most recently stored selection, keeping
// only names still present in the current listing.
func (p *Panel) RestoreSelection() {
	restored := make(map[string]bool)
	for name := range p.SelectionStored {
		if _, ok := p.Listing.ByName(name); ok {
			restored[name] = true
		}
	}
	p.Selection = restored
}

// transferSelection carries selection and focus from the previous listing
// into the new one, keeping only names that still exist, per spec.md
// §4.5 step 6.
func transferSelection(oldSelection map[string]bool, oldFocused string, newListing listing.Listing) (map[string]bool, string) {
	selection := make(map[string]bool)
	for name := range oldSelection {
		if _, ok := newListing.ByName(name); ok {
			selection[name] = true
		}
	}
	focused := ""
	if oldFocused != "" {
		if _, ok := newListing.ByName(oldFocused); ok {
			focused = oldFocused
		}
	}
	return selection, focused
}
