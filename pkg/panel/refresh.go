package panel

import (
	"github.com/altap-salamander/core/pkg/listing"
	"github.com/altap-salamander/core/pkg/path"
)

// RefreshOptions configures a single Refresh call.
type RefreshOptions struct {
	// Force re-lists an Archive panel even when its container's mtime and
	// size are unchanged. Disk, UNC and PluginFS panels always re-list, so
	// it makes no difference for them.
	Force bool
	// FocusFirstNewItem, when the refreshed listing gained exactly one
	// new entry relative to the previous one, focuses it instead of
	// carrying over the previous focus.
	FocusFirstNewItem bool
}

// Refresh re-reads the panel's current directory/archive/plugin-fs listing
// in place, without changing State or recording history. Disk and UNC
// panels always re-list; Archive panels re-list only when the container's
// mtime/size changed or Force is set; PluginFS panels always re-list
// through the owning provider.
func (e *Engine) Refresh(p *Panel, opts RefreshOptions) ChangePathResult {
	if !p.hasPath {
		return ChangePathResult{Outcome: InvalidPath, Err: path.ErrIncompletePath}
	}

	switch p.State {
	case StateDisk, StateUNC:
		return e.refreshDiskOrUNC(p, opts)
	case StateArchive:
		return e.refreshArchive(p, opts)
	case StatePluginFS:
		return e.refreshPluginFS(p, opts)
	default:
		return ChangePathResult{Outcome: InvalidPath, Err: path.ErrInvalidPath}
	}
}

func (e *Engine) refreshDiskOrUNC(p *Panel, opts RefreshOptions) ChangePathResult {
	info, err := e.FS.Stat(p.Path)
	if err != nil || !info.Exists || !info.IsDir {
		return e.changePathDiskOrUNC(p, p.Path, ChangePathOptions{})
	}
	newListing, err := e.FS.ListDirectory(p.Path)
	if err != nil {
		return e.changePathDiskOrUNC(p, p.Path, ChangePathOptions{})
	}
	e.applyRefreshedListing(p, newListing, opts)
	return ChangePathResult{Outcome: Success}
}

func (e *Engine) refreshArchive(p *Panel, opts RefreshOptions) ChangePathResult {
	container, interior := p.Path.ArchiveParts()
	containerInfo, err := e.FS.Stat(container)
	if err != nil || !containerInfo.Exists || containerInfo.IsDir {
		return ChangePathResult{Outcome: InvalidArchive, Err: path.ErrNotAnArchive}
	}

	changed := opts.Force ||
		containerInfo.Modified.UnixNano() != p.archiveContainerModified ||
		containerInfo.Size != p.archiveContainerSize
	if !changed {
		return ChangePathResult{Outcome: Success}
	}

	newListing, err := e.FS.ListDirectory(path.NewArchive(container, interior))
	if err != nil {
		return e.changePathArchive(p, p.Path, ChangePathOptions{ForceUpdate: true})
	}
	e.applyRefreshedListing(p, newListing, opts)
	p.archiveContainerModified = containerInfo.Modified.UnixNano()
	p.archiveContainerSize = containerInfo.Size
	return ChangePathResult{Outcome: Success}
}

func (e *Engine) refreshPluginFS(p *Panel, opts RefreshOptions) ChangePathResult {
	if p.pluginInstance == nil {
		return ChangePathResult{Outcome: InvalidPath, Err: path.ErrInvalidPath}
	}
	fsName, userPart := p.Path.PluginFSParts()
	enterResult, err := e.Plugins.EnterPath(p.pluginInstance, fsName, userPart)
	if err != nil {
		return ChangePathResult{Outcome: InvalidPath, Err: err}
	}
	p.pluginInstance = enterResult.Instance
	e.applyRefreshedListing(p, enterResult.Listing, opts)
	return ChangePathResult{Outcome: Success}
}

// applyRefreshedListing carries selection/focus across a re-list that does
// not change State or record history, optionally focusing a single new
// entry per RefreshOptions.FocusFirstNewItem.
func (e *Engine) applyRefreshedListing(p *Panel, newListing listing.Listing, opts RefreshOptions) {
	previousCount := len(p.Listing.Entries)
	selection, focused := transferSelection(p.Selection, p.Focused, newListing)

	if opts.FocusFirstNewItem && len(newListing.Entries) == previousCount+1 {
		for _, candidate := range newListing.Entries {
			if _, existed := p.Listing.ByName(candidate.Name); !existed {
				focused = candidate.Name
				break
			}
		}
	}

	p.Listing = newListing
	p.Selection = selection
	p.Focused = focused
}
