package panel

import (
	"github.com/altap-salamander/core/pkg/listing"
	"github.com/altap-salamander/core/pkg/path"
	"github.com/altap-salamander/core/pkg/pluginfs"
)

// Outcome is one of the six result codes ChangePath can produce.
type Outcome uint8

const (
	// Success means the requested path is listed exactly.
	Success Outcome = iota
	// InvalidPath means parsing or access failed with no shortened
	// alternative.
	InvalidPath
	// InvalidArchive means the path parsed into Archive but the
	// container could not be opened.
	InvalidArchive
	// CannotClosePath means the previously open path refused to release
	// (a plugin-FS instance refused TryClose).
	CannotClosePath
	// ShorterPath means a prefix of the requested path is listed; the
	// caller's suggested focus/top-index do not apply.
	ShorterPath
	// FilenameFocused means the requested path named a file; its
	// containing directory is listed and the file is focused.
	FilenameFocused
)

// ChangePathOptions configures a single ChangePath call.
type ChangePathOptions struct {
	SuggestedTop       *int
	SuggestedFocusName string
	ForceUpdate        bool
	ConvertToInternal  bool
}

// ChangePathResult is the outcome of a ChangePath call.
type ChangePathResult struct {
	Outcome Outcome
	Err     error
}

// ChangePath implements spec.md §4.5's six-step algorithm.
func (e *Engine) ChangePath(p *Panel, input string, opts ChangePathOptions) ChangePathResult {
	previousState := p.State
	ctx := panelContext{panel: p, engine: e}

	target, err := path.Parse(input, ctx)
	if err != nil {
		return ChangePathResult{Outcome: InvalidPath, Err: err}
	}

	targetKind := path.Classify(target)
	if stateChanges(previousState, targetKind) {
		if previousState == StatePluginFS && p.pluginInstance != nil {
			if closeErr := e.Plugins.CloseInPanel(p.pluginInstance); closeErr != nil {
				return ChangePathResult{Outcome: CannotClosePath, Err: closeErr}
			}
		}
	}

	p.State = StateChanging

	var result ChangePathResult
	switch targetKind {
	case path.Disk, path.UNC:
		result = e.changePathDiskOrUNC(p, target, opts)
	case path.Archive:
		result = e.changePathArchive(p, target, opts)
	case path.PluginFS:
		result = e.changePathPluginFS(p, target, opts)
	default:
		result = ChangePathResult{Outcome: InvalidPath, Err: path.ErrInvalidPath}
	}

	if result.Outcome == CannotClosePath || result.Err != nil && result.Outcome != Success && result.Outcome != ShorterPath && result.Outcome != FilenameFocused {
		p.State = previousState
		return result
	}

	if p.WorkingDirUsed {
		p.PushHistory(p.Path)
	}

	return result
}

func stateChanges(previous State, targetKind path.Kind) bool {
	var previousKind path.Kind
	switch previous {
	case StateDisk:
		previousKind = path.Disk
	case StateUNC:
		previousKind = path.UNC
	case StateArchive:
		previousKind = path.Archive
	case StatePluginFS:
		previousKind = path.PluginFS
	default:
		return true
	}
	return previousKind != targetKind
}

func stateForKind(k path.Kind) State {
	switch k {
	case path.Disk:
		return StateDisk
	case path.UNC:
		return StateUNC
	case path.Archive:
		return StateArchive
	case path.PluginFS:
		return StatePluginFS
	default:
		return StateChanging
	}
}

// changePathDiskOrUNC implements step 3: probe accessibility, shortening
// and falling back through last-known-good, rescue path, and first fixed
// drive in turn.
func (e *Engine) changePathDiskOrUNC(p *Panel, target path.Path, opts ChangePathOptions) ChangePathResult {
	info, err := e.FS.Stat(target)
	if err == nil && info.Exists && info.IsDir {
		return e.settleDiskOrUNC(p, target, opts, false, false)
	}
	if err == nil && info.Exists && !info.IsDir {
		parent, _, cutErr := path.CutLastSegment(target)
		if cutErr == nil {
			if parentInfo, parentErr := e.FS.Stat(parent); parentErr == nil && parentInfo.Exists && parentInfo.IsDir {
				_, name, _ := path.CutLastSegment(target)
				return e.settleDiskOrUNC(p, parent, ChangePathOptions{SuggestedFocusName: name}, false, true)
			}
		}
	}

	// Shorten progressively.
	current := target
	for {
		parent, _, cutErr := path.CutLastSegment(current)
		if cutErr != nil {
			break
		}
		if info, err := e.FS.Stat(parent); err == nil && info.Exists && info.IsDir {
			return e.settleDiskOrUNC(p, parent, ChangePathOptions{}, true, false)
		}
		current = parent
	}

	// Last known-good directory (the panel's path before this attempt).
	if p.hasPath {
		if info, err := e.FS.Stat(p.Path); err == nil && info.Exists && info.IsDir {
			return e.settleDiskOrUNC(p, p.Path, ChangePathOptions{}, true, false)
		}
	}

	// User-configured rescue path.
	if e.RescuePath != nil {
		if info, err := e.FS.Stat(*e.RescuePath); err == nil && info.Exists && info.IsDir {
			return e.settleDiskOrUNC(p, *e.RescuePath, ChangePathOptions{}, true, false)
		}
	}

	// First local fixed drive.
	if e.FirstFixedDrive != nil {
		if drive, ok := e.FirstFixedDrive(); ok {
			if info, err := e.FS.Stat(drive); err == nil && info.Exists && info.IsDir {
				return e.settleDiskOrUNC(p, drive, ChangePathOptions{}, true, false)
			}
		}
	}

	return ChangePathResult{Outcome: InvalidPath, Err: path.ErrInvalidPath}
}

func (e *Engine) settleDiskOrUNC(p *Panel, finalPath path.Path, opts ChangePathOptions, shortened, filenameFocused bool) ChangePathResult {
	newListing, err := e.FS.ListDirectory(finalPath)
	if err != nil {
		return ChangePathResult{Outcome: InvalidPath, Err: err}
	}
	e.applyListing(p, finalPath, stateForKind(path.Classify(finalPath)), newListing, opts, shortened)
	if filenameFocused {
		return ChangePathResult{Outcome: FilenameFocused}
	}
	if shortened {
		return ChangePathResult{Outcome: ShorterPath}
	}
	return ChangePathResult{Outcome: Success}
}

// changePathArchive implements step 4.
func (e *Engine) changePathArchive(p *Panel, target path.Path, opts ChangePathOptions) ChangePathResult {
	container, interior := target.ArchiveParts()
	containerInfo, err := e.FS.Stat(container)
	if err != nil || !containerInfo.Exists || containerInfo.IsDir {
		return ChangePathResult{Outcome: InvalidArchive, Err: path.ErrNotAnArchive}
	}

	current := interior
	shortened := false
	for {
		candidate := path.NewArchive(container, current)
		newListing, err := e.FS.ListDirectory(candidate)
		if err == nil {
			e.applyListing(p, candidate, StateArchive, newListing, opts, shortened)
			p.archiveContainerModified = containerInfo.Modified.UnixNano()
			p.archiveContainerSize = containerInfo.Size
			if shortened {
				return ChangePathResult{Outcome: ShorterPath}
			}
			return ChangePathResult{Outcome: Success}
		}
		if current == "" {
			return ChangePathResult{Outcome: InvalidArchive, Err: err}
		}
		idx := lastSeparator(current)
		if idx < 0 {
			current = ""
		} else {
			current = current[:idx]
		}
		shortened = true
	}
}

func lastSeparator(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\\' {
			return i
		}
	}
	return -1
}

// changePathPluginFS implements step 5 by delegating to the registry's
// five-step protocol.
func (e *Engine) changePathPluginFS(p *Panel, target path.Path, opts ChangePathOptions) ChangePathResult {
	fsName, userPart := target.PluginFSParts()

	var current *pluginfs.Instance
	if p.pluginInstance != nil && p.pluginInstance.Active() {
		current = p.pluginInstance
	}

	enterResult, err := e.Plugins.EnterPath(current, fsName, userPart)
	if err != nil {
		return ChangePathResult{Outcome: InvalidPath, Err: err}
	}

	p.pluginInstance = enterResult.Instance
	finalPath := path.NewPluginFS(fsName, enterResult.Instance.UserPart)
	e.applyListing(p, finalPath, StatePluginFS, enterResult.Listing, opts, enterResult.Shortened || enterResult.RestoredToOriginal)

	if enterResult.Shortened || enterResult.RestoredToOriginal {
		return ChangePathResult{Outcome: ShorterPath}
	}
	return ChangePathResult{Outcome: Success}
}

// applyListing performs step 6: transfer selection/focus, clamp
// top-index, set the panel's new path/state/listing.
func (e *Engine) applyListing(p *Panel, newPath path.Path, newState State, newListing listing.Listing, opts ChangePathOptions, shortened bool) {
	selection, focused := transferSelection(p.Selection, p.Focused, newListing)

	if !shortened {
		if opts.SuggestedFocusName != "" {
			if _, ok := newListing.ByName(opts.SuggestedFocusName); ok {
				focused = opts.SuggestedFocusName
			}
		} else if focused == "" && len(newListing.Entries) > 0 {
			focused = newListing.Entries[0].Name
		}
	}

	p.Path = newPath
	p.hasPath = true
	p.State = newState
	p.Listing = newListing
	p.Selection = selection
	p.Focused = focused

	if !shortened && opts.SuggestedTop != nil {
		p.TopIndex = *opts.SuggestedTop
	} else {
		p.TopIndex = 0
	}
}
