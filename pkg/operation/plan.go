package operation

import (
	"strings"

	"github.com/altap-salamander/core/pkg/path"
)

// Action is the primitive a PlanEntry requires.
type Action uint8

const (
	ActionCopyFile Action = iota
	ActionMoveFile
	ActionMakeDir
	ActionDeleteFile
	ActionDeleteDir
	ActionSetAttr
)

// PlanEntry is one item of a depth-first enumeration pass: a source path,
// its required action, and the target name it maps to (subject to the
// operation's mask).
type PlanEntry struct {
	Source     path.Path
	Action     Action
	// RelDir is the slash-joined directory path, relative to this entry's
	// top-level source item, under which TargetName is placed. Empty for
	// a top-level entry itself.
	RelDir     string
	TargetName string
	IsDir      bool
	Size       int64
}

// Plan enumerates op.Sources depth-first via fs, applying op.Options.Mask
// to each file name, and returns the ordered list of primitive actions a
// worker must perform. Directories are visited before their children so a
// Copy/Move/Pack worker can create the destination directory first; for
// Delete, the returned slice also lists each directory before its
// children, and runWorker reorders it with reverseDirsLast so children are
// deleted before their parent directory.
func Plan(fs FileOps, op *Operation) ([]PlanEntry, error) {
	mask := op.Options.Mask
	if mask == "" {
		mask = "*.*"
	}

	var entries []PlanEntry
	for _, src := range op.Sources {
		if err := planOne(fs, src, "", mask, op.Kind, &entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func planOne(fs FileOps, src path.Path, relDir, mask string, kind Kind, out *[]PlanEntry) error {
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}
	if !info.Exists {
		return &Failure{Kind: NotAccessible, Path: src, Err: err}
	}

	_, name := cutName(src)
	targetName := name
	if !info.IsDir {
		targetName = path.MaskApply(name, mask)
	}

	action := actionFor(kind, info.IsDir)
	*out = append(*out, PlanEntry{Source: src, Action: action, RelDir: relDir, TargetName: targetName, IsDir: info.IsDir, Size: info.Size})

	if !info.IsDir {
		return nil
	}

	children, err := fs.ListDirectory(src)
	if err != nil {
		return &Failure{Kind: NotAccessible, Path: src, Err: err}
	}
	childRelDir := targetName
	if relDir != "" {
		childRelDir = relDir + `\` + targetName
	}
	for _, childName := range children {
		childPath := joinChild(src, childName)
		if err := planOne(fs, childPath, childRelDir, mask, kind, out); err != nil {
			return err
		}
	}
	return nil
}

func actionFor(kind Kind, isDir bool) Action {
	switch kind {
	case Copy, Pack, Unpack:
		if isDir {
			return ActionMakeDir
		}
		return ActionCopyFile
	case Move:
		if isDir {
			return ActionMakeDir
		}
		return ActionMoveFile
	case Delete:
		if isDir {
			return ActionDeleteDir
		}
		return ActionDeleteFile
	case Attr:
		return ActionSetAttr
	default:
		return ActionSetAttr
	}
}

// cutName splits p into its parent (unused here beyond the call) and final
// name component. For paths that are already roots, where CutLastSegment
// returns an error, a root passed as a source is planned with its own
// root-derived name.
func cutName(p path.Path) (path.Path, string) {
	parent, cut, err := path.CutLastSegment(p)
	if err != nil {
		return p, rootName(p)
	}
	return parent, cut
}

func rootName(p path.Path) string {
	switch p.Kind() {
	case path.Disk:
		root, _ := p.DiskParts()
		return strings.TrimSuffix(root, `\`)
	case path.UNC:
		server, share, _ := p.UNCParts()
		return server + `\` + share
	default:
		return p.Format()
	}
}

// joinChild composes parent/childName one level deeper, for Disk, UNC, and
// Archive-interior paths (Pack/Unpack sources and targets may be Archive
// paths).
func joinChild(parent path.Path, childName string) path.Path {
	switch parent.Kind() {
	case path.Disk:
		root, tail := parent.DiskParts()
		if tail == "" {
			return path.NewDisk(root, childName)
		}
		return path.NewDisk(root, tail+`\`+childName)
	case path.UNC:
		server, share, tail := parent.UNCParts()
		if tail == "" {
			return path.NewUNC(server, share, childName)
		}
		return path.NewUNC(server, share, tail+`\`+childName)
	case path.Archive:
		container, interior := parent.ArchiveParts()
		if interior == "" {
			return path.NewArchive(container, childName)
		}
		return path.NewArchive(container, interior+`\`+childName)
	default:
		return parent
	}
}
