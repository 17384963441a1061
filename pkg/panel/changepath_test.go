package panel

import (
	"testing"
	"time"

	"github.com/altap-salamander/core/pkg/listing"
	"github.com/altap-salamander/core/pkg/path"
	"github.com/altap-salamander/core/pkg/pluginfs"
)

// fakeFS is an in-memory FileSystem for exercising ChangePath/Refresh
// without touching a real disk.
type fakeFS struct {
	dirs  map[string]listing.Listing
	files map[string]Info
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		dirs:  make(map[string]listing.Listing),
		files: make(map[string]Info),
	}
}

func (f *fakeFS) addDir(p path.Path, entries ...listing.Entry) {
	f.dirs[p.Format()] = listing.Listing{Entries: entries}
	f.files[p.Format()] = Info{Exists: true, IsDir: true}
}

func (f *fakeFS) addFile(p path.Path, size int64, modified time.Time) {
	f.files[p.Format()] = Info{Exists: true, IsDir: false, Size: size, Modified: modified}
}

func (f *fakeFS) Stat(p path.Path) (Info, error) {
	if info, ok := f.files[p.Format()]; ok {
		return info, nil
	}
	return Info{}, nil
}

func (f *fakeFS) ListDirectory(p path.Path) (listing.Listing, error) {
	if l, ok := f.dirs[p.Format()]; ok {
		return l, nil
	}
	return listing.Listing{}, path.ErrInvalidPath
}

func dirEntry(name string) listing.Entry {
	return listing.Entry{Name: name, IsDir: true}
}

func fileEntry(name string) listing.Entry {
	return listing.Entry{Name: name}
}

func newTestEngine(fs FileSystem) *Engine {
	return NewEngine(fs, pluginfs.NewRegistry(), path.NewArchiveAssociations("zip"))
}

func TestChangePathSuccess(t *testing.T) {
	fs := newFakeFS()
	root := path.NewDisk(`C:\`, "")
	sub := path.NewDisk(`C:\`, "projects")
	fs.addDir(root, dirEntry("projects"))
	fs.addDir(sub, fileEntry("readme.txt"))

	e := newTestEngine(fs)
	p := New()

	result := e.ChangePath(p, `C:\projects`, ChangePathOptions{})
	if result.Outcome != Success {
		t.Fatalf("expected Success, got %v (%v)", result.Outcome, result.Err)
	}
	if p.State != StateDisk {
		t.Fatalf("expected StateDisk, got %v", p.State)
	}
	if _, ok := p.Listing.ByName("readme.txt"); !ok {
		t.Fatalf("expected readme.txt in listing")
	}
}

// TestChangePathShortensToAccessibleParent covers spec.md §8 example 2:
// requesting a path whose deepest components are inaccessible falls back
// to the nearest accessible ancestor with ShorterPath.
func TestChangePathShortensToAccessibleParent(t *testing.T) {
	fs := newFakeFS()
	root := path.NewDisk(`C:\`, "")
	sub := path.NewDisk(`C:\`, "projects")
	fs.addDir(root, dirEntry("projects"))
	fs.addDir(sub, dirEntry("missing")) // "missing" is listed but not itself stat-able as a dir

	e := newTestEngine(fs)
	p := New()

	result := e.ChangePath(p, `C:\projects\missing\deeper`, ChangePathOptions{})
	if result.Outcome != ShorterPath {
		t.Fatalf("expected ShorterPath, got %v (%v)", result.Outcome, result.Err)
	}
	if p.Path.Format() != `C:\projects` {
		t.Fatalf("expected to land on C:\\projects, got %v", p.Path.Format())
	}
}

func TestChangePathInvalidWithNoFallback(t *testing.T) {
	fs := newFakeFS()
	e := newTestEngine(fs)
	p := New()

	result := e.ChangePath(p, `Z:\nowhere`, ChangePathOptions{})
	if result.Outcome != InvalidPath {
		t.Fatalf("expected InvalidPath, got %v", result.Outcome)
	}
}

func TestChangePathFilenameFocusesContainingDirectory(t *testing.T) {
	fs := newFakeFS()
	root := path.NewDisk(`C:\`, "")
	file := path.NewDisk(`C:\`, "notes.txt")
	fs.addDir(root, fileEntry("notes.txt"))
	fs.addFile(file, 100, time.Unix(0, 0))

	e := newTestEngine(fs)
	p := New()

	result := e.ChangePath(p, `C:\notes.txt`, ChangePathOptions{})
	if result.Outcome != FilenameFocused {
		t.Fatalf("expected FilenameFocused, got %v (%v)", result.Outcome, result.Err)
	}
	if p.Focused != "notes.txt" {
		t.Fatalf("expected notes.txt focused, got %q", p.Focused)
	}
}

func TestChangePathArchiveEntersAndShortensOnInteriorMiss(t *testing.T) {
	fs := newFakeFS()
	root := path.NewDisk(`C:\`, "")
	archive := path.NewDisk(`C:\`, "data.zip")
	fs.addDir(root, fileEntry("data.zip"))
	fs.addFile(archive, 1024, time.Unix(1000, 0))
	fs.addDir(path.NewArchive(archive, ""), dirEntry("docs"))

	e := newTestEngine(fs)
	p := New()

	result := e.ChangePath(p, `C:\data.zip\docs\missing`, ChangePathOptions{})
	if result.Outcome != ShorterPath {
		t.Fatalf("expected ShorterPath, got %v (%v)", result.Outcome, result.Err)
	}
	if p.State != StateArchive {
		t.Fatalf("expected StateArchive, got %v", p.State)
	}
}

func TestChangePathArchiveContainerMissingIsInvalidArchive(t *testing.T) {
	fs := newFakeFS()
	root := path.NewDisk(`C:\`, "")
	fs.addDir(root, fileEntry("data.zip"))
	// No Stat entry for data.zip itself: container does not exist.

	e := newTestEngine(fs)
	p := New()

	result := e.ChangePath(p, `C:\data.zip\docs`, ChangePathOptions{})
	if result.Outcome != InvalidArchive {
		t.Fatalf("expected InvalidArchive, got %v (%v)", result.Outcome, result.Err)
	}
}

// fakePluginProvider backs TestChangePathPluginFSShortensWithRestore,
// mirroring spec.md §8 example 4: shortening fails all the way to root,
// so EnterPath restores the original instance path.
type fakePluginProvider struct {
	listable map[string]bool
}

func (p *fakePluginProvider) IsOurPath(fsName, userPart string) bool { return true }

func (p *fakePluginProvider) ChangePath(inst *pluginfs.Instance, newUserPart string, mode pluginfs.ChangePathMode) pluginfs.ChangePathResult {
	return pluginfs.ChangePathResult{OK: true}
}

func (p *fakePluginProvider) ListCurrent(inst *pluginfs.Instance) (listing.Listing, error) {
	if p.listable[inst.UserPart] {
		return listing.Listing{Entries: []listing.Entry{dirEntry("x")}}, nil
	}
	return listing.Listing{}, path.ErrInvalidPath
}

func (p *fakePluginProvider) Event(inst *pluginfs.Instance, kind pluginfs.EventKind, param any) {}

func (p *fakePluginProvider) TryClose(inst *pluginfs.Instance, force bool) bool { return true }

func TestChangePathPluginFSShortensWithRestore(t *testing.T) {
	fs := newFakeFS()
	provider := &fakePluginProvider{listable: map[string]bool{"a/b/c": true}}
	registry := pluginfs.NewRegistry()
	registry.RegisterProvider("remote", provider)

	e := NewEngine(fs, registry, path.NewArchiveAssociations("zip"))
	p := New()

	first := e.ChangePath(p, "remote:a/b/c", ChangePathOptions{})
	if first.Outcome != Success {
		t.Fatalf("expected initial Success, got %v (%v)", first.Outcome, first.Err)
	}

	second := e.ChangePath(p, "remote:x/y/z", ChangePathOptions{})
	if second.Outcome != ShorterPath {
		t.Fatalf("expected ShorterPath (restore), got %v (%v)", second.Outcome, second.Err)
	}
	if p.Path.Format() != "remote:a/b/c" {
		t.Fatalf("expected restore to remote:a/b/c, got %v", p.Path.Format())
	}
}

func TestRefreshDiskPicksUpNewEntry(t *testing.T) {
	fs := newFakeFS()
	root := path.NewDisk(`C:\`, "")
	fs.addDir(root, dirEntry("old"))

	e := newTestEngine(fs)
	p := New()
	if res := e.ChangePath(p, `C:\`, ChangePathOptions{}); res.Outcome != Success {
		t.Fatalf("setup ChangePath failed: %v", res.Err)
	}

	fs.addDir(root, dirEntry("old"), fileEntry("new.txt"))
	result := e.Refresh(p, RefreshOptions{FocusFirstNewItem: true})
	if result.Outcome != Success {
		t.Fatalf("expected Success, got %v (%v)", result.Outcome, result.Err)
	}
	if p.Focused != "new.txt" {
		t.Fatalf("expected new.txt focused, got %q", p.Focused)
	}
}

func TestRefreshArchiveSkipsUnchangedContainer(t *testing.T) {
	fs := newFakeFS()
	root := path.NewDisk(`C:\`, "")
	archive := path.NewDisk(`C:\`, "data.zip")
	mtime := time.Unix(500, 0)
	fs.addDir(root, fileEntry("data.zip"))
	fs.addFile(archive, 10, mtime)
	fs.addDir(path.NewArchive(archive, ""), dirEntry("docs"))

	e := newTestEngine(fs)
	p := New()
	if res := e.ChangePath(p, `C:\data.zip`, ChangePathOptions{}); res.Outcome != Success {
		t.Fatalf("setup ChangePath failed: %v", res.Err)
	}

	// Mutate the listing directly; since container mtime/size are
	// unchanged, Refresh without Force must not pick it up.
	fs.dirs[path.NewArchive(archive, "").Format()] = listing.Listing{
		Entries: []listing.Entry{dirEntry("docs"), dirEntry("extra")},
	}
	result := e.Refresh(p, RefreshOptions{})
	if result.Outcome != Success {
		t.Fatalf("expected Success, got %v (%v)", result.Outcome, result.Err)
	}
	if _, ok := p.Listing.ByName("extra"); ok {
		t.Fatalf("expected stale listing to be retained without Force")
	}

	result = e.Refresh(p, RefreshOptions{Force: true})
	if result.Outcome != Success {
		t.Fatalf("expected Success, got %v (%v)", result.Outcome, result.Err)
	}
	if _, ok := p.Listing.ByName("extra"); !ok {
		t.Fatalf("expected forced refresh to pick up new entry")
	}
}
