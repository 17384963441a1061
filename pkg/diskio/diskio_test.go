package diskio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/altap-salamander/core/pkg/path"
)

// diskPathFor converts a native OS path (as t.TempDir returns) into the
// path.Path Disk value that reconstructs the identical string via Format,
// since DiskFileSystem/DiskFileOps round-trip every path through it.
func diskPathFor(t *testing.T, native string) path.Path {
	t.Helper()
	volume := filepath.VolumeName(native)
	tail := native[len(volume):]
	if len(tail) > 0 && tail[0] == filepath.Separator {
		tail = tail[1:]
	}
	return path.NewDisk(volume+string(filepath.Separator), tail)
}

func TestDiskFileSystemStatAndList(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fs := NewFileSystem()
	p := diskPathFor(t, dir)

	info, err := fs.Stat(p)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !info.Exists || !info.IsDir {
		t.Fatalf("expected an existing directory, got %+v", info)
	}

	listing, err := fs.ListDirectory(p)
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	entry, ok := listing.ByName("a.txt")
	if !ok {
		t.Fatal("expected a.txt in the listing")
	}
	if entry.IsDir || entry.Size != 5 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestDiskFileSystemStatMissingPathDoesNotError(t *testing.T) {
	fs := NewFileSystem()
	p := diskPathFor(t, filepath.Join(t.TempDir(), "missing"))

	info, err := fs.Stat(p)
	if err != nil {
		t.Fatalf("Stat on a missing path should not error, got %v", err)
	}
	if info.Exists {
		t.Fatal("expected Exists=false for a missing path")
	}
}

func TestDiskFileOpsRejectsNonDiskPaths(t *testing.T) {
	ops := NewFileOps()
	pluginPath := path.NewPluginFS("zip", "inner")

	if _, err := ops.Stat(pluginPath); err != ErrNotDiskPath {
		t.Fatalf("expected ErrNotDiskPath for a PluginFS path, got %v", err)
	}
}

func TestDiskFileOpsCopyRangeAndRename(t *testing.T) {
	dir := t.TempDir()
	srcNative := filepath.Join(dir, "src.bin")
	if err := os.WriteFile(srcNative, []byte("payload"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	dstNative := filepath.Join(dir, "dst.bin")

	ops := NewFileOps()
	src := diskPathFor(t, srcNative)
	dst := diskPathFor(t, dstNative)

	buf := make([]byte, 64)
	n, err := ops.CopyRange(src, dst, 0, buf)
	if err != nil {
		t.Fatalf("CopyRange: %v", err)
	}
	if n != len("payload") {
		t.Fatalf("expected %d bytes copied, got %d", len("payload"), n)
	}

	got, err := os.ReadFile(dstNative)
	if err != nil {
		t.Fatalf("ReadFile(dst): %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("expected payload, got %q", got)
	}

	renamed := diskPathFor(t, filepath.Join(dir, "renamed.bin"))
	if err := ops.Rename(dst, renamed); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "renamed.bin")); err != nil {
		t.Fatalf("expected renamed.bin to exist: %v", err)
	}
}

func TestDiskFileOpsMakeDirAndDelete(t *testing.T) {
	dir := t.TempDir()
	ops := NewFileOps()
	sub := diskPathFor(t, filepath.Join(dir, "nested", "child"))

	if err := ops.MakeDir(sub); err != nil {
		t.Fatalf("MakeDir: %v", err)
	}
	if info, err := os.Stat(filepath.Join(dir, "nested", "child")); err != nil || !info.IsDir() {
		t.Fatalf("expected nested/child to exist as a directory: %v", err)
	}

	if err := ops.Delete(sub, true); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "nested", "child")); !os.IsNotExist(err) {
		t.Fatalf("expected nested/child to be gone, got %v", err)
	}
}
