package operation

import (
	"testing"

	"github.com/altap-salamander/core/pkg/path"
)

func TestPlanAppliesMaskRenameToFilesOnly(t *testing.T) {
	fs := newFakeOps()
	dir := path.NewDisk(`C:\`, `work`)
	fs.addDir(dir)
	fs.addFile(path.NewDisk(`C:\`, `work\note.doc`), "b")

	op := newOperation("oper_mask", Copy, []path.Path{dir}, nil, Options{Mask: "*.txt"})
	entries, err := Plan(fs, op)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	var sawRenamedFile, sawDirUnmasked bool
	for _, e := range entries {
		if e.Source.Format() == dir.Format() {
			if e.TargetName != "work" {
				t.Fatalf("directory entries must not be renamed by the mask, got %q", e.TargetName)
			}
			sawDirUnmasked = true
		}
		if e.TargetName == "note.txt" {
			sawRenamedFile = true
		}
	}
	if !sawDirUnmasked {
		t.Fatal("expected the top-level directory entry to be present")
	}
	if !sawRenamedFile {
		t.Fatal("expected note.doc to be renamed to note.txt by the *.txt mask")
	}
}

func TestPlanMissingSourceFails(t *testing.T) {
	fs := newFakeOps()
	missing := path.NewDisk(`C:\`, `ghost.txt`)
	op := newOperation("oper_missing", Copy, []path.Path{missing}, nil, Options{})
	if _, err := Plan(fs, op); err == nil {
		t.Fatal("expected Plan to fail for a nonexistent source")
	}
}

func TestDeletePlanReordersChildrenBeforeParent(t *testing.T) {
	fs := newFakeOps()
	root := path.NewDisk(`C:\`, `tree`)
	fs.addDir(root)
	fs.addDir(path.NewDisk(`C:\`, `tree\sub`))
	fs.addFile(path.NewDisk(`C:\`, `tree\sub\leaf.txt`), "x")

	op := newOperation("oper_del", Delete, []path.Path{root}, nil, Options{})
	plan, err := Plan(fs, op)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	reverseDirsLast(plan)

	lastIdx := len(plan) - 1
	if plan[lastIdx].Source.Format() != root.Format() {
		t.Fatalf("expected root directory deleted last, got %+v", plan[lastIdx])
	}
}
