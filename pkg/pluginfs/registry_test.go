package pluginfs

import (
	"testing"

	"github.com/altap-salamander/core/pkg/listing"
)

type fakeProvider struct {
	listable map[string]bool
	closable bool
	events   []EventKind
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{listable: make(map[string]bool), closable: true}
}

func (f *fakeProvider) IsOurPath(fsName, userPart string) bool { return true }

func (f *fakeProvider) ChangePath(instance *Instance, newUserPart string, mode ChangePathMode) ChangePathResult {
	return ChangePathResult{OK: true}
}

func (f *fakeProvider) ListCurrent(instance *Instance) (listing.Listing, error) {
	if f.listable[instance.UserPart] {
		return listing.Listing{Entries: []listing.Entry{{Name: "file.txt"}}}, nil
	}
	return listing.Listing{}, errUnlistable
}

func (f *fakeProvider) Event(instance *Instance, kind EventKind, param any) {
	f.events = append(f.events, kind)
}

func (f *fakeProvider) TryClose(instance *Instance, force bool) bool {
	return f.closable || force
}

var errUnlistable = errTest("cannot list")

type errTest string

func (e errTest) Error() string { return string(e) }

func TestEnterPathFreshInstance(t *testing.T) {
	r := NewRegistry()
	p := newFakeProvider()
	p.listable["host/a/b"] = true
	r.RegisterProvider("ftp", p)

	result, err := r.EnterPath(nil, "ftp", "host/a/b")
	if err != nil {
		t.Fatal(err)
	}
	if result.Instance == nil || result.Instance.FSName != "ftp" {
		t.Fatal("expected a new instance")
	}
	if len(result.Listing.Entries) != 1 {
		t.Errorf("expected one listing entry, got %d", len(result.Listing.Entries))
	}
}

func TestEnterPathSameInstanceReuse(t *testing.T) {
	r := NewRegistry()
	p := newFakeProvider()
	p.listable["host/a"] = true
	p.listable["host/b"] = true
	r.RegisterProvider("ftp", p)

	first, err := r.EnterPath(nil, "ftp", "host/a")
	if err != nil {
		t.Fatal(err)
	}

	second, err := r.EnterPath(first.Instance, "ftp", "host/b")
	if err != nil {
		t.Fatal(err)
	}
	if second.Instance.ID != first.Instance.ID {
		t.Error("expected the same instance to be reused for same-fsName navigation")
	}
}

func TestEnterPathDetachedReattach(t *testing.T) {
	r := NewRegistry()
	p := newFakeProvider()
	p.listable["host/a"] = true
	p.listable["host/b"] = true
	r.RegisterProvider("ftp", p)

	first, err := r.EnterPath(nil, "ftp", "host/a")
	if err != nil {
		t.Fatal(err)
	}
	instA := first.Instance

	if err := r.CloseInPanel(instA); err != nil {
		t.Fatal(err)
	}
	if !instA.Detached() {
		t.Fatal("expected instance to be detached after CloseInPanel")
	}

	second, err := r.EnterPath(nil, "ftp", "host/b")
	if err != nil {
		t.Fatal(err)
	}
	if second.Instance.ID != instA.ID {
		t.Error("expected detached instance to be reattached rather than creating a new one")
	}
	if !second.Instance.Active() {
		t.Error("expected reattached instance to become active")
	}
}

func TestEnterPathShortensOnListFailure(t *testing.T) {
	r := NewRegistry()
	p := newFakeProvider()
	p.listable["host/a"] = true // only the shorter prefix lists successfully
	r.RegisterProvider("ftp", p)

	result, err := r.EnterPath(nil, "ftp", "host/a/b/c")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Shortened {
		t.Error("expected Shortened to be true")
	}
	if result.Instance.UserPart != "host/a" {
		t.Errorf("got %q, want host/a", result.Instance.UserPart)
	}
}

func TestEnterPathRestoresOriginalOnTotalFailure(t *testing.T) {
	r := NewRegistry()
	p := newFakeProvider()
	p.listable["host/a/b/c"] = true // only the original path lists
	r.RegisterProvider("ftp", p)

	first, err := r.EnterPath(nil, "ftp", "host/a/b/c")
	if err != nil {
		t.Fatal(err)
	}

	// Navigating within the same instance to a path that (and every
	// shortened prefix of it) fails to list must restore to the
	// originally-current path.
	result, err := r.EnterPath(first.Instance, "ftp", "host/x/y/z")
	if err != nil {
		t.Fatal(err)
	}
	if !result.RestoredToOriginal {
		t.Error("expected RestoredToOriginal to be true")
	}
	if result.Instance.UserPart != "host/a/b/c" {
		t.Errorf("got %q, want restored path host/a/b/c", result.Instance.UserPart)
	}
}

func TestCloseInPanelRefusal(t *testing.T) {
	r := NewRegistry()
	p := newFakeProvider()
	p.listable["host/a"] = true
	p.closable = false
	r.RegisterProvider("ftp", p)

	first, err := r.EnterPath(nil, "ftp", "host/a")
	if err != nil {
		t.Fatal(err)
	}

	if err := r.CloseInPanel(first.Instance); err != ErrCannotClosePath {
		t.Errorf("expected ErrCannotClosePath, got %v", err)
	}
	if !first.Instance.Active() {
		t.Error("expected instance to remain active after a refused close")
	}
}

func TestDisposeDetachedForcesClose(t *testing.T) {
	r := NewRegistry()
	p := newFakeProvider()
	p.listable["host/a"] = true
	p.closable = false // refuses non-forced close, but not forced
	r.RegisterProvider("ftp", p)

	first, err := r.EnterPath(nil, "ftp", "host/a")
	if err != nil {
		t.Fatal(err)
	}
	inst := first.Instance

	// Force detachment for the test by going around CloseInPanel, since
	// the provider refuses non-forced closes here.
	inst.state = stateDetached

	if err := r.DisposeDetached(inst); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Instance(inst.ID); ok {
		t.Error("expected instance to be removed from the registry")
	}
}
