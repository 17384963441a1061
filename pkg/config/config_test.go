package config

import "testing"

func TestPanelPathRoundTrip(t *testing.T) {
	root := newFakeRegistry()
	cfg := New(root)

	if _, ok := cfg.PanelPath(Left); ok {
		t.Fatal("expected no panel path before it is set")
	}
	if err := cfg.SetPanelPath(Left, `C:\work`); err != nil {
		t.Fatalf("SetPanelPath: %v", err)
	}
	got, ok := cfg.PanelPath(Left)
	if !ok || got != `C:\work` {
		t.Fatalf("expected C:\\work, got %q (ok=%v)", got, ok)
	}

	if _, ok := cfg.PanelPath(Right); ok {
		t.Fatal("right panel path must be independent of left")
	}
}

func TestLastVisitedDriveDirectory(t *testing.T) {
	cfg := New(newFakeRegistry())
	if err := cfg.SetLastVisitedDriveDirectory('D', `D:\projects`); err != nil {
		t.Fatalf("SetLastVisitedDriveDirectory: %v", err)
	}
	got, ok := cfg.LastVisitedDriveDirectory('D')
	if !ok || got != `D:\projects` {
		t.Fatalf("expected D:\\projects, got %q", got)
	}
	if _, ok := cfg.LastVisitedDriveDirectory('E'); ok {
		t.Fatal("drive E should have no recorded directory")
	}
}

func TestShowSplashDefaultsTrue(t *testing.T) {
	cfg := New(newFakeRegistry())
	if !cfg.ShowSplash() {
		t.Fatal("expected ShowSplash to default true on first run")
	}
	if err := cfg.SetShowSplash(false); err != nil {
		t.Fatalf("SetShowSplash: %v", err)
	}
	if cfg.ShowSplash() {
		t.Fatal("expected ShowSplash false after explicitly disabling it")
	}
}

func TestIconOverlayDisableListRoundTrip(t *testing.T) {
	cfg := New(newFakeRegistry())
	want := []string{"GitOverlay", "DropboxOverlay"}
	if err := cfg.SetIconOverlayDisableList(want); err != nil {
		t.Fatalf("SetIconOverlayDisableList: %v", err)
	}
	got, err := cfg.IconOverlayDisableList()
	if err != nil {
		t.Fatalf("IconOverlayDisableList: %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPluginBlobIsOwnedPerPlugin(t *testing.T) {
	cfg := New(newFakeRegistry())
	type blob struct{ Setting string }

	if err := cfg.SavePluginBlob("zip-handler", blob{Setting: "fast"}); err != nil {
		t.Fatalf("SavePluginBlob: %v", err)
	}
	var got blob
	if err := cfg.LoadPluginBlob("zip-handler", &got); err != nil {
		t.Fatalf("LoadPluginBlob: %v", err)
	}
	if got.Setting != "fast" {
		t.Fatalf("expected fast, got %q", got.Setting)
	}

	var other blob
	if err := cfg.LoadPluginBlob("other-plugin", &other); err == nil {
		t.Fatal("expected ErrNotExist for a plugin with no stored blob")
	}
}

func TestPluginPasswordManagerFlagDefaultsFalse(t *testing.T) {
	cfg := New(newFakeRegistry())
	if flag, err := cfg.PluginPasswordManagerFlag("ftp-plugin"); err != nil || flag {
		t.Fatalf("expected false,nil for an unconfigured plugin, got %v,%v", flag, err)
	}
	if err := cfg.SetPluginPasswordManagerFlag("ftp-plugin", true); err != nil {
		t.Fatalf("SetPluginPasswordManagerFlag: %v", err)
	}
	flag, err := cfg.PluginPasswordManagerFlag("ftp-plugin")
	if err != nil || !flag {
		t.Fatalf("expected true,nil, got %v,%v", flag, err)
	}
}
