package config

import "testing"

func TestProbeAndMigrateCreatesFreshRootWhenNoneExist(t *testing.T) {
	base := newFakeRegistry()
	root, err := ProbeAndMigrate(base, "3.0")
	if err != nil {
		t.Fatalf("ProbeAndMigrate: %v", err)
	}
	if _, ok := base.children["3.0"]; !ok {
		t.Fatal("expected a fresh 3.0 root to be created")
	}
	if err := root.SetString(valueLeftPanelPath, `C:\`); err != nil {
		t.Fatalf("SetString on the new root: %v", err)
	}
}

func TestProbeAndMigrateReturnsExistingCurrentRoot(t *testing.T) {
	base := newFakeRegistry()
	existing, _ := base.CreateSubKey("3.0")
	existing.(*fakeRegistry).strings[valueLeftPanelPath] = `D:\already`

	root, err := ProbeAndMigrate(base, "3.0")
	if err != nil {
		t.Fatalf("ProbeAndMigrate: %v", err)
	}
	got, err := root.GetString(valueLeftPanelPath)
	if err != nil || got != `D:\already` {
		t.Fatalf("expected the existing root's value to survive untouched, got %q, %v", got, err)
	}
}

func TestProbeAndMigrateCopiesForwardFromOlderVersionAndDeletesIt(t *testing.T) {
	base := newFakeRegistry()
	old, _ := base.CreateSubKey("2.52")
	old.SetString(valueLeftPanelPath, `C:\old-left`)
	old.SetUint32(valueSingleInstance, 1)
	plugin, _ := old.CreateSubKey(pluginsSubKey)
	zipPlugin, _ := plugin.CreateSubKey("zip-handler")
	zipPlugin.SetBinary(valuePluginConfigBlob, []byte("Setting = \"fast\"\n"))

	root, err := ProbeAndMigrate(base, "3.0")
	if err != nil {
		t.Fatalf("ProbeAndMigrate: %v", err)
	}

	got, err := root.GetString(valueLeftPanelPath)
	if err != nil || got != `C:\old-left` {
		t.Fatalf("expected migrated left panel path, got %q, %v", got, err)
	}
	single, err := root.GetUint32(valueSingleInstance)
	if err != nil || single != 1 {
		t.Fatalf("expected migrated single-instance flag, got %v, %v", single, err)
	}

	migratedPlugins, err := root.OpenSubKey(pluginsSubKey)
	if err != nil {
		t.Fatalf("expected Plugins subkey to have migrated: %v", err)
	}
	migratedZip, err := migratedPlugins.OpenSubKey("zip-handler")
	if err != nil {
		t.Fatalf("expected zip-handler subkey to have migrated: %v", err)
	}
	blob, err := migratedZip.GetBinary(valuePluginConfigBlob)
	if err != nil || string(blob) != "Setting = \"fast\"\n" {
		t.Fatalf("expected migrated plugin blob, got %q, %v", blob, err)
	}

	if _, ok := base.children["2.52"]; ok {
		t.Fatal("expected the old 2.52 root to be deleted after migration")
	}
}

func TestProbeAndMigratePicksNewestOlderVersion(t *testing.T) {
	base := newFakeRegistry()
	older, _ := base.CreateSubKey("2.0")
	older.SetString(valueLeftPanelPath, `C:\too-old`)
	newer, _ := base.CreateSubKey("2.52")
	newer.SetString(valueLeftPanelPath, `C:\newer`)

	root, err := ProbeAndMigrate(base, "3.0")
	if err != nil {
		t.Fatalf("ProbeAndMigrate: %v", err)
	}
	got, _ := root.GetString(valueLeftPanelPath)
	if got != `C:\newer` {
		t.Fatalf("expected migration from the newest older version (2.52), got %q", got)
	}
	if _, ok := base.children["2.0"]; !ok {
		t.Fatal("the non-newest older version (2.0) should be left alone")
	}
}
