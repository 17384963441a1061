package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/altap-salamander/core/pkg/config"
)

// fakeConfigRegistry is a minimal in-memory config.Registry double, local
// to this package because pkg/config's own fake is unexported to its
// package's tests.
type fakeConfigRegistry struct {
	strings  map[string]string
	uint32s  map[string]uint32
	binaries map[string][]byte
	children map[string]*fakeConfigRegistry
}

func newFakeConfigRegistry() *fakeConfigRegistry {
	return &fakeConfigRegistry{
		strings:  make(map[string]string),
		uint32s:  make(map[string]uint32),
		binaries: make(map[string][]byte),
		children: make(map[string]*fakeConfigRegistry),
	}
}

func (r *fakeConfigRegistry) OpenSubKey(name string) (config.Registry, error) {
	child, ok := r.children[name]
	if !ok {
		return nil, config.ErrNotExist
	}
	return child, nil
}

func (r *fakeConfigRegistry) CreateSubKey(name string) (config.Registry, error) {
	child, ok := r.children[name]
	if !ok {
		child = newFakeConfigRegistry()
		r.children[name] = child
	}
	return child, nil
}

func (r *fakeConfigRegistry) DeleteSubKeyTree(name string) error {
	delete(r.children, name)
	return nil
}

func (r *fakeConfigRegistry) SubKeyNames() ([]string, error) {
	names := make([]string, 0, len(r.children))
	for name := range r.children {
		names = append(names, name)
	}
	return names, nil
}

func (r *fakeConfigRegistry) GetString(valueName string) (string, error) {
	v, ok := r.strings[valueName]
	if !ok {
		return "", config.ErrNotExist
	}
	return v, nil
}

func (r *fakeConfigRegistry) SetString(valueName, value string) error {
	r.strings[valueName] = value
	return nil
}

func (r *fakeConfigRegistry) GetUint32(valueName string) (uint32, error) {
	v, ok := r.uint32s[valueName]
	if !ok {
		return 0, config.ErrNotExist
	}
	return v, nil
}

func (r *fakeConfigRegistry) SetUint32(valueName string, value uint32) error {
	r.uint32s[valueName] = value
	return nil
}

func (r *fakeConfigRegistry) GetBinary(valueName string) ([]byte, error) {
	v, ok := r.binaries[valueName]
	if !ok {
		return nil, config.ErrNotExist
	}
	return v, nil
}

func (r *fakeConfigRegistry) SetBinary(valueName string, value []byte) error {
	r.binaries[valueName] = value
	return nil
}

func (r *fakeConfigRegistry) DeleteValue(valueName string) error {
	delete(r.strings, valueName)
	delete(r.uint32s, valueName)
	delete(r.binaries, valueName)
	return nil
}

func (r *fakeConfigRegistry) Close() error { return nil }

func TestLoadConfigOverlayParsesKnownFields(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "saved.cfg")
	contents := "left_panel_path = 'C:\\imported-left'\nsingle_instance = true\n"
	if err := os.WriteFile(file, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	overlay, err := loadConfigOverlay(file)
	if err != nil {
		t.Fatalf("loadConfigOverlay: %v", err)
	}
	if overlay.LeftPanelPath == nil || *overlay.LeftPanelPath != `C:\imported-left` {
		t.Fatalf("unexpected LeftPanelPath: %+v", overlay.LeftPanelPath)
	}
	if overlay.RightPanelPath != nil {
		t.Fatalf("expected no RightPanelPath, got %+v", overlay.RightPanelPath)
	}
	if overlay.SingleInstance == nil || !*overlay.SingleInstance {
		t.Fatalf("expected SingleInstance=true, got %+v", overlay.SingleInstance)
	}
}

func TestLoadConfigOverlayMissingFileIsAnError(t *testing.T) {
	if _, err := loadConfigOverlay(filepath.Join(t.TempDir(), "missing.cfg")); err == nil {
		t.Fatal("expected an error for a missing configuration file")
	}
}

func TestApplyConfigOverlayOnlySetsPresentFields(t *testing.T) {
	cfg := config.New(newFakeConfigRegistry())
	if err := cfg.SetPanelPath(config.Right, `D:\existing-right`); err != nil {
		t.Fatalf("SetPanelPath: %v", err)
	}

	left := `C:\imported-left`
	overlay := configOverlay{LeftPanelPath: &left}
	if err := applyConfigOverlay(cfg, overlay); err != nil {
		t.Fatalf("applyConfigOverlay: %v", err)
	}

	got, ok := cfg.PanelPath(config.Left)
	if !ok || got != left {
		t.Fatalf("expected left panel path %q, got %q (ok=%v)", left, got, ok)
	}
	right, ok := cfg.PanelPath(config.Right)
	if !ok || right != `D:\existing-right` {
		t.Fatalf("expected untouched right panel path, got %q (ok=%v)", right, ok)
	}
}
