package config

import (
	"github.com/altap-salamander/core/pkg/encoding"
)

// Value names persisted directly under a version root, per spec.md §6.
const (
	valueLeftPanelPath      = "LeftPanelPath"
	valueRightPanelPath     = "RightPanelPath"
	valueSingleInstance     = "SingleInstance"
	valueShowSplash         = "ShowSplash"
	valueRescuePath         = "RescuePath"
	valueIconOverlayDisable = "IconOverlayDisableList"

	pluginsSubKey            = "Plugins"
	valuePluginPasswordFlag  = "PasswordManager"
	valuePluginConfigBlob    = "Config"
	lastVisitedDriveValuePfx = "LastDir_"
)

// allValueNames enumerates every value name Config writes at any level of
// the tree (root values and per-plugin subkey values, and one synthetic
// entry per drive letter), so migration's copyKnownValues can move them
// without a generic value-enumeration primitive in Registry.
var allValueNames = buildAllValueNames()

func buildAllValueNames() []string {
	names := []string{
		valueLeftPanelPath,
		valueRightPanelPath,
		valueSingleInstance,
		valueShowSplash,
		valueRescuePath,
		valueIconOverlayDisable,
		valuePluginPasswordFlag,
		valuePluginConfigBlob,
	}
	for d := byte('A'); d <= 'Z'; d++ {
		names = append(names, driveValueName(d))
	}
	return names
}

func driveValueName(drive byte) string {
	return lastVisitedDriveValuePfx + string(drive)
}

// Side identifies which panel a persisted path belongs to.
type Side int

const (
	Left Side = iota
	Right
)

// Config wraps a single version root's Registry with the typed accessors
// the core persists, per spec.md §6.
type Config struct {
	root Registry
}

// New wraps an already-opened version-root Registry (typically the result
// of ProbeAndMigrate).
func New(root Registry) *Config {
	return &Config{root: root}
}

// Close releases the underlying registry handle.
func (c *Config) Close() error {
	return c.root.Close()
}

func (c *Config) PanelPath(side Side) (string, bool) {
	name := valueLeftPanelPath
	if side == Right {
		name = valueRightPanelPath
	}
	value, err := c.root.GetString(name)
	return value, err == nil
}

func (c *Config) SetPanelPath(side Side, path string) error {
	name := valueLeftPanelPath
	if side == Right {
		name = valueRightPanelPath
	}
	return c.root.SetString(name, path)
}

func (c *Config) LastVisitedDriveDirectory(drive byte) (string, bool) {
	value, err := c.root.GetString(driveValueName(drive))
	return value, err == nil
}

func (c *Config) SetLastVisitedDriveDirectory(drive byte, dir string) error {
	return c.root.SetString(driveValueName(drive), dir)
}

func (c *Config) SingleInstance() bool {
	v, err := c.root.GetUint32(valueSingleInstance)
	return err == nil && v != 0
}

func (c *Config) SetSingleInstance(enabled bool) error {
	return c.root.SetUint32(valueSingleInstance, boolToUint32(enabled))
}

func (c *Config) ShowSplash() bool {
	v, err := c.root.GetUint32(valueShowSplash)
	if err != nil {
		// Default true: absent on first run, matching the teacher's
		// default-splash-on-first-launch behavior.
		return true
	}
	return v != 0
}

func (c *Config) SetShowSplash(enabled bool) error {
	return c.root.SetUint32(valueShowSplash, boolToUint32(enabled))
}

func (c *Config) RescuePath() (string, bool) {
	value, err := c.root.GetString(valueRescuePath)
	return value, err == nil
}

func (c *Config) SetRescuePath(path string) error {
	return c.root.SetString(valueRescuePath, path)
}

// IconOverlayDisableList returns the set of overlay-handler names disabled
// by the user, TOML-encoded as a binary blob since the registry has no
// native string-array value type this package relies on.
func (c *Config) IconOverlayDisableList() ([]string, error) {
	blob, err := c.root.GetBinary(valueIconOverlayDisable)
	if err != nil {
		if err == ErrNotExist {
			return nil, nil
		}
		return nil, err
	}
	var list struct {
		Names []string
	}
	if err := encoding.UnmarshalTOML(blob, &list); err != nil {
		return nil, err
	}
	return list.Names, nil
}

func (c *Config) SetIconOverlayDisableList(names []string) error {
	blob, err := encoding.MarshalTOML(struct{ Names []string }{Names: names})
	if err != nil {
		return err
	}
	return c.root.SetBinary(valueIconOverlayDisable, blob)
}

func (c *Config) pluginKey(pluginID string, create bool) (Registry, error) {
	plugins, err := c.openOrCreate(pluginsSubKey, create)
	if err != nil {
		return nil, err
	}
	defer plugins.Close()
	return c.openOrCreateOn(plugins, pluginID, create)
}

func (c *Config) openOrCreate(name string, create bool) (Registry, error) {
	return c.openOrCreateOn(c.root, name, create)
}

func (c *Config) openOrCreateOn(parent Registry, name string, create bool) (Registry, error) {
	key, err := parent.OpenSubKey(name)
	if err == nil {
		return key, nil
	}
	if err != ErrNotExist || !create {
		return nil, err
	}
	return parent.CreateSubKey(name)
}

// PluginPasswordManagerFlag reports whether pluginID has opted into the
// password-manager integration.
func (c *Config) PluginPasswordManagerFlag(pluginID string) (bool, error) {
	key, err := c.pluginKey(pluginID, false)
	if err != nil {
		if err == ErrNotExist {
			return false, nil
		}
		return false, err
	}
	defer key.Close()
	v, err := key.GetUint32(valuePluginPasswordFlag)
	if err != nil {
		if err == ErrNotExist {
			return false, nil
		}
		return false, err
	}
	return v != 0, nil
}

func (c *Config) SetPluginPasswordManagerFlag(pluginID string, enabled bool) error {
	key, err := c.pluginKey(pluginID, true)
	if err != nil {
		return err
	}
	defer key.Close()
	return key.SetUint32(valuePluginPasswordFlag, boolToUint32(enabled))
}

// LoadPluginBlob decodes pluginID's opaque TOML-encoded configuration blob
// into out. Absent blobs leave out untouched and return ErrNotExist.
func (c *Config) LoadPluginBlob(pluginID string, out interface{}) error {
	key, err := c.pluginKey(pluginID, false)
	if err != nil {
		return err
	}
	defer key.Close()
	blob, err := key.GetBinary(valuePluginConfigBlob)
	if err != nil {
		return err
	}
	return encoding.UnmarshalTOML(blob, out)
}

// SavePluginBlob TOML-encodes in and stores it under pluginID's own
// subkey, owned exclusively by that plugin.
func (c *Config) SavePluginBlob(pluginID string, in interface{}) error {
	key, err := c.pluginKey(pluginID, true)
	if err != nil {
		return err
	}
	defer key.Close()
	blob, err := encoding.MarshalTOML(in)
	if err != nil {
		return err
	}
	return key.SetBinary(valuePluginConfigBlob, blob)
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
