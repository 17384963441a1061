//go:build !windows

package config

// stubRegistry reports every operation as unsupported. The configuration
// store's semantics are the Windows registry specifically (spec.md §6);
// non-Windows builds exist only so the rest of the module compiles, and
// tests exercise Config against an in-memory fake instead.
type stubRegistry struct{}

// OpenRoot returns a no-op Registry on platforms without a native
// registry.
func OpenRoot(path string) (Registry, error) {
	return stubRegistry{}, nil
}

func (stubRegistry) OpenSubKey(name string) (Registry, error)   { return nil, ErrUnsupported }
func (stubRegistry) CreateSubKey(name string) (Registry, error) { return nil, ErrUnsupported }
func (stubRegistry) DeleteSubKeyTree(name string) error         { return ErrUnsupported }
func (stubRegistry) SubKeyNames() ([]string, error)             { return nil, ErrUnsupported }
func (stubRegistry) GetString(valueName string) (string, error) { return "", ErrUnsupported }
func (stubRegistry) SetString(valueName, value string) error    { return ErrUnsupported }
func (stubRegistry) GetUint32(valueName string) (uint32, error) { return 0, ErrUnsupported }
func (stubRegistry) SetUint32(valueName string, value uint32) error {
	return ErrUnsupported
}
func (stubRegistry) GetBinary(valueName string) ([]byte, error) { return nil, ErrUnsupported }
func (stubRegistry) SetBinary(valueName string, value []byte) error {
	return ErrUnsupported
}
func (stubRegistry) DeleteValue(valueName string) error { return ErrUnsupported }
func (stubRegistry) Close() error                       { return nil }
