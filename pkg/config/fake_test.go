package config

// fakeRegistry is an in-memory Registry double used to test Config and
// ProbeAndMigrate without a real Windows registry.
type fakeRegistry struct {
	strings  map[string]string
	uint32s  map[string]uint32
	binaries map[string][]byte
	children map[string]*fakeRegistry
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		strings:  make(map[string]string),
		uint32s:  make(map[string]uint32),
		binaries: make(map[string][]byte),
		children: make(map[string]*fakeRegistry),
	}
}

func (r *fakeRegistry) OpenSubKey(name string) (Registry, error) {
	child, ok := r.children[name]
	if !ok {
		return nil, ErrNotExist
	}
	return child, nil
}

func (r *fakeRegistry) CreateSubKey(name string) (Registry, error) {
	child, ok := r.children[name]
	if !ok {
		child = newFakeRegistry()
		r.children[name] = child
	}
	return child, nil
}

func (r *fakeRegistry) DeleteSubKeyTree(name string) error {
	delete(r.children, name)
	return nil
}

func (r *fakeRegistry) SubKeyNames() ([]string, error) {
	names := make([]string, 0, len(r.children))
	for name := range r.children {
		names = append(names, name)
	}
	return names, nil
}

func (r *fakeRegistry) GetString(valueName string) (string, error) {
	v, ok := r.strings[valueName]
	if !ok {
		return "", ErrNotExist
	}
	return v, nil
}

func (r *fakeRegistry) SetString(valueName, value string) error {
	r.strings[valueName] = value
	return nil
}

func (r *fakeRegistry) GetUint32(valueName string) (uint32, error) {
	v, ok := r.uint32s[valueName]
	if !ok {
		return 0, ErrNotExist
	}
	return v, nil
}

func (r *fakeRegistry) SetUint32(valueName string, value uint32) error {
	r.uint32s[valueName] = value
	return nil
}

func (r *fakeRegistry) GetBinary(valueName string) ([]byte, error) {
	v, ok := r.binaries[valueName]
	if !ok {
		return nil, ErrNotExist
	}
	return v, nil
}

func (r *fakeRegistry) SetBinary(valueName string, value []byte) error {
	r.binaries[valueName] = value
	return nil
}

func (r *fakeRegistry) DeleteValue(valueName string) error {
	delete(r.strings, valueName)
	delete(r.uint32s, valueName)
	delete(r.binaries, valueName)
	return nil
}

func (r *fakeRegistry) Close() error { return nil }
