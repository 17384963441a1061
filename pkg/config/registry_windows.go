//go:build windows

package config

import (
	"golang.org/x/sys/windows/registry"
)

// winRegistry is the real Registry implementation, backed by
// golang.org/x/sys/windows/registry under HKEY_CURRENT_USER.
type winRegistry struct {
	key registry.Key
}

// OpenRoot opens (creating if necessary) the product-versioned root key
// under HKEY_CURRENT_USER.
func OpenRoot(path string) (Registry, error) {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, path, registry.ALL_ACCESS)
	if err != nil {
		return nil, err
	}
	return winRegistry{key: key}, nil
}

func (r winRegistry) OpenSubKey(name string) (Registry, error) {
	child, err := registry.OpenKey(r.key, name, registry.ALL_ACCESS)
	if err != nil {
		if err == registry.ErrNotExist {
			return nil, ErrNotExist
		}
		return nil, err
	}
	return winRegistry{key: child}, nil
}

func (r winRegistry) CreateSubKey(name string) (Registry, error) {
	child, _, err := registry.CreateKey(r.key, name, registry.ALL_ACCESS)
	if err != nil {
		return nil, err
	}
	return winRegistry{key: child}, nil
}

func (r winRegistry) DeleteSubKeyTree(name string) error {
	return deleteKeyRecursive(r.key, name)
}

func deleteKeyRecursive(parent registry.Key, name string) error {
	child, err := registry.OpenKey(parent, name, registry.ALL_ACCESS)
	if err != nil {
		if err == registry.ErrNotExist {
			return nil
		}
		return err
	}
	children, err := child.ReadSubKeyNames(-1)
	child.Close()
	if err != nil {
		return err
	}
	for _, grandchild := range children {
		if err := deleteKeyRecursive(child, grandchild); err != nil {
			return err
		}
	}
	return registry.DeleteKey(parent, name)
}

func (r winRegistry) SubKeyNames() ([]string, error) {
	return r.key.ReadSubKeyNames(-1)
}

func (r winRegistry) GetString(valueName string) (string, error) {
	value, _, err := r.key.GetStringValue(valueName)
	if err == registry.ErrNotExist {
		return "", ErrNotExist
	}
	return value, err
}

func (r winRegistry) SetString(valueName, value string) error {
	return r.key.SetStringValue(valueName, value)
}

func (r winRegistry) GetUint32(valueName string) (uint32, error) {
	value, _, err := r.key.GetIntegerValue(valueName)
	if err == registry.ErrNotExist {
		return 0, ErrNotExist
	}
	return uint32(value), err
}

func (r winRegistry) SetUint32(valueName string, value uint32) error {
	return r.key.SetDWordValue(valueName, value)
}

func (r winRegistry) GetBinary(valueName string) ([]byte, error) {
	value, _, err := r.key.GetBinaryValue(valueName)
	if err == registry.ErrNotExist {
		return nil, ErrNotExist
	}
	return value, err
}

func (r winRegistry) SetBinary(valueName string, value []byte) error {
	return r.key.SetBinaryValue(valueName, value)
}

func (r winRegistry) DeleteValue(valueName string) error {
	err := r.key.DeleteValue(valueName)
	if err == registry.ErrNotExist {
		return nil
	}
	return err
}

func (r winRegistry) Close() error {
	return r.key.Close()
}
