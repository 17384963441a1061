package config

import "errors"

// ErrNotExist is returned by Registry lookups for a value or subkey that
// does not exist.
var ErrNotExist = errors.New("config: value or key does not exist")

// ErrUnsupported is returned by the non-Windows Registry stub for every
// operation: the configuration store's semantics are the Windows registry
// specifically, per spec.md §6.
var ErrUnsupported = errors.New("config: registry store unsupported on this platform")

// Registry abstracts the single primitive the configuration store needs:
// an open key that holds named values and named subkeys. Implementations
// must be safe for the access pattern Config uses (open, read/write,
// close), though not necessarily for concurrent use by independent
// callers; nothing in this module serializes configuration access, so
// callers that share a Registry across goroutines do so themselves.
type Registry interface {
	// OpenSubKey opens an existing child key by name.
	OpenSubKey(name string) (Registry, error)
	// CreateSubKey opens a child key by name, creating it (and any
	// missing intermediate keys the implementation requires) if absent.
	CreateSubKey(name string) (Registry, error)
	// DeleteSubKeyTree removes a child key and everything under it.
	DeleteSubKeyTree(name string) error
	// SubKeyNames lists the immediate child key names.
	SubKeyNames() ([]string, error)

	GetString(valueName string) (string, error)
	SetString(valueName, value string) error
	GetUint32(valueName string) (uint32, error)
	SetUint32(valueName string, value uint32) error
	GetBinary(valueName string) ([]byte, error)
	SetBinary(valueName string, value []byte) error
	DeleteValue(valueName string) error

	Close() error
}
