// Package config implements the hierarchical, registry-backed
// configuration store described in spec.md §6: panel paths, per-drive
// last-visited directories, the single-instance toggle, the rescue path,
// the icon-overlay disable list, per-plugin password-manager flags, and
// opaque TOML-encoded blobs owned by each plugin under its own subkey.
//
// The OS registry access itself is isolated behind the Registry interface,
// the same syscalls-behind-an-interface split pkg/volume uses for its
// Windows-only primitives: registry_windows.go wraps
// golang.org/x/sys/windows/registry for the real store, registry_other.go
// stubs it out on non-Windows builds, and tests substitute an in-memory
// fake so the version-probing and migration logic is portable.
package config
