// Package diskio adapts path.Path (Disk kind only) onto Go's standard
// library os package, giving cmd/salamander a real panel.FileSystem and
// operation.FileOps without reimplementing mutagen's much larger
// pkg/filesystem (which covers POSIX executability bits, atomic rename
// across platforms, and directory-entry metadata this core engine has no
// use for on its own). UNC paths resolve to the same \\server\share\...
// strings Windows already accepts through the os package; Archive and
// PluginFS paths are out of scope here and are served by pkg/diskcache and
// pkg/pluginfs respectively, never by this adapter.
package diskio
