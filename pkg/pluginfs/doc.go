// Package pluginfs implements PluginFSRegistry: the lifecycle owner for
// every loaded plugin-FS provider and its instances. Providers are the
// engine's plug-in point for virtual file systems (archives handled out of
// process, network protocols, and the like); the registry dispatches path
// changes, listings, timers, and close requests to them, and enforces the
// five-step path-change protocol described in spec.md §4.4.
package pluginfs
