// Package panel implements PanelEngine: the state machine behind each of
// the two side-by-side navigation surfaces. It mediates between user path
// input and PathKit, VolumeResolver, PluginFSRegistry, and a pluggable
// filesystem/archive reader, producing one of the outcome codes described
// in spec.md §4.5.
package panel
