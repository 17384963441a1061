// Package engine provides EngineContext, the explicitly threaded state
// spec.md §9's re-architecting notes require in place of the process
// globals a Win32 message-pump program traditionally accumulates
// (SalamanderBusy, per-window idle-refresh flags, a critical-shutdown
// latch). EngineContext owns no business logic of its own: it wires
// together pkg/panel's Engine, pkg/operation's Scheduler and Dialogs,
// pkg/idle's Dispatcher, pkg/config's Config, and pkg/activation's
// single-instance channel, and exposes the busy/shutdown flags those
// components read and write.
//
// There is no single teacher file this package ports: mutagen has no
// message-pump busy flag or idle dispatcher, since it is not an
// interactive GUI-adjacent program. EngineContext's shape instead follows
// spec.md §9 directly, reusing the construction idioms (constructor
// functions returning a struct of interfaces, no package-level mutable
// state) already established by pkg/panel.NewEngine and
// pkg/operation.NewScheduler.
package engine
