// Package activation implements the single-instance channel from
// spec.md §6: when another process instance is launched with single-
// instance mode active, it hands its parsed command-line parameters and a
// monotonic timestamp to the existing instance over a named pipe and
// exits; the existing instance honors the request only if it arrived
// within a ~10 s freshness window.
//
// The named-pipe transport is grounded on mutagen's
// pkg/daemon/ipc_windows.go (go-winio's PipeConfig/SDDL pattern, restricting
// the pipe to the current user's SID) and isolated behind pipe.go's
// PipeTransport interface, the same syscalls-behind-an-interface split
// pkg/volume and pkg/config use for their own Windows-only primitives: the
// request/response protocol (request.go, server.go, client.go) is plain
// net.Conn plumbing and is tested with net.Pipe(), independent of the real
// OS transport.
package activation
