// Package operation implements OperationScheduler: queues and executes bulk
// file operations (copy, move, delete, attribute change, pack, unpack) on
// per-operation worker goroutines, with an interactive error-handling and
// overwrite-confirmation protocol mediated over a request/reply channel to
// the main thread. See spec.md §4.6.
package operation
