// Package idle implements IdleDispatcher: a single-threaded, priority-
// ordered queue of deferred actions that are unsafe to run from arbitrary
// reentrant message-handler contexts. See spec.md §4.7.
//
// Grounded on the shape of mutagen's pkg/housekeeping.Housekeep — a set of
// independent maintenance passes, each skipped cheaply when it has nothing
// to do — generalized from "run every pass unconditionally" into "run at
// most one pass per idle tick, in fixed priority order, gated on a busy
// flag" per spec.md's stricter cooperative-scheduling contract.
package idle
