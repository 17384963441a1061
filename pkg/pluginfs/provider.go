package pluginfs

import "github.com/altap-salamander/core/pkg/listing"

// ChangePathMode distinguishes a fresh instantiation from reattaching a
// detached instance, since some providers need to resynchronize cached
// state before accepting a path on a reattach.
type ChangePathMode uint8

const (
	// ChangePathFresh is used when the instance was just created.
	ChangePathFresh ChangePathMode = iota
	// ChangePathReattach is used when a detached instance is being
	// reattached to a panel.
	ChangePathReattach
	// ChangePathSameInstance is used when the same active instance is
	// simply navigating to a new path within its own fsName.
	ChangePathSameInstance
)

// ChangePathResult is the outcome of Provider.ChangePath.
type ChangePathResult struct {
	// OK reports whether the instance now reflects newUserPart (or a
	// shortened version of it).
	OK bool
	// Shortened, if non-empty, is the userPart the provider actually
	// settled on (shorter than requested). Empty means the provider
	// accepted newUserPart exactly.
	Shortened string
	// Err carries provider-reported failure detail.
	Err error
}

// EventKind enumerates the notifications Provider.Event may receive.
type EventKind uint8

const (
	// EventPathChanged fires after ChangePath succeeds.
	EventPathChanged EventKind = iota
	// EventActivateRefresh fires when the user requests a manual refresh
	// of the instance's current listing.
	EventActivateRefresh
	// EventTimer fires when a timer the provider requested expires.
	EventTimer
	// EventClosedInPanel fires when the panel holding this instance
	// navigates away from it (the instance becomes detached, not
	// necessarily destroyed).
	EventClosedInPanel
	// EventDetached fires when an instance is moved to the detached set.
	EventDetached
	// EventAttached fires when a detached instance is reattached to a
	// panel.
	EventAttached
)

// Provider is the contract a plugin-FS implementation must satisfy. All
// methods are invoked on the engine's main thread; providers must not block
// beyond short intervals (spec.md §4.4, §9).
type Provider interface {
	// IsOurPath reports whether this provider, for the given fsName, could
	// service userPart — used during path change to decide whether an
	// existing open instance can reach the new path without
	// reinstantiation.
	IsOurPath(fsName, userPart string) bool

	// ChangePath directs instance to a new userPart. The provider may
	// shorten the path by stripping trailing components if the exact
	// target is inaccessible; it reports what it settled on via
	// ChangePathResult.Shortened.
	ChangePath(instance *Instance, newUserPart string, mode ChangePathMode) ChangePathResult

	// ListCurrent lists the directory instance currently points to.
	ListCurrent(instance *Instance) (listing.Listing, error)

	// Event delivers a lifecycle or timer notification to instance.
	Event(instance *Instance, kind EventKind, param any)

	// TryClose probes whether instance can be closed. When force is true
	// the provider must release its resources regardless of internal
	// state (e.g. unsaved edits are discarded); when force is false the
	// provider may refuse by returning false.
	TryClose(instance *Instance, force bool) bool
}
