package pluginfs

import (
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/altap-salamander/core/pkg/listing"
)

// ErrUnknownFSName is returned when no provider has registered the
// requested fsName.
var ErrUnknownFSName = errors.New("no provider registered for that fs name")

// ErrCannotClosePath is returned when a provider refuses a non-forced
// TryClose probe.
var ErrCannotClosePath = errors.New("plugin-fs instance refused to close")

// ErrNoAccessiblePath is returned when EnterPath exhausts shortening all
// the way to the instance's root without a successful listing.
var ErrNoAccessiblePath = errors.New("no accessible path within plugin fs")

// Registry owns every loaded plugin-FS provider and every instance they
// have created, across both panels and the detached set. All methods must
// be called from the engine's main thread; the registry does no internal
// locking of its own state beyond what's needed to keep timers safe.
type Registry struct {
	mu        sync.Mutex
	providers map[string]Provider
	instances map[string]*Instance

	pendingTimers []pendingTimerFire
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		instances: make(map[string]*Instance),
	}
}

// RegisterProvider associates fsName with provider. Registering the same
// fsName twice replaces the previous provider.
func (r *Registry) RegisterProvider(fsName string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[fsName] = provider
}

func (r *Registry) providerFor(fsName string) (Provider, error) {
	p, ok := r.providers[fsName]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFSName, "fs name %q", fsName)
	}
	return p, nil
}

// Instance looks up a live instance by ID.
func (r *Registry) Instance(id string) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[id]
	return inst, ok
}

// EnterPathResult is the outcome of EnterPath.
type EnterPathResult struct {
	Instance  *Instance
	Listing   listing.Listing
	Shortened bool
	// RestoredToOriginal is true when shortening failed all the way down
	// and the registry successfully restored the original instance to its
	// pre-attempt path (step 5 of the protocol).
	RestoredToOriginal bool
}

// EnterPath implements the five-step path-change protocol from spec.md
// §4.4: reuse the current instance if it can reach the target, else reuse
// a detached instance, else create one; then list, shortening on failure.
func (r *Registry) EnterPath(current *Instance, fsName, userPart string) (EnterPathResult, error) {
	provider, err := r.providerFor(fsName)
	if err != nil {
		return EnterPathResult{}, err
	}

	originalUserPart := ""
	reachedViaStep1 := false

	var inst *Instance
	var mode ChangePathMode

	switch {
	case current != nil && current.FSName == fsName && provider.IsOurPath(fsName, userPart):
		// Step 1: same instance can reach it directly.
		inst = current
		mode = ChangePathSameInstance
		reachedViaStep1 = true
		originalUserPart = current.UserPart
	default:
		if detached := r.findDetached(fsName, userPart, provider); detached != nil {
			// Step 2: reattach a matching detached instance.
			inst = detached
			mode = ChangePathReattach
			r.mu.Lock()
			inst.state = stateActive
			r.mu.Unlock()
			provider.Event(inst, EventAttached, nil)
		} else {
			// Step 3: instantiate a new one.
			inst, err = newInstance(fsName, userPart)
			if err != nil {
				return EnterPathResult{}, err
			}
			r.mu.Lock()
			r.instances[inst.ID] = inst
			r.mu.Unlock()
			mode = ChangePathFresh
		}
	}

	changeResult := provider.ChangePath(inst, userPart, mode)
	if !changeResult.OK {
		return EnterPathResult{}, errors.Wrap(changeResultError(changeResult), "change path failed")
	}
	inst.UserPart = effectiveUserPart(userPart, changeResult)
	provider.Event(inst, EventPathChanged, nil)

	// Step 4: list, shortening on failure.
	l, err := provider.ListCurrent(inst)
	shortened := false
	for err != nil {
		parent, ok := shortenUserPart(inst.UserPart)
		if !ok {
			// Root reached and still failing.
			if reachedViaStep1 && originalUserPart != inst.UserPart {
				if restoreErr := r.restore(provider, inst, originalUserPart); restoreErr == nil {
					l, err = provider.ListCurrent(inst)
					if err == nil {
						return EnterPathResult{Instance: inst, Listing: l, RestoredToOriginal: true}, nil
					}
				}
			}
			return EnterPathResult{}, errors.Wrap(ErrNoAccessiblePath, "exhausted shortening to root")
		}
		shortenResult := provider.ChangePath(inst, parent, mode)
		if !shortenResult.OK {
			return EnterPathResult{}, errors.Wrap(changeResultError(shortenResult), "shortened change path failed")
		}
		inst.UserPart = effectiveUserPart(parent, shortenResult)
		shortened = true
		l, err = provider.ListCurrent(inst)
	}

	return EnterPathResult{Instance: inst, Listing: l, Shortened: shortened}, nil
}

func (r *Registry) restore(provider Provider, inst *Instance, originalUserPart string) error {
	result := provider.ChangePath(inst, originalUserPart, ChangePathReattach)
	if !result.OK {
		return changeResultError(result)
	}
	inst.UserPart = effectiveUserPart(originalUserPart, result)
	return nil
}

func effectiveUserPart(requested string, result ChangePathResult) string {
	if result.Shortened != "" {
		return result.Shortened
	}
	return requested
}

func changeResultError(result ChangePathResult) error {
	if result.Err != nil {
		return result.Err
	}
	return errors.New("provider declined the path change")
}

// findDetached finds a detached instance of the same provider that can
// reach userPart, per step 2 of the protocol. Caller must not hold r.mu.
func (r *Registry) findDetached(fsName, userPart string, provider Provider) *Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inst := range r.instances {
		if inst.state != stateDetached || inst.FSName != fsName {
			continue
		}
		if provider.IsOurPath(fsName, userPart) {
			return inst
		}
	}
	return nil
}

// shortenUserPart strips the trailing "/"-separated component of userPart.
// It returns false if userPart is already at its root (empty).
func shortenUserPart(userPart string) (string, bool) {
	if userPart == "" {
		return "", false
	}
	idx := strings.LastIndexByte(userPart, '/')
	if idx < 0 {
		return "", true
	}
	return userPart[:idx], true
}

// CloseInPanel detaches instance from its panel. It probes the provider
// with TryClose(false); on refusal it returns ErrCannotClosePath and the
// instance remains active.
func (r *Registry) CloseInPanel(inst *Instance) error {
	provider, err := r.providerFor(inst.FSName)
	if err != nil {
		return err
	}
	if !provider.TryClose(inst, false) {
		return ErrCannotClosePath
	}
	r.mu.Lock()
	inst.state = stateDetached
	r.mu.Unlock()
	provider.Event(inst, EventClosedInPanel, nil)
	provider.Event(inst, EventDetached, nil)
	return nil
}

// DisposeDetached fully destroys a detached instance: it force-closes via
// TryClose(true), cancels its timers, and removes it from the registry.
func (r *Registry) DisposeDetached(inst *Instance) error {
	provider, err := r.providerFor(inst.FSName)
	if err != nil {
		return err
	}
	if !provider.TryClose(inst, true) {
		return errors.New("provider refused forced close")
	}
	r.cancelAllTimers(inst)
	r.mu.Lock()
	inst.state = stateClosed
	delete(r.instances, inst.ID)
	r.mu.Unlock()
	return nil
}

// DetachedInstances returns every instance currently off-panel.
func (r *Registry) DetachedInstances() []*Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*Instance
	for _, inst := range r.instances {
		if inst.state == stateDetached {
			result = append(result, inst)
		}
	}
	return result
}
