package pluginfs

import (
	"time"

	"github.com/altap-salamander/core/pkg/identifier"
	"github.com/pkg/errors"
)

// instanceState is the lifecycle state of an Instance.
type instanceState uint8

const (
	stateActive instanceState = iota
	stateDetached
	stateClosed
)

// Instance is a single open plugin-FS instance. The Registry owns it and
// controls its lifecycle; a panel showing it keeps a direct pointer to it.
// Detached instances live on in the registry until explicitly closed.
type Instance struct {
	// ID uniquely identifies the instance for its lifetime.
	ID string
	// FSName is the plugin-FS name this instance belongs to.
	FSName string
	// UserPart is the instance's current path remainder, as last accepted
	// by ChangePath.
	UserPart string
	// OpenedAt is a monotonic timestamp recorded when the instance was
	// first created.
	OpenedAt time.Time

	state        instanceState
	providerData any
	timers       map[int]*time.Timer
}

func newInstance(fsName, userPart string) (*Instance, error) {
	id, err := identifier.New(identifier.PrefixPluginFS)
	if err != nil {
		return nil, errors.Wrap(err, "unable to allocate instance identifier")
	}
	return &Instance{
		ID:       id,
		FSName:   fsName,
		UserPart: userPart,
		OpenedAt: time.Now(),
		state:    stateActive,
		timers:   make(map[int]*time.Timer),
	}, nil
}

// Active reports whether the instance is attached to a panel.
func (i *Instance) Active() bool { return i.state == stateActive }

// Detached reports whether the instance is off-panel but still alive.
func (i *Instance) Detached() bool { return i.state == stateDetached }

// SetProviderData lets a provider stash opaque per-instance state (a
// remote connection handle, a cached directory cursor, and the like).
func (i *Instance) SetProviderData(v any) { i.providerData = v }

// ProviderData returns whatever the provider last stashed via
// SetProviderData.
func (i *Instance) ProviderData() any { return i.providerData }
