package idle

import (
	"sync"
	"time"
)

// Category is one of the five deferred-action classes, in fixed priority
// order (external activation highest).
type Category uint8

const (
	CategoryExternalActivation Category = iota
	CategoryRescuePath
	CategoryPluginCommand
	CategoryPluginUnload
	CategoryStateRecompute
	categoryCount
)

// activationTimeout is the freshness window for an external-activation
// request, per spec.md §4.7 ("roughly 10 s").
const activationTimeout = 10 * time.Second

// ActivationRequest is deposited by the single-instance channel (pkg/activation)
// when another process asks this one to show a path.
type ActivationRequest struct {
	Path    string
	Stamped time.Time
}

func (r ActivationRequest) expired(now time.Time) bool {
	return now.Sub(r.Stamped) >= activationTimeout
}

// PluginCommand is one posted command or menu-extension invocation from a
// plugin, identified by the plugin that posted it.
type PluginCommand struct {
	PluginID  string
	CommandID int
}

// UnloadRequest marks a plugin for unload at the next idle pass once no
// pending commands from it remain.
type UnloadRequest struct {
	PluginID string
}

// Handlers are the callbacks a Dispatcher invokes for each category. All
// are optional; a nil handler makes its category a no-op (the posted work
// is still discarded so it does not jam lower-priority categories).
type Handlers struct {
	ExternalActivation func(ActivationRequest)
	RescuePath         func()
	PluginCommand      func(PluginCommand)
	PluginUnload       func(UnloadRequest)
	// StateRecompute is invoked with the two independent dirty flags from
	// spec.md §4.7: refreshStates drives the command-enablement booleans,
	// checkClipboard additionally gates the expensive clipboard probe.
	StateRecompute func(refreshStates, checkClipboard bool)
}

// Dispatcher serializes deferred work onto whichever goroutine drives the
// main message pump. It holds no goroutine of its own: the caller's pump
// loop calls RunIdlePass once per idle transition.
type Dispatcher struct {
	handlers Handlers
	now      func() time.Time

	mu             sync.Mutex
	busy           bool
	activation     *ActivationRequest
	rescuePending  bool
	commands       []PluginCommand
	unloads        []UnloadRequest
	refreshStates  bool
	checkClipboard bool
}

// NewDispatcher creates a Dispatcher that invokes handlers as each
// category is serviced.
func NewDispatcher(handlers Handlers) *Dispatcher {
	return &Dispatcher{handlers: handlers, now: time.Now}
}

// SetBusy sets the SalamanderBusy flag. Per spec.md §4.7 this is set true
// on entry to any message handler outside the whitelisted low-impact set
// and cleared when the handler returns.
func (d *Dispatcher) SetBusy(busy bool) {
	d.mu.Lock()
	d.busy = busy
	d.mu.Unlock()
}

// Busy reports the current SalamanderBusy state.
func (d *Dispatcher) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// PostExternalActivation deposits a cross-process activation request,
// replacing any prior pending one (only the most recent request matters).
func (d *Dispatcher) PostExternalActivation(req ActivationRequest) {
	d.mu.Lock()
	d.activation = &req
	d.mu.Unlock()
}

// PostRescuePath marks that the active panel should fall onto the
// user-configured rescue path at the next idle pass.
func (d *Dispatcher) PostRescuePath() {
	d.mu.Lock()
	d.rescuePending = true
	d.mu.Unlock()
}

// PostPluginCommand enqueues a plugin-posted command, preserving FIFO
// order against other posted commands (invariant 8).
func (d *Dispatcher) PostPluginCommand(cmd PluginCommand) {
	d.mu.Lock()
	d.commands = append(d.commands, cmd)
	d.mu.Unlock()
}

// PostPluginUnload marks a plugin for unload once its pending commands
// have drained.
func (d *Dispatcher) PostPluginUnload(pluginID string) {
	d.mu.Lock()
	d.unloads = append(d.unloads, UnloadRequest{PluginID: pluginID})
	d.mu.Unlock()
}

// MarkStateRecompute raises the lazy state-recomputation flags. Either
// flag, once set, stays set until a StateRecompute pass clears it.
func (d *Dispatcher) MarkStateRecompute(refreshStates, checkClipboard bool) {
	d.mu.Lock()
	if refreshStates {
		d.refreshStates = true
	}
	if checkClipboard {
		d.checkClipboard = true
	}
	d.mu.Unlock()
}

// RunIdlePass services at most one deferred category and reports whether a
// handler was actually invoked. It is a no-op returning false whenever
// SalamanderBusy is true. Discarding an expired external-activation
// request is not itself a dispatch: the pass falls through to the next
// category in priority order in the same call, since the expired request
// required no main-thread work.
func (d *Dispatcher) RunIdlePass() bool {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return false
	}

	if d.activation != nil {
		req := *d.activation
		d.activation = nil
		if req.expired(d.now()) {
			d.mu.Unlock()
			return d.RunIdlePass()
		}
		d.mu.Unlock()
		if d.handlers.ExternalActivation != nil {
			d.handlers.ExternalActivation(req)
		}
		return true
	}

	if d.rescuePending {
		d.rescuePending = false
		d.mu.Unlock()
		if d.handlers.RescuePath != nil {
			d.handlers.RescuePath()
		}
		return true
	}

	if len(d.commands) > 0 {
		cmd := d.commands[0]
		d.commands = d.commands[1:]
		d.mu.Unlock()
		if d.handlers.PluginCommand != nil {
			d.handlers.PluginCommand(cmd)
		}
		return true
	}

	for i, unload := range d.unloads {
		if d.hasPendingCommandsLocked(unload.PluginID) {
			continue
		}
		d.unloads = append(d.unloads[:i], d.unloads[i+1:]...)
		d.mu.Unlock()
		if d.handlers.PluginUnload != nil {
			d.handlers.PluginUnload(unload)
		}
		return true
	}

	if d.refreshStates || d.checkClipboard {
		refresh, clipboard := d.refreshStates, d.checkClipboard
		d.refreshStates = false
		d.checkClipboard = false
		d.mu.Unlock()
		if d.handlers.StateRecompute != nil {
			d.handlers.StateRecompute(refresh, clipboard)
		}
		return true
	}

	d.mu.Unlock()
	return false
}

func (d *Dispatcher) hasPendingCommandsLocked(pluginID string) bool {
	for _, cmd := range d.commands {
		if cmd.PluginID == pluginID {
			return true
		}
	}
	return false
}
