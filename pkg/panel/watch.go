package panel

import (
	"sync"
	"time"

	"github.com/altap-salamander/core/pkg/state"
)

// ChangeNotifier delivers filesystem change notifications for a watched
// Disk or UNC directory. A platform implementation wraps
// ReadDirectoryChangesW; it is intentionally out of pkg/panel's scope
// (see pkg/volume for the sibling syscall-behind-an-interface split) —
// callers construct one per platform and hand it to WatchDispatcher.
type ChangeNotifier interface {
	// Watch begins monitoring directory and delivers a value on the
	// returned channel each time the OS reports a change underneath it.
	// The channel is closed when Close is called.
	Watch(directory string) (<-chan struct{}, error)
	// Close releases resources associated with a previous Watch call on
	// the same directory. Calling Close on a directory never watched is
	// a no-op.
	Close(directory string)
}

// debounceWindow is the maximum delay between the first change
// notification in a burst and the Refresh it triggers (spec.md §4.6).
const debounceWindow = 200 * time.Millisecond

// WatchDispatcher coalesces bursty change notifications for a single panel
// into at most one pending-refresh signal per debounceWindow. Per spec.md
// §4.5/§5, PanelEngine and Panel are driven from the main thread; the
// background notifier goroutine (pump) never touches them directly. It only strobes a state.Coalescer — the
// teacher's own coalesced-signaling primitive — and the main-thread pump
// calls Dispatch when Ready delivers a signal, which is where the actual
// Refresh happens.
type WatchDispatcher struct {
	engine    *Engine
	panel     *Panel
	notifier  ChangeNotifier
	coalescer *state.Coalescer

	mu        sync.Mutex
	directory string
	stopped   bool
}

// NewWatchDispatcher creates a dispatcher bound to one panel. Start must be
// called to begin watching; Stop releases the underlying OS watch.
func NewWatchDispatcher(engine *Engine, p *Panel, notifier ChangeNotifier) *WatchDispatcher {
	return &WatchDispatcher{
		engine:    engine,
		panel:     p,
		notifier:  notifier,
		coalescer: state.NewCoalescer(debounceWindow),
	}
}

// Ready delivers a signal whenever a debounced refresh is pending. The
// main-thread pump (cmd/salamander's idle loop) selects on this alongside
// its other work and calls Dispatch in response; it must never be read
// from any other goroutine.
func (d *WatchDispatcher) Ready() <-chan struct{} {
	return d.coalescer.Events()
}

// Dispatch performs the actual Refresh for a pending signal from Ready.
// Must be called only from the main thread.
func (d *WatchDispatcher) Dispatch() {
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()
	if stopped {
		return
	}
	d.engine.Refresh(d.panel, RefreshOptions{})
}

// Start begins watching directory, replacing any previously watched
// directory for this dispatcher.
func (d *WatchDispatcher) Start(directory string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.directory != "" {
		d.notifier.Close(d.directory)
	}

	events, err := d.notifier.Watch(directory)
	if err != nil {
		return err
	}
	d.directory = directory
	d.stopped = false

	go d.pump(events, directory)
	return nil
}

// pump runs on the background notifier goroutine. It never calls into
// Engine/Panel itself — it only strobes the coalescer, which hands the
// actual refresh back to the main thread via Ready/Dispatch.
func (d *WatchDispatcher) pump(events <-chan struct{}, directory string) {
	for range events {
		d.mu.Lock()
		current := d.directory
		stopped := d.stopped
		d.mu.Unlock()
		if stopped || current != directory {
			continue
		}
		d.coalescer.Strobe()
	}
}

// Stop releases the OS watch and discards any pending debounced signal. The
// dispatcher may be restarted with a fresh Start call; the coalescer itself
// keeps running so a subsequent Start doesn't need a new one.
func (d *WatchDispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	if d.directory != "" {
		d.notifier.Close(d.directory)
		d.directory = ""
	}
}

// Close stops watching permanently and releases the coalescer's background
// goroutine. Unlike Stop, the dispatcher must not be reused after Close.
func (d *WatchDispatcher) Close() {
	d.Stop()
	d.coalescer.Terminate()
}
