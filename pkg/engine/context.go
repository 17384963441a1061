package engine

import (
	"sync/atomic"

	"github.com/altap-salamander/core/pkg/activation"
	"github.com/altap-salamander/core/pkg/config"
	"github.com/altap-salamander/core/pkg/idle"
	"github.com/altap-salamander/core/pkg/logging"
	"github.com/altap-salamander/core/pkg/operation"
	"github.com/altap-salamander/core/pkg/panel"
)

var engineLogger = logging.RootLogger.Sublogger("engine")

// EngineContext is the explicitly threaded replacement for the process
// globals a traditional Win32 message-pump program keeps: "is a handler
// currently running" (Busy), "what deferred work is outstanding" (Idle),
// and "are we tearing down" (CriticalShutdown). It is constructed once at
// startup and passed to every component that previously would have
// reached for a global.
type EngineContext struct {
	Panels     *panel.Engine
	Operations *operation.Scheduler
	Dialogs    *operation.Dialogs
	Idle       *idle.Dispatcher
	Config     *config.Config

	shuttingDown int32
}

// NewEngineContext wires a PanelEngine, OperationScheduler, IdleDispatcher
// and Config together. handlers supplies the idle.Dispatcher callbacks
// (rescue-path navigation, plugin command/unload dispatch, state
// recomputation). If handlers.ExternalActivation is nil,
// defaultExternalActivationHandler below is installed; it only logs the
// request and navigates no panel, so a caller that wants activation to
// change panel paths supplies its own handler.
func NewEngineContext(panels *panel.Engine, fileOps operation.FileOps, cfg *config.Config, handlers idle.Handlers, dialogBuffer int) *EngineContext {
	dialogs := operation.NewDialogs(dialogBuffer)
	ctx := &EngineContext{
		Panels:     panels,
		Operations: operation.NewScheduler(fileOps, dialogs),
		Dialogs:    dialogs,
		Config:     cfg,
	}
	if handlers.ExternalActivation == nil {
		handlers.ExternalActivation = ctx.defaultExternalActivationHandler
	}
	ctx.Idle = idle.NewDispatcher(handlers)
	return ctx
}

// SetBusy marks whether a message handler is currently executing on the
// main thread. Deferred idle work (pkg/idle) is gated on this flag exactly
// as SalamanderBusy gates it in spec.md §4.7; EngineContext is simply the
// named, threaded home for the flag instead of a package-level global.
func (c *EngineContext) SetBusy(busy bool) {
	c.Idle.SetBusy(busy)
}

// Busy reports the current busy state.
func (c *EngineContext) Busy() bool {
	return c.Idle.Busy()
}

// CriticalShutdown reports whether the engine has begun tearing down.
// Neither pkg/operation nor pkg/config reads this flag; the effect of a
// critical shutdown on bulk operations comes from BeginCriticalShutdown
// cancelling them.
func (c *EngineContext) CriticalShutdown() bool {
	return atomic.LoadInt32(&c.shuttingDown) != 0
}

// BeginCriticalShutdown latches CriticalShutdown and cancels every
// in-flight and queued bulk operation so they wind down cooperatively
// instead of being killed mid-write.
func (c *EngineContext) BeginCriticalShutdown() {
	atomic.StoreInt32(&c.shuttingDown, 1)
	c.Operations.CancelAll()
}

// defaultExternalActivationHandler logs the path of a fresh cross-process
// activation request at debug level. It does not navigate either panel. It
// is installed automatically by NewEngineContext unless the caller supplies
// its own idle.Handlers.ExternalActivation.
func (c *EngineContext) defaultExternalActivationHandler(req idle.ActivationRequest) {
	engineLogger.Debugf("external activation: %s", req.Path)
}

// PostActivation converts an activation.Request received over the
// single-instance pipe into the idle.ActivationRequest shape pkg/idle
// expects and posts it, so the ExternalActivation handler runs on the idle
// pass rather than on the pipe-server goroutine that received it.
func (c *EngineContext) PostActivation(req activation.Request) {
	target := req.LeftPath
	if target == "" {
		target = req.RightPath
	}
	c.Idle.PostExternalActivation(idle.ActivationRequest{
		Path:    target,
		Stamped: req.Timestamp,
	})
}
