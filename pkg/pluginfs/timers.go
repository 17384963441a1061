package pluginfs

import "time"

// pendingTimerFire is a timer that has gone off on its AfterFunc goroutine
// but whose provider.Event call has not yet run on the main thread.
type pendingTimerFire struct {
	inst     *Instance
	userdata int
	provider Provider
}

// RequestTimer asks the registry to deliver Event(Timer, userdata) to inst
// once, after delay elapses. A provider may hold at most one pending timer
// per userdata value; requesting the same userdata again replaces the
// pending timer.
func (r *Registry) RequestTimer(inst *Instance, userdata int, delay time.Duration) {
	r.mu.Lock()
	if existing, ok := inst.timers[userdata]; ok {
		existing.Stop()
	}
	provider := r.providers[inst.FSName]
	timer := time.AfterFunc(delay, func() {
		r.enqueueTimerFire(inst, userdata, provider)
	})
	inst.timers[userdata] = timer
	r.mu.Unlock()
}

// enqueueTimerFire runs on the AfterFunc goroutine. Per spec.md §4.4, every
// provider callback is invoked on the main thread, and the rest of
// Registry relies on that to get away with no locking beyond timer
// bookkeeping — so this never calls provider.Event itself. It only retires
// the timer's bookkeeping entry and deposits the fire for PumpTimers,
// which runs on the main thread, to deliver.
func (r *Registry) enqueueTimerFire(inst *Instance, userdata int, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := inst.timers[userdata]; !ok {
		return
	}
	delete(inst.timers, userdata)
	r.pendingTimers = append(r.pendingTimers, pendingTimerFire{inst: inst, userdata: userdata, provider: provider})
}

// PumpTimers delivers every timer fire queued since the last call, on the
// caller's goroutine. Must be called only from the main thread (the idle
// loop calls it once per pass), the same way every other provider callback
// in this package is reached only from a main-thread-called Registry
// method.
func (r *Registry) PumpTimers() {
	r.mu.Lock()
	fires := r.pendingTimers
	r.pendingTimers = nil
	r.mu.Unlock()

	for _, f := range fires {
		if f.provider != nil {
			f.provider.Event(f.inst, EventTimer, f.userdata)
		}
	}
}

// CancelTimer cancels a specific pending timer, if any.
func (r *Registry) CancelTimer(inst *Instance, userdata int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if timer, ok := inst.timers[userdata]; ok {
		timer.Stop()
		delete(inst.timers, userdata)
	}
}

// cancelAllTimers cancels every pending timer for inst. Caller must not
// hold r.mu.
func (r *Registry) cancelAllTimers(inst *Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userdata, timer := range inst.timers {
		timer.Stop()
		delete(inst.timers, userdata)
	}
}
