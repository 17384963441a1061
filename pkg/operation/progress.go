package operation

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/altap-salamander/core/pkg/state"
)

// publishInterval bounds progress publication to at most 10 Hz, per
// spec.md §4.6.
const publishInterval = 100 * time.Millisecond

// Snapshot is a point-in-time progress reading, safe to copy and hand to a
// UI layer.
type Snapshot struct {
	BytesDone   int64
	BytesTotal  int64
	CurrentName string
	ETASeconds  float64
}

// HumanReadable renders the snapshot the way the teacher's CLI renders
// transfer progress: "12.3 MB / 45.6 MB".
func (s Snapshot) HumanReadable() string {
	return humanize.Bytes(uint64(s.BytesDone)) + " / " + humanize.Bytes(uint64(s.BytesTotal))
}

// Progress is a per-operation progress sink. Readers poll via the embedded
// Tracker (pkg/state's condition-variable-as-index bridge), mirroring how
// the teacher's synchronization sessions expose state to monitors.
type Progress struct {
	lock    *state.TrackingLock
	tracker *state.Tracker

	current   Snapshot
	lastEmit  time.Time
	startedAt time.Time
}

func newProgress() *Progress {
	tracker := state.NewTracker()
	return &Progress{
		lock:      state.NewTrackingLock(tracker),
		tracker:   tracker,
		startedAt: time.Time{},
	}
}

// Current returns the most recently published snapshot.
func (p *Progress) Current() Snapshot {
	p.lock.Lock()
	defer p.lock.UnlockWithoutNotify()
	return p.current
}

// Poll blocks until the tracker's index advances past previousIndex or ctx
// is done, returning the new index. It delegates directly to the
// underlying Tracker.
func (p *Progress) Poll(ctx context.Context, previousIndex uint64) (uint64, error) {
	return p.tracker.WaitForChange(ctx, previousIndex)
}

// update records bytesDone/bytesTotal/currentName and publishes a
// notification if at least publishInterval has elapsed since the last one,
// or if force is true (used for the final update of an operation).
func (p *Progress) update(bytesDone, bytesTotal int64, currentName string, force bool) {
	now := time.Now()

	p.lock.Lock()
	if p.startedAt.IsZero() {
		p.startedAt = now
	}
	elapsed := now.Sub(p.lastEmit)
	if !force && p.lastEmit.After(time.Time{}) && elapsed < publishInterval {
		p.current.BytesDone = bytesDone
		p.current.BytesTotal = bytesTotal
		p.current.CurrentName = currentName
		p.lock.UnlockWithoutNotify()
		return
	}

	eta := 0.0
	if rate := float64(bytesDone) / time.Since(p.startedAt).Seconds(); rate > 0 && bytesTotal > bytesDone {
		eta = float64(bytesTotal-bytesDone) / rate
	}

	p.current = Snapshot{
		BytesDone:   bytesDone,
		BytesTotal:  bytesTotal,
		CurrentName: currentName,
		ETASeconds:  eta,
	}
	p.lastEmit = now
	p.lock.Unlock()
}
