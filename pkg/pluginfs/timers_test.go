package pluginfs

import (
	"testing"
	"time"
)

func TestRequestTimerDeliveryWaitsForPumpTimers(t *testing.T) {
	r := NewRegistry()
	p := newFakeProvider()
	p.listable["host"] = true
	r.RegisterProvider("ftp", p)

	result, err := r.EnterPath(nil, "ftp", "host")
	if err != nil {
		t.Fatal(err)
	}
	inst := result.Instance

	r.RequestTimer(inst, 1, 5*time.Millisecond)

	// Give the AfterFunc goroutine time to fire; it must only enqueue the
	// fire, never call provider.Event itself.
	time.Sleep(50 * time.Millisecond)
	if len(p.events) != 0 {
		t.Fatalf("expected no events delivered before PumpTimers, got %v", p.events)
	}

	r.PumpTimers()
	if len(p.events) != 1 || p.events[0] != EventTimer {
		t.Fatalf("expected one EventTimer after PumpTimers, got %v", p.events)
	}
}

func TestRequestTimerSameUserdataReplacesPending(t *testing.T) {
	r := NewRegistry()
	p := newFakeProvider()
	p.listable["host"] = true
	r.RegisterProvider("ftp", p)

	result, err := r.EnterPath(nil, "ftp", "host")
	if err != nil {
		t.Fatal(err)
	}
	inst := result.Instance

	r.RequestTimer(inst, 1, time.Hour)
	r.RequestTimer(inst, 1, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	r.PumpTimers()
	if len(p.events) != 1 {
		t.Fatalf("expected exactly one delivered fire, got %d", len(p.events))
	}
}

func TestCancelTimerPreventsDelivery(t *testing.T) {
	r := NewRegistry()
	p := newFakeProvider()
	p.listable["host"] = true
	r.RegisterProvider("ftp", p)

	result, err := r.EnterPath(nil, "ftp", "host")
	if err != nil {
		t.Fatal(err)
	}
	inst := result.Instance

	r.RequestTimer(inst, 1, 5*time.Millisecond)
	r.CancelTimer(inst, 1)

	time.Sleep(50 * time.Millisecond)
	r.PumpTimers()
	if len(p.events) != 0 {
		t.Fatalf("expected cancelled timer to never deliver, got %v", p.events)
	}
}
