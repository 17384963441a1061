package idle

import (
	"testing"
	"time"
)

func TestNoCategoryRunsWhileBusy(t *testing.T) {
	invoked := false
	d := NewDispatcher(Handlers{
		PluginCommand: func(PluginCommand) { invoked = true },
	})
	d.SetBusy(true)
	d.PostPluginCommand(PluginCommand{PluginID: "p1", CommandID: 1})

	if d.RunIdlePass() {
		t.Fatal("expected RunIdlePass to be a no-op while busy")
	}
	if invoked {
		t.Fatal("handler must not run while SalamanderBusy is true")
	}

	d.SetBusy(false)
	if !d.RunIdlePass() {
		t.Fatal("expected the queued command to run once busy clears")
	}
	if !invoked {
		t.Fatal("expected the plugin command handler to have been invoked")
	}
}

func TestPluginCommandsRunInFIFOOrder(t *testing.T) {
	var order []int
	d := NewDispatcher(Handlers{
		PluginCommand: func(cmd PluginCommand) { order = append(order, cmd.CommandID) },
	})
	d.PostPluginCommand(PluginCommand{PluginID: "p1", CommandID: 1})
	d.PostPluginCommand(PluginCommand{PluginID: "p1", CommandID: 2})
	d.PostPluginCommand(PluginCommand{PluginID: "p2", CommandID: 3})

	for i := 0; i < 3; i++ {
		if !d.RunIdlePass() {
			t.Fatalf("expected a dispatch on pass %d", i)
		}
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected FIFO order [1 2 3], got %v", order)
	}
}

func TestFixedPriorityOrder(t *testing.T) {
	var ran []Category
	d := NewDispatcher(Handlers{
		ExternalActivation: func(ActivationRequest) { ran = append(ran, CategoryExternalActivation) },
		RescuePath:         func() { ran = append(ran, CategoryRescuePath) },
		PluginCommand:      func(PluginCommand) { ran = append(ran, CategoryPluginCommand) },
		PluginUnload:       func(UnloadRequest) { ran = append(ran, CategoryPluginUnload) },
		StateRecompute:     func(bool, bool) { ran = append(ran, CategoryStateRecompute) },
	})

	d.MarkStateRecompute(true, false)
	d.PostPluginUnload("p1")
	d.PostPluginCommand(PluginCommand{PluginID: "p2", CommandID: 1})
	d.PostRescuePath()
	d.PostExternalActivation(ActivationRequest{Path: `C:\x`, Stamped: time.Now()})

	for i := 0; i < 5; i++ {
		d.RunIdlePass()
	}

	want := []Category{
		CategoryExternalActivation,
		CategoryRescuePath,
		CategoryPluginCommand,
		CategoryPluginUnload,
		CategoryStateRecompute,
	}
	if len(ran) != len(want) {
		t.Fatalf("expected %d dispatches, got %d: %v", len(want), len(ran), ran)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("dispatch %d: expected %v, got %v (full order %v)", i, want[i], ran[i], ran)
		}
	}
}

func TestPluginUnloadWaitsForPendingCommands(t *testing.T) {
	var ran []string
	d := NewDispatcher(Handlers{
		PluginCommand: func(cmd PluginCommand) { ran = append(ran, "command:"+cmd.PluginID) },
		PluginUnload:  func(u UnloadRequest) { ran = append(ran, "unload:"+u.PluginID) },
	})

	d.PostPluginUnload("p1")
	d.PostPluginCommand(PluginCommand{PluginID: "p1", CommandID: 1})

	// Pass 1: the pending command for p1 outranks its own unload request.
	if !d.RunIdlePass() {
		t.Fatal("expected the command to dispatch first")
	}
	if len(ran) != 1 || ran[0] != "command:p1" {
		t.Fatalf("expected the command to run before the unload, got %v", ran)
	}

	// Pass 2: no more commands for p1, the unload may proceed.
	if !d.RunIdlePass() {
		t.Fatal("expected the unload to dispatch once commands drained")
	}
	if len(ran) != 2 || ran[1] != "unload:p1" {
		t.Fatalf("expected unload:p1 second, got %v", ran)
	}
}

func TestExpiredActivationRequestIsDiscardedNotDispatched(t *testing.T) {
	invoked := false
	d := NewDispatcher(Handlers{
		ExternalActivation: func(ActivationRequest) { invoked = true },
	})
	staleTime := time.Now().Add(-30 * time.Second)
	d.now = func() time.Time { return time.Now() }
	d.PostExternalActivation(ActivationRequest{Path: `C:\x`, Stamped: staleTime})

	if d.RunIdlePass() {
		t.Fatal("expected RunIdlePass to report no dispatch for a stale-only queue")
	}
	if invoked {
		t.Fatal("an expired activation request must never be dispatched")
	}
}

func TestFreshActivationRequestDispatches(t *testing.T) {
	var got ActivationRequest
	d := NewDispatcher(Handlers{
		ExternalActivation: func(req ActivationRequest) { got = req },
	})
	d.PostExternalActivation(ActivationRequest{Path: `C:\fresh`, Stamped: time.Now()})

	if !d.RunIdlePass() {
		t.Fatal("expected a fresh activation request to dispatch")
	}
	if got.Path != `C:\fresh` {
		t.Fatalf("expected the handler to receive the posted path, got %q", got.Path)
	}
}
