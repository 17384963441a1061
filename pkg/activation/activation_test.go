package activation

import (
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestFreshRequestIsDispatched(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	req := Request{ID: uuid.New(), Timestamp: now.Add(-3 * time.Second), LeftPath: `C:\work`, Activate: true}

	client, server := net.Pipe()
	defer client.Close()

	go func() {
		_ = SendActivationConn(client, req)
		client.Close()
	}()

	var got Request
	var dispatched bool
	err := ServeConn(server, func(r Request) { dispatched = true; got = r }, fixedClock(now))
	if err != nil {
		t.Fatalf("ServeConn: %v", err)
	}
	if !dispatched {
		t.Fatal("expected a fresh request to be dispatched to the handler")
	}
	if got.LeftPath != `C:\work` {
		t.Fatalf("expected LeftPath C:\\work, got %q", got.LeftPath)
	}
}

func TestStaleRequestIsDiscardedNotDispatched(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	req := Request{ID: uuid.New(), Timestamp: now.Add(-30 * time.Second), Activate: true}

	client, server := net.Pipe()
	defer client.Close()

	go func() {
		_ = SendActivationConn(client, req)
		client.Close()
	}()

	dispatched := false
	err := ServeConn(server, func(Request) { dispatched = true }, fixedClock(now))
	if err != nil {
		t.Fatalf("ServeConn: %v", err)
	}
	if dispatched {
		t.Fatal("expected a stale (> 10s old) request to be discarded, not dispatched")
	}
}

func TestRequestFromTheFutureIsRejected(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	req := Request{ID: uuid.New(), Timestamp: now.Add(5 * time.Second), Activate: true}

	if Fresh(req, now) {
		t.Fatal("a timestamp from the future (clock skew) must not be treated as fresh")
	}
}

func TestFreshBoundaryIsExclusive(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	req := Request{ID: uuid.New(), Timestamp: now.Add(-10*time.Second + time.Millisecond)}
	if !Fresh(req, now) {
		t.Fatal("expected a request just under 10s old to still count as fresh")
	}
	req.Timestamp = now.Add(-10 * time.Second)
	if Fresh(req, now) {
		t.Fatal("expected exactly-10s-old request to be stale (exclusive boundary)")
	}
}

func TestRequestRoundTripsOverAFramedConnection(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	want := NewRequest(now, `C:\left`, `D:\right`)

	client, server := net.Pipe()
	errCh := make(chan error, 1)
	go func() {
		errCh <- writeRequest(client, want)
		client.Close()
	}()

	got, err := readRequest(server)
	if err != nil {
		t.Fatalf("readRequest: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("writeRequest: %v", err)
	}
	if got.ID != want.ID || got.LeftPath != want.LeftPath || got.RightPath != want.RightPath {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Fatalf("timestamp mismatch: got %v, want %v", got.Timestamp, want.Timestamp)
	}
}

func TestPipeNameIsStablePerApp(t *testing.T) {
	a := PipeName("salamander")
	b := PipeName("salamander")
	if a != b {
		t.Fatalf("expected a stable pipe name for the same app ID, got %q and %q", a, b)
	}
	if a != `\\.\pipe\salamander-singleinstance` {
		t.Fatalf("unexpected pipe name: %q", a)
	}
}
