package activation

import (
	"errors"
	"io"
	"net"
	"time"
)

// Handler processes a freshly-arrived, still-fresh activation request. It is
// invoked synchronously from the connection's goroutine; the caller is
// expected to forward it to the engine's idle dispatcher rather than act on
// it directly, mirroring how pkg/idle defers cross-cutting work out of
// reentrant handler contexts.
type Handler func(Request)

// Clock abstracts time.Now for freshness checks so tests can supply a fixed
// time instead of racing the wall clock.
type Clock func() time.Time

// ServeConn reads exactly one activation request from conn, evaluates its
// freshness against now(), and invokes handler if it is still fresh. A stale
// request is discarded silently: the caller that launched a second instance
// already exited by the time we would reply, so there is nothing to answer.
func ServeConn(conn net.Conn, handler Handler, now Clock) error {
	defer conn.Close()
	req, err := readRequest(conn)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if !Fresh(req, now()) {
		return nil
	}
	handler(req)
	return nil
}

// Serve accepts connections from listener until it returns an error (which
// happens once the listener is closed) and handles each with ServeConn on
// its own goroutine. Per-connection errors are not fatal to the loop.
func Serve(listener net.Listener, handler Handler, now Clock) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}
		go func() { _ = ServeConn(conn, handler, now) }()
	}
}
