package activation

import (
	"fmt"
	"net"
	"time"
)

// SendActivation dials pipeName via transport, writes req as a single
// framed message, and closes the connection. It does not wait for a reply:
// the existing instance has nothing to hand back, and the launching
// process's only remaining job is to exit.
func SendActivation(transport PipeTransport, pipeName string, req Request, timeout time.Duration) error {
	conn, err := transport.Dial(pipeName, timeout)
	if err != nil {
		return fmt.Errorf("unable to dial activation pipe %s: %w", pipeName, err)
	}
	defer conn.Close()
	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("unable to set write deadline: %w", err)
	}
	if err := writeRequest(conn, req); err != nil {
		return err
	}
	return nil
}

// SendActivationConn is the transport-agnostic core of SendActivation, used
// directly by tests against a net.Pipe() connection.
func SendActivationConn(conn net.Conn, req Request) error {
	return writeRequest(conn, req)
}
