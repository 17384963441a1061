//go:build windows

package activation

import (
	"fmt"
	"net"
	"os/user"
	"time"

	"github.com/Microsoft/go-winio"
)

// winTransport is the real PipeTransport, backed by go-winio named pipes
// restricted to the current user's SID. Grounded on mutagen's
// pkg/daemon/ipc_windows.go NewListener/DialTimeout.
type winTransport struct{}

// NewTransport returns the platform's real PipeTransport.
func NewTransport() PipeTransport { return winTransport{} }

func (winTransport) Listen(pipeName string) (net.Listener, error) {
	current, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("unable to look up current user: %w", err)
	}
	// D:P(A;;GA;;;<sid>) grants Generic All to the owning user only and
	// prevents inherited permissions (the P flag), so another desktop
	// session cannot hijack the single-instance channel.
	securityDescriptor := fmt.Sprintf("D:P(A;;GA;;;%s)", current.Uid)
	config := &winio.PipeConfig{SecurityDescriptor: securityDescriptor}
	return winio.ListenPipe(pipeName, config)
}

func (winTransport) Dial(pipeName string, timeout time.Duration) (net.Conn, error) {
	var timeoutPointer *time.Duration
	if timeout != 0 {
		timeoutPointer = &timeout
	}
	return winio.DialPipe(pipeName, timeoutPointer)
}
