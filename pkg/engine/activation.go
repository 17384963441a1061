package engine

import (
	"fmt"
	"net"
	"time"

	"github.com/altap-salamander/core/pkg/activation"
)

// appID scopes the single-instance pipe name away from any other program
// named by PipeName's template.
const appID = "salamander"

// ActivationServer owns the listener backing the single-instance channel.
// It is started once by the first-launched instance and stopped on
// shutdown.
type ActivationServer struct {
	listener net.Listener
}

// StartActivationServer begins listening on the well-known single-instance
// pipe and forwards every fresh request it receives to ctx.PostActivation.
// Returns (nil, err) if a listener could not be created (most commonly
// because another instance is already listening, which the caller should
// treat as "fall back to activating that instance instead").
func StartActivationServer(ctx *EngineContext, transport activation.PipeTransport) (*ActivationServer, error) {
	pipeName := activation.PipeName(appID)
	listener, err := transport.Listen(pipeName)
	if err != nil {
		return nil, fmt.Errorf("unable to listen on single-instance pipe: %w", err)
	}
	server := &ActivationServer{listener: listener}
	go func() {
		_ = activation.Serve(listener, ctx.PostActivation, time.Now)
	}()
	return server, nil
}

// Close stops accepting further activation requests.
func (s *ActivationServer) Close() error {
	return s.listener.Close()
}

// SendActivation dials the well-known single-instance pipe and hands off
// req, for use by a second-launched process that found single-instance
// mode active. Per spec.md §6 the caller exits immediately afterward
// regardless of whether the send succeeded.
func SendActivation(transport activation.PipeTransport, req activation.Request, timeout time.Duration) error {
	return activation.SendActivation(transport, activation.PipeName(appID), req, timeout)
}
