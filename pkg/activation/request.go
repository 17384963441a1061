package activation

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/altap-salamander/core/pkg/encoding"
)

// maxFrameSize bounds the length-prefixed frame read from a peer, guarding
// against a corrupt or hostile length prefix driving an unbounded allocation.
const maxFrameSize = 64 * 1024

// Request is the payload handed to the running instance by a newly launched
// one that finds single-instance mode active. LeftPath/RightPath mirror the
// paths the new instance was told to open via its -L/-R command-line parameters;
// Activate requests that the existing instance's main window be brought to
// the foreground even if neither path is set.
type Request struct {
	ID        uuid.UUID `toml:"id"`
	Timestamp time.Time `toml:"timestamp"`
	LeftPath  string    `toml:"left_path,omitempty"`
	RightPath string    `toml:"right_path,omitempty"`
	Activate  bool      `toml:"activate"`
}

// NewRequest builds a Request stamped with a fresh UUID and the given time,
// normally time.Now at the call site (kept as a parameter so tests can
// control it without the toolchain's wall clock).
func NewRequest(now time.Time, leftPath, rightPath string) Request {
	return Request{
		ID:        uuid.New(),
		Timestamp: now,
		LeftPath:  leftPath,
		RightPath: rightPath,
		Activate:  true,
	}
}

// Fresh reports whether req arrived within the activation freshness window
// relative to now: its age must be under 10 s, and a request exactly 10 s
// old is stale. Matches pkg/idle's activationTimeout so an activation
// request that is stale by the time the dispatcher's idle pass gets to it
// is discarded rather than honored.
func Fresh(req Request, now time.Time) bool {
	age := now.Sub(req.Timestamp)
	return age >= 0 && age < freshnessWindow
}

const freshnessWindow = 10 * time.Second

// writeRequest TOML-encodes req and writes it to w as a single length-
// prefixed frame, so a stream-oriented transport like a named pipe has an
// unambiguous message boundary.
func writeRequest(w io.Writer, req Request) error {
	payload, err := encoding.MarshalTOML(req)
	if err != nil {
		return fmt.Errorf("unable to encode activation request: %w", err)
	}
	if len(payload) > maxFrameSize {
		return fmt.Errorf("activation request too large: %d bytes", len(payload))
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("unable to write frame header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("unable to write frame payload: %w", err)
	}
	return nil
}

// readRequest reads one length-prefixed frame from r and TOML-decodes it
// into a Request.
func readRequest(r io.Reader) (Request, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Request{}, fmt.Errorf("unable to read frame header: %w", err)
	}
	size := binary.BigEndian.Uint32(header[:])
	if size > maxFrameSize {
		return Request{}, fmt.Errorf("activation request frame too large: %d bytes", size)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Request{}, fmt.Errorf("unable to read frame payload: %w", err)
	}
	var req Request
	if err := encoding.UnmarshalTOML(payload, &req); err != nil {
		return Request{}, fmt.Errorf("unable to decode activation request: %w", err)
	}
	return req, nil
}
