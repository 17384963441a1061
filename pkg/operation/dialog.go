package operation

import "github.com/altap-salamander/core/pkg/path"

// DialogKind distinguishes the three interactive dialog shapes a worker can
// raise, per spec.md §4.6/§7.
type DialogKind uint8

const (
	// DialogError offers {Retry, Skip, SkipAll, Cancel} for most failures,
	// or {Retry, Ignore, IgnoreAll, Cancel} for recoverable read errors
	// (DialogRequest.Recoverable distinguishes the two).
	DialogError DialogKind = iota
	// DialogOverwrite offers {Yes, YesAll, Skip, SkipAll, Cancel} before
	// clobbering an existing target.
	DialogOverwrite
	// DialogNameTooLong offers {Retry, Skip, SkipAll, Cancel, Focus} when
	// a composed target path (and its short-name alternative, if any)
	// still exceeds the platform path length limit.
	DialogNameTooLong
)

// Choice is the user's answer to any of the three dialog kinds. Not every
// value is valid for every kind; see DialogKind's doc comment.
type Choice uint8

const (
	Retry Choice = iota
	Skip
	SkipAll
	Cancel
	Ignore
	IgnoreAll
	Yes
	YesAll
	Focus
)

// DialogRequest is sent by a worker to the main thread and answered by a
// Choice on the ReplyTo channel. The worker blocks on ReplyTo, per the
// suspension-point rules in spec.md §5.
type DialogRequest struct {
	Kind    DialogKind
	Op      *Operation
	Path    path.Path
	ErrKind ErrorKind // the Failure.Kind triggering a DialogError/DialogNameTooLong request

	// Recoverable is true for a DialogError raised by a read error the
	// scheduler considers retryable without data loss, offering
	// {Retry, Ignore, IgnoreAll, Cancel} instead of
	// {Retry, Skip, SkipAll, Cancel}.
	Recoverable bool

	// SystemOrHidden/ReadOnly flag which supplemental overwrite
	// confirmation applies to a DialogOverwrite request, per
	// Options.ConfirmSystemHiddenOverwrite/ConfirmReadOnlyOverwrite.
	SystemOrHidden bool
	ReadOnly       bool
	// PermanentDelete flags a DialogOverwrite-shaped confirmation raised
	// before a Delete bypasses the Recycle Bin
	// (Options.ConfirmPermanentDelete).
	PermanentDelete bool

	ReplyTo chan Choice
}

// Dialogs is the channel pair a Scheduler uses to surface DialogRequests to
// the main thread. The main thread receives from Requests and must send
// exactly one Choice per request on request.ReplyTo.
type Dialogs struct {
	Requests chan DialogRequest
}

// NewDialogs creates a Dialogs channel with the given buffer depth (0 for
// fully synchronous hand-off).
func NewDialogs(buffer int) *Dialogs {
	return &Dialogs{Requests: make(chan DialogRequest, buffer)}
}

// ask sends req on d.Requests and blocks for the reply. It is the only
// place a worker suspends waiting on the main thread, per spec.md §5.
func (d *Dialogs) ask(req DialogRequest) Choice {
	req.ReplyTo = make(chan Choice, 1)
	d.Requests <- req
	return <-req.ReplyTo
}
