package operation

import (
	"sync"

	"github.com/altap-salamander/core/pkg/path"
)

// Kind is the class of bulk operation a worker runs.
type Kind uint8

const (
	Copy Kind = iota
	Move
	Delete
	Attr
	Pack
	Unpack
)

func (k Kind) String() string {
	switch k {
	case Copy:
		return "Copy"
	case Move:
		return "Move"
	case Delete:
		return "Delete"
	case Attr:
		return "Attr"
	case Pack:
		return "Pack"
	case Unpack:
		return "Unpack"
	default:
		return "Unknown"
	}
}

// ErrorKind is the closed set of error classifications from spec.md §7.
// Component-level errors carry a Kind via *Failure so the scheduler's
// error-policy state machine can switch on kind without string matching.
type ErrorKind uint8

const (
	InvalidPath ErrorKind = iota
	NotAccessible
	NotAnArchive
	NoSuchPlugin
	PluginRefusedClose
	NameTooLong
	UserCancel
	UserSkip
	UserSkipAll
	Interrupted
	IoError
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidPath:
		return "InvalidPath"
	case NotAccessible:
		return "NotAccessible"
	case NotAnArchive:
		return "NotAnArchive"
	case NoSuchPlugin:
		return "NoSuchPlugin"
	case PluginRefusedClose:
		return "PluginRefusedClose"
	case NameTooLong:
		return "NameTooLong"
	case UserCancel:
		return "UserCancel"
	case UserSkip:
		return "UserSkip"
	case UserSkipAll:
		return "UserSkipAll"
	case Interrupted:
		return "Interrupted"
	case IoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Failure wraps an underlying error with its ErrorKind and the source path
// it occurred on, so error-policy decisions and dialogs can be built
// without parsing error strings.
type Failure struct {
	Kind   ErrorKind
	Path   path.Path
	OSCode int
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Kind.String() + ": " + f.Path.Format() + ": " + f.Err.Error()
	}
	return f.Kind.String() + ": " + f.Path.Format()
}

func (f *Failure) Unwrap() error { return f.Err }

// Options configures a single operation's optional behaviors.
type Options struct {
	Mask string

	// ConfirmPermanentDelete, when set, asks for confirmation before a
	// Delete bypasses the Recycle Bin (supplemented from
	// original_source/salamdr1.cpp).
	ConfirmPermanentDelete bool
	// ConfirmReadOnlyOverwrite, when set, asks for confirmation before
	// clobbering a read-only target, separately from the system/hidden
	// overwrite prompt (supplemented from original_source/spl_gen.h).
	ConfirmReadOnlyOverwrite bool
	// ConfirmSystemHiddenOverwrite gates the system/hidden-file overwrite
	// prompt from spec.md §4.6.
	ConfirmSystemHiddenOverwrite bool
}

// Operation is a single bulk-operation request. It owns its source list by
// value: once enqueued, its view of the filesystem is independent of any
// panel's subsequent state changes.
type Operation struct {
	ID      string
	Kind    Kind
	Sources []path.Path
	Target  *path.Path
	Options Options

	Progress *Progress

	cancel chan struct{}

	mu                 sync.Mutex
	skipAll            bool
	ignoreAll          map[ErrorKind]bool
	yesAll             bool
	permanentDeleteAll bool
	done               bool
	result             Result
}

// Result summarizes how an operation finished.
type Result struct {
	Outcome         Outcome
	SkippedCount    int
	CompletedCount  int
	FirstFailure    *Failure
}

// Outcome classifies an operation's terminal state.
type Outcome uint8

const (
	Completed Outcome = iota
	CompletedWithSkips
	Cancelled
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "Completed"
	case CompletedWithSkips:
		return "CompletedWithSkips"
	case Cancelled:
		return "Cancelled"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// newOperation constructs an Operation with its cancel channel, progress
// tracker, and per-operation error-policy state initialized.
func newOperation(id string, kind Kind, sources []path.Path, target *path.Path, opts Options) *Operation {
	return &Operation{
		ID:       id,
		Kind:     kind,
		Sources:  append([]path.Path(nil), sources...),
		Target:   target,
		Options:  opts,
		Progress: newProgress(),
		cancel:   make(chan struct{}),
		ignoreAll: make(map[ErrorKind]bool),
	}
}

// Cancel requests cooperative cancellation. It is safe to call multiple
// times and from any goroutine.
func (o *Operation) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	select {
	case <-o.cancel:
	default:
		close(o.cancel)
	}
}

// Cancelled reports whether cancellation has been requested.
func (o *Operation) Cancelled() bool {
	select {
	case <-o.cancel:
		return true
	default:
		return false
	}
}

// Result returns the operation's terminal result. It is only meaningful
// once the worker has finished and recorded it via setResult.
func (o *Operation) Result() Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

func (o *Operation) setResult(r Result) {
	o.mu.Lock()
	o.result = r
	o.done = true
	o.mu.Unlock()
}
