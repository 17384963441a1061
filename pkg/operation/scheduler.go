package operation

import (
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/altap-salamander/core/pkg/identifier"
	"github.com/altap-salamander/core/pkg/path"
)

// Scheduler runs bulk operations on per-operation worker goroutines. Each
// source path is engaged by at most one operation at a time; enqueueing an
// operation that conflicts with an in-flight one queues it behind that
// operation instead of running concurrently against the same paths.
type Scheduler struct {
	fs      FileOps
	dialogs *Dialogs

	mu      sync.Mutex
	active  map[string]*Operation
	pending []*pendingOp
}

type pendingOp struct {
	op      *Operation
	sources []path.Path
}

// NewScheduler creates a Scheduler backed by fs for filesystem primitives
// and dialogs for the main-thread error/overwrite dialog hand-off.
func NewScheduler(fs FileOps, dialogs *Dialogs) *Scheduler {
	return &Scheduler{
		fs:     fs,
		dialogs: dialogs,
		active: make(map[string]*Operation),
	}
}

// Enqueue creates and starts (or queues, on source conflict) a new
// operation.
func (s *Scheduler) Enqueue(kind Kind, sources []path.Path, target *path.Path, opts Options) (*Operation, error) {
	id, err := identifier.New(identifier.PrefixOperation)
	if err != nil {
		return nil, errors.Wrap(err, "unable to allocate operation identifier")
	}
	op := newOperation(id, kind, sources, target, opts)

	s.mu.Lock()
	if s.conflictsLocked(sources) {
		s.pending = append(s.pending, &pendingOp{op: op, sources: sources})
		s.mu.Unlock()
		return op, nil
	}
	s.claimLocked(op, sources)
	s.mu.Unlock()

	go s.run(op, sources)
	return op, nil
}

func sourceKey(p path.Path) string {
	return strings.ToUpper(p.Format())
}

func (s *Scheduler) conflictsLocked(sources []path.Path) bool {
	for _, src := range sources {
		key := sourceKey(src)
		for activeKey := range s.active {
			if key == activeKey || strings.HasPrefix(key, activeKey+`\`) || strings.HasPrefix(activeKey, key+`\`) {
				return true
			}
		}
	}
	return false
}

func (s *Scheduler) claimLocked(op *Operation, sources []path.Path) {
	for _, src := range sources {
		s.active[sourceKey(src)] = op
	}
}

func (s *Scheduler) releaseAndAdvance(op *Operation, sources []path.Path) {
	s.mu.Lock()
	for _, src := range sources {
		key := sourceKey(src)
		if s.active[key] == op {
			delete(s.active, key)
		}
	}

	var stillPending []*pendingOp
	var toStart []*pendingOp
	for _, pend := range s.pending {
		if !s.conflictsLocked(pend.sources) {
			s.claimLocked(pend.op, pend.sources)
			toStart = append(toStart, pend)
		} else {
			stillPending = append(stillPending, pend)
		}
	}
	s.pending = stillPending
	s.mu.Unlock()

	for _, pend := range toStart {
		go s.run(pend.op, pend.sources)
	}
}

func (s *Scheduler) run(op *Operation, sources []path.Path) {
	defer s.releaseAndAdvance(op, sources)
	runWorker(s.fs, s.dialogs, op)
}

// CancelAll requests cooperative cancellation of every active and queued
// operation. Used by EngineContext on critical shutdown, where spec.md §9
// requires in-flight bulk operations to wind down rather than be killed
// mid-write.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[*Operation]bool)
	for _, op := range s.active {
		if !seen[op] {
			seen[op] = true
			op.Cancel()
		}
	}
	for _, pend := range s.pending {
		if !seen[pend.op] {
			seen[pend.op] = true
			pend.op.Cancel()
		}
	}
}
