package operation

import (
	"github.com/altap-salamander/core/pkg/path"
)

// runWorker executes a single operation to completion: planning, then
// driving each primitive in order while consulting the error-policy state
// machine, overwrite prompts, long-name fallback, and cooperative
// cancellation. It is run on its own goroutine by Scheduler.
func runWorker(fs FileOps, dialogs *Dialogs, op *Operation) {
	plan, err := Plan(fs, op)
	if err != nil {
		op.setResult(Result{Outcome: Failed, FirstFailure: asFailure(err)})
		return
	}

	if op.Kind == Delete {
		reverseDirsLast(plan)
	}

	var bytesTotal int64
	for _, entry := range plan {
		if !entry.IsDir {
			bytesTotal += entry.Size
		}
	}

	w := &worker{fs: fs, dialogs: dialogs, op: op, bytesTotal: bytesTotal}
	w.run(plan)
}

// reverseDirsLast moves every ActionDeleteDir entry to the end of its own
// subtree's span so children are deleted before their parent directory,
// while keeping the overall depth-first source order between independent
// top-level sources. It scans back-to-front: plan is in pre-order (a
// directory always precedes its descendants), so a nested directory's own
// reversal must happen before its ancestor's, or the ancestor's shift would
// carry the nested directory past descendants it hasn't been reordered
// against yet. A forward scan cannot revisit an index it already shifted
// past, which silently drops that reordering.
func reverseDirsLast(plan []PlanEntry) {
	for i := len(plan) - 1; i >= 0; i-- {
		if plan[i].Action != ActionDeleteDir {
			continue
		}
		j := i + 1
		for j < len(plan) && isDescendant(plan[i], plan[j]) {
			j++
		}
		if j > i+1 {
			entry := plan[i]
			copy(plan[i:j-1], plan[i+1:j])
			plan[j-1] = entry
		}
	}
}

func isDescendant(parent, candidate PlanEntry) bool {
	prefix := parent.TargetName
	if parent.RelDir != "" {
		prefix = parent.RelDir + `\` + parent.TargetName
	}
	if candidate.RelDir == prefix {
		return true
	}
	return len(candidate.RelDir) > len(prefix) &&
		candidate.RelDir[:len(prefix)] == prefix &&
		candidate.RelDir[len(prefix)] == '\\'
}

type worker struct {
	fs         FileOps
	dialogs    *Dialogs
	op         *Operation
	bytesTotal int64
	bytesDone  int64
}

func (w *worker) run(plan []PlanEntry) {
	completed := 0
	skipped := 0

	for _, entry := range plan {
		if w.op.Cancelled() {
			w.op.setResult(Result{Outcome: Cancelled, CompletedCount: completed, SkippedCount: skipped})
			return
		}

		w.op.Progress.update(w.bytesDone, w.bytesTotal, entry.TargetName, false)

		outcome := w.runEntry(entry)
		switch outcome {
		case entryDone:
			completed++
		case entrySkipped:
			skipped++
		case entryCancel:
			w.op.setResult(Result{Outcome: Cancelled, CompletedCount: completed, SkippedCount: skipped})
			return
		}
	}

	w.op.Progress.update(w.bytesDone, w.bytesTotal, "", true)

	if skipped > 0 {
		w.op.setResult(Result{Outcome: CompletedWithSkips, CompletedCount: completed, SkippedCount: skipped})
	} else {
		w.op.setResult(Result{Outcome: Completed, CompletedCount: completed, SkippedCount: skipped})
	}
}

type entryOutcome uint8

const (
	entryDone entryOutcome = iota
	entrySkipped
	entryCancel
)

func (w *worker) runEntry(entry PlanEntry) entryOutcome {
	targetPath := w.targetFor(entry)

	for {
		var err error
		if w.op.Target != nil && len(targetPath.Format()) > path.MaxPathLength {
			err = &Failure{Kind: NameTooLong, Path: entry.Source}
		} else {
			err = w.attempt(entry, targetPath)
		}
		if err == nil {
			if !entry.IsDir {
				w.bytesDone += entry.Size
			}
			return entryDone
		}

		failure := asFailure(err)
		choice, cancel := w.consultErrorPolicy(failure)
		if cancel {
			return entryCancel
		}
		switch choice {
		case Retry:
			continue
		case Skip, Ignore:
			return entrySkipped
		case SkipAll:
			w.op.mu.Lock()
			w.op.skipAll = true
			w.op.mu.Unlock()
			return entrySkipped
		case IgnoreAll:
			w.op.mu.Lock()
			w.op.ignoreAll[failure.Kind] = true
			w.op.mu.Unlock()
			return entrySkipped
		default:
			return entrySkipped
		}
	}
}

// targetFor composes the destination path for entry under op.Target,
// applying the long-name short-name fallback described in spec.md §4.6.
func (w *worker) targetFor(entry PlanEntry) path.Path {
	if w.op.Target == nil {
		return entry.Source
	}
	tail := entry.TargetName
	if entry.RelDir != "" {
		tail = entry.RelDir + `\` + entry.TargetName
	}
	candidate := joinChild(*w.op.Target, tail)
	if len(candidate.Format()) <= path.MaxPathLength {
		return candidate
	}
	if short, ok := w.fs.ShortName(entry.Source); ok {
		shortTail := short
		if entry.RelDir != "" {
			shortTail = entry.RelDir + `\` + short
		}
		shortCandidate := joinChild(*w.op.Target, shortTail)
		if len(shortCandidate.Format()) <= path.MaxPathLength {
			return shortCandidate
		}
	}
	return candidate
}

func (w *worker) attempt(entry PlanEntry, target path.Path) error {
	switch entry.Action {
	case ActionMakeDir:
		return w.fs.MakeDir(target)
	case ActionCopyFile:
		return w.copyOrPackFile(entry, target)
	case ActionMoveFile:
		return w.moveFile(entry, target)
	case ActionDeleteFile:
		return w.deleteEntry(entry)
	case ActionDeleteDir:
		return w.deleteEntry(entry)
	case ActionSetAttr:
		return w.fs.SetAttr(entry.Source, false, false, false)
	default:
		return nil
	}
}

// deleteEntry bypasses the Recycle Bin when Options.ConfirmPermanentDelete
// is set, but only after confirmPermanentDelete grants it; otherwise the
// delete goes through the Recycle Bin as usual.
func (w *worker) deleteEntry(entry PlanEntry) error {
	if !w.op.Options.ConfirmPermanentDelete {
		return w.fs.Delete(entry.Source, false)
	}
	if !w.confirmPermanentDelete(entry) {
		return &Failure{Kind: UserSkip, Path: entry.Source}
	}
	return w.fs.Delete(entry.Source, true)
}

// confirmPermanentDelete asks the overwrite-shaped dialog (supplemented
// from original_source/salamdr1.cpp's "confirm before delete to a
// location outside the Recycle Bin" prompt) before a delete that bypasses
// the Recycle Bin, mirroring confirmSupplementalOverwrite's pattern for
// ConfirmReadOnlyOverwrite/ConfirmSystemHiddenOverwrite.
func (w *worker) confirmPermanentDelete(entry PlanEntry) bool {
	w.op.mu.Lock()
	permanentAll := w.op.permanentDeleteAll
	w.op.mu.Unlock()
	if permanentAll {
		return true
	}

	choice := w.dialogs.ask(DialogRequest{
		Kind:            DialogOverwrite,
		Op:              w.op,
		Path:            entry.Source,
		PermanentDelete: true,
	})
	switch choice {
	case Yes:
		return true
	case YesAll:
		w.op.mu.Lock()
		w.op.permanentDeleteAll = true
		w.op.mu.Unlock()
		return true
	case SkipAll:
		w.op.mu.Lock()
		w.op.skipAll = true
		w.op.mu.Unlock()
		return false
	default:
		return false
	}
}

func (w *worker) moveFile(entry PlanEntry, target path.Path) error {
	if !w.confirmOverwriteIfNeeded(entry, target) {
		return &Failure{Kind: UserSkip, Path: entry.Source}
	}
	return w.fs.Rename(entry.Source, target)
}

func (w *worker) copyOrPackFile(entry PlanEntry, target path.Path) error {
	if !w.confirmOverwriteIfNeeded(entry, target) {
		return &Failure{Kind: UserSkip, Path: entry.Source}
	}

	var offset int64
	buf := make([]byte, CopyChunkSize)
	for {
		if w.op.Cancelled() {
			return &Failure{Kind: Interrupted, Path: entry.Source}
		}
		n, err := w.fs.CopyRange(entry.Source, target, offset, buf)
		if err != nil {
			return &Failure{Kind: IoError, Path: entry.Source, Err: err}
		}
		if n == 0 {
			return nil
		}
		offset += int64(n)
		w.op.Progress.update(w.bytesDone+offset, w.bytesTotal, entry.TargetName, false)
	}
}

// confirmOverwriteIfNeeded asks the overwrite dialog when target already
// exists, returning false if the entry should be skipped.
func (w *worker) confirmOverwriteIfNeeded(entry PlanEntry, target path.Path) bool {
	info, err := w.fs.Stat(target)
	if err != nil || !info.Exists {
		return true
	}

	w.op.mu.Lock()
	yesAll := w.op.yesAll
	w.op.mu.Unlock()
	if yesAll {
		return true
	}

	if info.ReadOnly && w.op.Options.ConfirmReadOnlyOverwrite {
		if !w.confirmSupplementalOverwrite(entry, target, false, true) {
			return false
		}
	}
	if (info.System || info.Hidden) && w.op.Options.ConfirmSystemHiddenOverwrite {
		if !w.confirmSupplementalOverwrite(entry, target, true, false) {
			return false
		}
	}

	choice := w.dialogs.ask(DialogRequest{
		Kind: DialogOverwrite,
		Op:   w.op,
		Path: target,
	})
	switch choice {
	case Yes:
		return true
	case YesAll:
		w.op.mu.Lock()
		w.op.yesAll = true
		w.op.mu.Unlock()
		return true
	case SkipAll:
		w.op.mu.Lock()
		w.op.skipAll = true
		w.op.mu.Unlock()
		return false
	default:
		return false
	}
}

func (w *worker) confirmSupplementalOverwrite(entry PlanEntry, target path.Path, systemOrHidden, readOnly bool) bool {
	choice := w.dialogs.ask(DialogRequest{
		Kind:           DialogOverwrite,
		Op:             w.op,
		Path:           target,
		SystemOrHidden: systemOrHidden,
		ReadOnly:       readOnly,
	})
	return choice == Yes || choice == YesAll
}

// consultErrorPolicy implements the error-policy state machine from
// spec.md §4.6: ignoreAll/skipAll short-circuit without a dialog; a
// NameTooLong failure raises DialogNameTooLong and all other kinds raise
// DialogError, blocking for a reply. A Focus reply skips the entry.
func (w *worker) consultErrorPolicy(failure *Failure) (choice Choice, cancel bool) {
	w.op.mu.Lock()
	skipAll := w.op.skipAll
	ignoreAll := w.op.ignoreAll[failure.Kind]
	w.op.mu.Unlock()

	if ignoreAll {
		return Ignore, false
	}
	if skipAll {
		return Skip, false
	}

	recoverable := failure.Kind == NotAccessible || failure.Kind == IoError
	kind := DialogError
	if failure.Kind == NameTooLong {
		kind = DialogNameTooLong
	}
	reply := w.dialogs.ask(DialogRequest{
		Kind:        kind,
		Op:          w.op,
		Path:        failure.Path,
		ErrKind:     failure.Kind,
		Recoverable: recoverable,
	})
	if reply == Cancel {
		return reply, true
	}
	return reply, false
}

func asFailure(err error) *Failure {
	if f, ok := err.(*Failure); ok {
		return f
	}
	return &Failure{Kind: IoError, Err: err}
}
