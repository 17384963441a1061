package diskio

import (
	"io"
	"os"

	"github.com/altap-salamander/core/pkg/operation"
	"github.com/altap-salamander/core/pkg/path"
)

// DiskFileOps implements operation.FileOps against the real OS filesystem
// for Disk/UNC paths, driving the same byte-range copy loop
// OperationScheduler's worker expects (CopyChunkSize-sized reads so
// cancellation can be polled between calls).
type DiskFileOps struct{}

// NewFileOps returns the real disk-backed operation.FileOps.
func NewFileOps() DiskFileOps { return DiskFileOps{} }

// Stat implements operation.FileOps.
func (DiskFileOps) Stat(p path.Path) (operation.EntryInfo, error) {
	info, exists, err := statRaw(p)
	if err != nil || !exists {
		return operation.EntryInfo{}, err
	}
	readOnly, hidden, system, attrs := fileAttributes(info)
	return operation.EntryInfo{
		Exists:   true,
		IsDir:    info.IsDir(),
		Size:     info.Size(),
		Attrs:    attrs,
		ReadOnly: readOnly,
		Hidden:   hidden,
		System:   system,
		Modified: info.ModTime(),
	}, nil
}

// ListDirectory implements operation.FileOps, returning bare entry names
// as Plan's enumerator expects.
func (DiskFileOps) ListDirectory(p path.Path) ([]string, error) {
	dirEntries, _, err := listEntries(p)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(dirEntries))
	for i, de := range dirEntries {
		names[i] = de.Name()
	}
	return names, nil
}

// CopyRange implements operation.FileOps. offset 0 truncates/creates dst;
// any other offset appends at that position, matching the worker's
// chunked-copy contract in worker.go.
func (DiskFileOps) CopyRange(src, dst path.Path, offset int64, buf []byte) (int, error) {
	srcNative, err := nativePath(src)
	if err != nil {
		return 0, err
	}
	dstNative, err := nativePath(dst)
	if err != nil {
		return 0, err
	}

	in, err := os.Open(srcNative)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	if _, err := in.Seek(offset, io.SeekStart); err != nil {
		return 0, err
	}

	flags := os.O_WRONLY | os.O_CREATE
	if offset == 0 {
		flags |= os.O_TRUNC
	}
	out, err := os.OpenFile(dstNative, flags, 0644)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	if _, err := out.Seek(offset, io.SeekStart); err != nil {
		return 0, err
	}

	n, err := in.Read(buf)
	if n > 0 {
		if _, writeErr := out.Write(buf[:n]); writeErr != nil {
			return 0, writeErr
		}
	}
	if err == io.EOF {
		return n, nil
	}
	return n, err
}

// Rename implements operation.FileOps.
func (DiskFileOps) Rename(src, dst path.Path) error {
	srcNative, err := nativePath(src)
	if err != nil {
		return err
	}
	dstNative, err := nativePath(dst)
	if err != nil {
		return err
	}
	return os.Rename(srcNative, dstNative)
}

// Delete implements operation.FileOps. permanent bypasses the Recycle Bin;
// this adapter has no Recycle Bin integration (that is a GUI-shell
// concern, out of scope per spec.md's Non-goals), so both paths remove
// directly.
func (DiskFileOps) Delete(p path.Path, permanent bool) error {
	native, err := nativePath(p)
	if err != nil {
		return err
	}
	return os.RemoveAll(native)
}

// MakeDir implements operation.FileOps.
func (DiskFileOps) MakeDir(p path.Path) error {
	native, err := nativePath(p)
	if err != nil {
		return err
	}
	return os.MkdirAll(native, 0755)
}

// SetAttr implements operation.FileOps.
func (DiskFileOps) SetAttr(p path.Path, readOnly, hidden, system bool) error {
	native, err := nativePath(p)
	if err != nil {
		return err
	}
	return setFileAttributes(native, readOnly, hidden, system)
}

// ShortName implements operation.FileOps.
func (DiskFileOps) ShortName(p path.Path) (string, bool) {
	native, err := nativePath(p)
	if err != nil {
		return "", false
	}
	return shortName(native)
}
