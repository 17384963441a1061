package operation

import (
	"time"

	"github.com/altap-salamander/core/pkg/path"
)

// EntryInfo describes a single enumerated source item.
type EntryInfo struct {
	Exists   bool
	IsDir    bool
	Size     int64
	Attrs    uint32
	ReadOnly bool
	System   bool
	Hidden   bool
	Modified time.Time
}

// FileOps is the filesystem/plugin-FS primitive surface a worker drives.
// The production implementation, pkg/diskio's DiskFileOps, serves Disk and
// UNC paths only and rejects other kinds; tests substitute an in-memory fake.
type FileOps interface {
	Stat(p path.Path) (EntryInfo, error)
	ListDirectory(p path.Path) ([]string, error)

	// CopyRange copies up to len(buf) bytes of src starting at offset into
	// dst (created if absent), returning the number of bytes written. The
	// worker calls this repeatedly in ~64 KiB chunks so cancellation can be
	// polled between calls; offset 0 truncates/creates dst.
	CopyRange(src, dst path.Path, offset int64, buf []byte) (int, error)
	Rename(src, dst path.Path) error
	Delete(p path.Path, permanent bool) error
	MakeDir(p path.Path) error
	SetAttr(p path.Path, readOnly, hidden, system bool) error

	// ShortName returns the 8.3 short name alternative for p, if the
	// filesystem exposes one.
	ShortName(p path.Path) (string, bool)
}

// CopyChunkSize is the byte-range granularity at which CopyRange is driven
// and cancellation is polled, per spec.md §4.6.
const CopyChunkSize = 64 * 1024
