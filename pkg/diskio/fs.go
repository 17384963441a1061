package diskio

import (
	"errors"
	"os"

	"github.com/altap-salamander/core/pkg/listing"
	"github.com/altap-salamander/core/pkg/panel"
	"github.com/altap-salamander/core/pkg/path"
)

// ErrNotDiskPath is returned for any path.Path whose Kind is not Disk or
// UNC; Archive paths are served by pkg/diskcache and PluginFS paths by
// pkg/pluginfs, never by this adapter.
var ErrNotDiskPath = errors.New("diskio: not a disk or UNC path")

func nativePath(p path.Path) (string, error) {
	switch p.Kind() {
	case path.Disk, path.UNC:
		return p.Format(), nil
	default:
		return "", ErrNotDiskPath
	}
}

// statRaw stats the native path, reporting a non-existent path as a zero,
// no-error result the way panel.FileSystem/operation.FileOps both expect
// ("does this path currently resolve to anything") rather than an error.
func statRaw(p path.Path) (os.FileInfo, bool, error) {
	native, err := nativePath(p)
	if err != nil {
		return nil, false, err
	}
	info, err := os.Stat(native)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return info, true, nil
}

func listEntries(p path.Path) ([]os.DirEntry, string, error) {
	native, err := nativePath(p)
	if err != nil {
		return nil, "", err
	}
	dirEntries, err := os.ReadDir(native)
	return dirEntries, native, err
}

// DiskFileSystem implements panel.FileSystem against the real OS
// filesystem for Disk/UNC paths, using os package primitives the way
// mutagen's pkg/filesystem wraps them, simplified to what PanelEngine
// actually needs: stat and directory listing. Archive and PluginFS paths
// are out of scope here; PanelEngine never routes them through this type.
type DiskFileSystem struct{}

// NewFileSystem returns the real disk-backed panel.FileSystem.
func NewFileSystem() DiskFileSystem { return DiskFileSystem{} }

// Stat implements panel.FileSystem.
func (DiskFileSystem) Stat(p path.Path) (panel.Info, error) {
	info, exists, err := statRaw(p)
	if err != nil || !exists {
		return panel.Info{}, err
	}
	return panel.Info{Exists: true, IsDir: info.IsDir(), Size: info.Size(), Modified: info.ModTime()}, nil
}

// ListDirectory implements panel.FileSystem.
func (DiskFileSystem) ListDirectory(p path.Path) (listing.Listing, error) {
	dirEntries, _, err := listEntries(p)
	if err != nil {
		return listing.Listing{}, err
	}
	entries := make([]listing.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}
		_, _, _, attrs := fileAttributes(info)
		entries = append(entries, listing.Entry{
			Name:        de.Name(),
			IsDir:       de.IsDir(),
			Size:        info.Size(),
			Modified:    info.ModTime(),
			HasSize:     !de.IsDir(),
			HasModified: true,
			Attrs:       attrs,
			IconIndex:   -1,
		})
	}
	return listing.Listing{Entries: entries}, nil
}
