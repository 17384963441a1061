package panel

import (
	"sync"
	"time"

	"github.com/altap-salamander/core/pkg/listing"
	"github.com/altap-salamander/core/pkg/path"
	"github.com/altap-salamander/core/pkg/pluginfs"
)

// Info is filesystem metadata for a single path, as returned by
// FileSystem.Stat.
type Info struct {
	Exists   bool
	IsDir    bool
	Size     int64
	Modified time.Time
}

// FileSystem is the Disk/UNC/Archive-reading surface PanelEngine depends
// on. Archive paths are read through the same interface: ListDirectory on
// an Archive-kind path lists its interior, and Stat on the archive's
// container path reports the container file's own metadata.
type FileSystem interface {
	Stat(p path.Path) (Info, error)
	ListDirectory(p path.Path) (listing.Listing, error)
}

// Engine coordinates both panels against a shared FileSystem, plugin-FS
// registry, and archive-association table.
type Engine struct {
	FS            FileSystem
	Plugins       *pluginfs.Registry
	Associations  *path.ArchiveAssociations
	RescuePath    *path.Path
	FirstFixedDrive func() (path.Path, bool)

	mu               sync.Mutex
	rememberedDrives map[byte]string
}

// NewEngine creates an Engine. fs and plugins must be non-nil; the rest of
// the fields may be filled in or left at their zero values by the caller.
func NewEngine(fs FileSystem, plugins *pluginfs.Registry, associations *path.ArchiveAssociations) *Engine {
	return &Engine{
		FS:               fs,
		Plugins:          plugins,
		Associations:     associations,
		rememberedDrives: make(map[byte]string),
	}
}

// RememberDriveDirectory records the last current directory used on drive,
// for resolving a bare-drive-letter input later.
func (e *Engine) RememberDriveDirectory(drive byte, directory string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rememberedDrives[drive] = directory
}

// panelContext adapts a panel and engine into path.Context for Parse.
type panelContext struct {
	panel  *Panel
	engine *Engine
}

func (c panelContext) CurrentPath() (path.Path, bool) {
	return c.panel.Path, c.panel.hasPath
}

func (c panelContext) RememberedDriveDirectory(drive byte) (string, bool) {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	v, ok := c.engine.rememberedDrives[drive]
	return v, ok
}

func (c panelContext) Associations() *path.ArchiveAssociations {
	return c.engine.Associations
}
