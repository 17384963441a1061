package diskcache

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// status is the lifecycle state of a cache entry.
type status uint8

const (
	statusFresh status = iota
	statusOutOfDate
)

// entry is a single cached file.
type entry struct {
	fingerprint string
	path        string
	size        int64
	status      status
	locks       map[*LockHandle]bool
	sequence    uint64
}

func (e *entry) locked() bool { return len(e.locks) > 0 }

// Cache is a content-addressed, reference-counted store of files pulled
// from plugin file systems. All operations are serialized by a single
// mutex; lock handles are externally owned events so producers and
// consumers can wait on them without holding the cache lock.
type Cache struct {
	mu sync.Mutex

	root          string
	maxTotalBytes int64

	entries     map[string]*entry
	totalBytes  int64
	nextSeq     uint64
}

// New creates a cache rooted at root. maxTotalBytes is the eviction
// ceiling; 0 means unbounded.
func New(root string, maxTotalBytes int64) *Cache {
	return &Cache{
		root:          root,
		maxTotalBytes: maxTotalBytes,
		entries:       make(map[string]*entry),
	}
}

// fingerprintPath computes the on-disk location for a fingerprint. Per
// spec.md §4.3 a fingerprint is an opaque "fsname:userpart" string, not
// something already safe to use as a path component (it can contain
// slashes, colons, or anything else a plugin's user-visible path syntax
// allows), so the on-disk name is derived by hashing it, the same way the
// teacher's pathForStaging derives a staging name from an arbitrary
// logical path: sha1 the fingerprint, hex-encode the digest, and shard on
// its first two characters to keep any single directory from growing
// unbounded.
func (c *Cache) fingerprintPath(fingerprint string) (string, error) {
	if fingerprint == "" {
		return "", errors.New("fingerprint is empty")
	}
	digest := sha1.Sum([]byte(fingerprint))
	digestHex := hex.EncodeToString(digest[:])
	return filepath.Join(c.root, digestHex[:2], digestHex), nil
}

// Lookup returns the on-disk path of the entry for fingerprint, if one
// exists and is not out of date, and associates lockHandle with an
// incremented lock on that entry.
func (c *Cache) Lookup(fingerprint string, lockHandle *LockHandle) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[fingerprint]
	if !ok || e.status == statusOutOfDate {
		return "", false
	}
	if e.locks == nil {
		e.locks = make(map[*LockHandle]bool)
	}
	e.locks[lockHandle] = true
	return e.path, true
}

// PublishResult is the outcome of Publish.
type PublishResult struct {
	Published     bool
	AlreadyExisted bool
}

// Publish moves producerFile into the cache under fingerprint. The caller
// must not retain producerFile after this call returns, regardless of the
// result: on success it has been renamed away; on AlreadyExisted the caller
// is responsible for deleting it.
func (c *Cache) Publish(fingerprint, producerFile string, sizeInBytes int64) (PublishResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[fingerprint]; exists {
		return PublishResult{AlreadyExisted: true}, nil
	}

	destination, err := c.fingerprintPath(fingerprint)
	if err != nil {
		return PublishResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0700); err != nil {
		return PublishResult{}, errors.Wrap(err, "unable to create fingerprint directory")
	}
	if err := os.Rename(producerFile, destination); err != nil {
		return PublishResult{}, errors.Wrap(err, "unable to relocate published file")
	}

	c.nextSeq++
	c.entries[fingerprint] = &entry{
		fingerprint: fingerprint,
		path:        destination,
		size:        sizeInBytes,
		status:      statusFresh,
		sequence:    c.nextSeq,
	}
	c.totalBytes += sizeInBytes

	return PublishResult{Published: true}, nil
}

// Unlock signals lockHandle and sweeps: any entry whose lock set becomes
// empty as a result is reaped if out of date, and otherwise the oldest
// unlocked entries are reaped until the cache is back under its size
// ceiling.
func (c *Cache) Unlock(lockHandle *LockHandle) {
	lockHandle.Signal()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.locks[lockHandle] {
			delete(e.locks, lockHandle)
		}
	}

	c.sweepLocked()
}

// MarkOutOfDate transitions the entry for fingerprint, if any, to
// OutOfDate. Subsequent Lookup calls for it return none; consumers already
// holding a lock finish normally.
func (c *Cache) MarkOutOfDate(fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[fingerprint]
	if !ok {
		return
	}
	e.status = statusOutOfDate
	c.sweepLocked()
}

// MarkRootOutOfDate bulk-marks every entry whose fingerprint starts with
// prefix as out of date. Used when a plugin-FS instance closes and
// invalidates everything it published.
func (c *Cache) MarkRootOutOfDate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for fingerprint, e := range c.entries {
		if strings.HasPrefix(fingerprint, prefix) {
			e.status = statusOutOfDate
		}
	}
	c.sweepLocked()
}

// sweepLocked reaps unlocked out-of-date entries, then — if the cache
// still exceeds its size ceiling — reaps unlocked fresh entries
// oldest-first until it doesn't, or until nothing more can be reaped.
// Caller must hold c.mu.
func (c *Cache) sweepLocked() {
	for fp, e := range c.entries {
		if e.locked() {
			continue
		}
		if e.status == statusOutOfDate {
			c.removeLocked(fp, e)
		}
	}

	if c.maxTotalBytes <= 0 || c.totalBytes <= c.maxTotalBytes {
		return
	}

	var candidates []*entry
	for _, e := range c.entries {
		if !e.locked() {
			candidates = append(candidates, e)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].sequence < candidates[j].sequence
	})

	for _, e := range candidates {
		if c.totalBytes <= c.maxTotalBytes {
			break
		}
		c.removeLocked(e.fingerprint, e)
	}
}

func (c *Cache) removeLocked(fingerprint string, e *entry) {
	os.Remove(e.path)
	c.totalBytes -= e.size
	delete(c.entries, fingerprint)
}

// PurgeOrphanWorkspace removes any file under the cache root that does not
// correspond to a known entry. Intended to run once, at first-instance
// startup, as crash recovery against files left behind by a producer that
// died mid-Publish. It also hardens the workspace directory's permissions
// to the current user.
func (c *Cache) PurgeOrphanWorkspace() error {
	if err := os.MkdirAll(c.root, 0700); err != nil {
		return errors.Wrap(err, "unable to create cache root")
	}
	if err := hardenWorkspace(c.root); err != nil {
		return errors.Wrap(err, "unable to harden cache workspace permissions")
	}

	c.mu.Lock()
	known := make(map[string]bool, len(c.entries))
	for _, e := range c.entries {
		known[e.path] = true
	}
	c.mu.Unlock()

	return filepath.Walk(c.root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if known[p] {
			return nil
		}
		return os.Remove(p)
	})
}

// Stats is a read-only snapshot of cache occupancy, supplementing spec.md
// with the usage query the plugin SDK exposes.
type Stats struct {
	EntryCount  int
	TotalBytes  int64
	OutOfDate   int
	LockedCount int
}

// Stats reports current cache occupancy.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{EntryCount: len(c.entries), TotalBytes: c.totalBytes}
	for _, e := range c.entries {
		if e.status == statusOutOfDate {
			s.OutOfDate++
		}
		if e.locked() {
			s.LockedCount++
		}
	}
	return s
}
