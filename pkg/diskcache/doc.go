// Package diskcache implements DiskCache: a content-addressed store for
// files pulled from plugin file systems, so viewers and repeated bulk
// operations can reuse them without re-fetching. Entries are published by
// atomic rename from a producer-owned temporary file, kept alive by a
// reference count of externally owned lock handles, and reaped once
// unlocked if out of date or once the cache exceeds its configured size
// ceiling.
package diskcache
