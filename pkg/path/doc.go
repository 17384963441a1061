// Package path implements PathKit: a stateless abstraction over the path
// kinds the engine navigates — local/mapped disks, UNC shares, archives, and
// plugin-owned virtual file systems. Operations here never touch the
// filesystem except SplitForOperation, which probes for existence through an
// injected Prober.
package path
