// Package volume implements VolumeResolver: answers to volume-identity
// questions (subst resolution, reparse-point walking, same-volume queries)
// without leaking OS primitives to callers. The actual Windows syscalls are
// isolated behind the Syscalls interface so the resolution logic — the
// 50-hop cycle guard, the opaque-reparse truncation rule, the
// certain/uncertain same-volume answer — is testable on any platform.
package volume
