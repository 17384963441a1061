package path

import "github.com/pkg/errors"

// Sentinel errors returned by PathKit operations. Callers should compare
// with errors.Is, since wrapping (via github.com/pkg/errors) is common at
// call sites that add positional context.
var (
	// ErrIncompletePath indicates empty input with no usable context, or a
	// relative PluginFS input (always rejected per spec §9's Open Question
	// resolution).
	ErrIncompletePath = errors.New("incomplete path")
	// ErrInvalidPath indicates a structural parse failure with no shortened
	// alternative available.
	ErrInvalidPath = errors.New("invalid path")
	// ErrPathIsInvalid indicates a ".." that pops past the root.
	ErrPathIsInvalid = errors.New("path is invalid")
	// ErrShareNameMissing indicates a UNC input with no share component.
	ErrShareNameMissing = errors.New("share name missing")
	// ErrNoShorter indicates CutLastSegment was called on a path that
	// cannot be shortened further (a root).
	ErrNoShorter = errors.New("no shorter path available")
	// ErrNameTooLong indicates a composed path exceeded the platform
	// maximum path length.
	ErrNameTooLong = errors.New("name too long")
	// ErrNotAnArchive indicates a path resolved to a file whose extension
	// is not registered as an archive format.
	ErrNotAnArchive = errors.New("not an archive")
)

// MaxPathLength is the platform path-length limit PathKit enforces when
// composing paths (see spec §8 boundary cases). It intentionally matches
// the long-path-aware Windows limit rather than MAX_PATH, since the engine
// is expected to run with long-path support enabled.
const MaxPathLength = 32767
