package path

import "strings"

// Context supplies the ambient information Parse needs to resolve relative
// input: the panel's current path (if any), the engine's remembered
// per-drive current directory, and the archive-association table.
type Context interface {
	// CurrentPath returns the context's current path and true, or the zero
	// Path and false if there is none (e.g. a freshly created panel).
	CurrentPath() (Path, bool)
	// RememberedDriveDirectory returns the remembered current directory
	// tail for the given drive letter (uppercase 'A'-'Z'), if any.
	RememberedDriveDirectory(drive byte) (string, bool)
	// Associations returns the archive-extension table to use when
	// recognizing the Disk/UNC -> Archive transition. May be nil.
	Associations() *ArchiveAssociations
}

// Parse accepts user input — absolute or relative, any variant — and
// resolves it to a Path. See spec §4.1 for the full resolution rules.
func Parse(input string, ctx Context) (Path, error) {
	if input == "" {
		if ctx != nil {
			if cur, ok := ctx.CurrentPath(); ok {
				return cur, nil
			}
		}
		return Path{}, ErrIncompletePath
	}

	if fsName, userPart, ok := splitPluginFS(input); ok {
		return finishPluginFS(fsName, userPart)
	}

	normalized := normalizeSeparators(input)

	var kind Kind
	var root, server, share, rawTail string

	switch {
	case isUNCPrefix(normalized):
		var tail string
		var err error
		server, share, tail, err = splitUNC(normalized)
		if err != nil {
			return Path{}, err
		}
		kind = UNC
		rawTail = tail
	case isDriveAbsolute(normalized):
		root = strings.ToUpper(normalized[:1]) + `:\`
		rawTail = strings.TrimPrefix(normalized[2:], `\`)
		kind = Disk
	case isBareDrive(normalized):
		drive := byte(normalized[0])
		if drive >= 'a' && drive <= 'z' {
			drive -= 'a' - 'A'
		}
		root = string(drive) + `:\`
		kind = Disk
		if ctx != nil {
			if remembered, ok := ctx.RememberedDriveDirectory(drive); ok {
				rawTail = remembered
			}
		}
	default:
		// Relative input: resolve against context.
		if ctx == nil {
			return Path{}, ErrIncompletePath
		}
		cur, ok := ctx.CurrentPath()
		if !ok {
			return Path{}, ErrIncompletePath
		}
		switch cur.Kind() {
		case Disk:
			root, rawTail = cur.root, joinRelative(cur.tail, normalized)
			kind = Disk
		case UNC:
			server, share, rawTail = cur.server, cur.share, joinRelative(cur.tail, normalized)
			kind = UNC
		case Archive:
			containerDir, _, err := cutLastSegmentDiskOrUNC(*cur.container)
			if err != nil {
				return Path{}, ErrInvalidPath
			}
			switch containerDir.Kind() {
			case Disk:
				root, rawTail = containerDir.root, joinRelative(containerDir.tail, normalized)
				kind = Disk
			case UNC:
				server, share, rawTail = containerDir.server, containerDir.share, joinRelative(containerDir.tail, normalized)
				kind = UNC
			}
		case PluginFS:
			return Path{}, ErrIncompletePath
		}
	}

	segments, err := resolveSegments(rawTail)
	if err != nil {
		return Path{}, err
	}

	var associations *ArchiveAssociations
	if ctx != nil {
		associations = ctx.Associations()
	}

	var result Path
	if splitAt, ok := classifyArchiveTransition(segments, associations); ok {
		containerTail := joinTail(segments[:splitAt+1])
		interior := joinTail(segments[splitAt+1:])
		var container Path
		if kind == Disk {
			container = NewDisk(root, containerTail)
		} else {
			container = NewUNC(server, share, containerTail)
		}
		result = NewArchive(container, interior)
	} else if kind == Disk {
		result = NewDisk(root, joinTail(segments))
	} else {
		result = NewUNC(server, share, joinTail(segments))
	}

	if len(result.Format()) > MaxPathLength {
		return Path{}, ErrNameTooLong
	}

	return result, nil
}

// ParseDriveShorthand supplements Parse for the command-line front door
// (spec SPEC_FULL.md §4.1): a bare drive letter with no colon, such as "c",
// is treated as "c:". It is not used by panel input, only by -L/-R/-A
// command-line arguments.
func ParseDriveShorthand(input string, ctx Context) (Path, error) {
	if len(input) == 1 && isAlpha(input[0]) {
		return Parse(input+":", ctx)
	}
	return Parse(input, ctx)
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func normalizeSeparators(input string) string {
	replaced := strings.ReplaceAll(input, "/", `\`)
	// Collapse runs of separators, except the leading "\\" of a UNC path.
	var b strings.Builder
	leadingUNC := strings.HasPrefix(replaced, `\\`)
	if leadingUNC {
		b.WriteString(`\\`)
		replaced = replaced[2:]
	}
	var lastWasSep bool
	for i := 0; i < len(replaced); i++ {
		c := replaced[i]
		if c == '\\' {
			if lastWasSep {
				continue
			}
			lastWasSep = true
		} else {
			lastWasSep = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isUNCPrefix(s string) bool {
	return strings.HasPrefix(s, `\\`) && len(s) > 2
}

func isDriveAbsolute(s string) bool {
	return len(s) >= 3 && isAlpha(s[0]) && s[1] == ':' && s[2] == '\\'
}

func isBareDrive(s string) bool {
	return len(s) == 2 && isAlpha(s[0]) && s[1] == ':'
}

// splitPluginFS recognizes an absolute PluginFS input: an identifier more
// than one character long, followed by a colon. A single-character prefix
// followed by a colon is always a drive letter, never a plugin name, since
// Windows drive letters are exactly one character.
func splitPluginFS(input string) (fsName, userPart string, ok bool) {
	if strings.HasPrefix(input, `\\`) || strings.HasPrefix(input, "/") {
		return "", "", false
	}
	idx := strings.IndexByte(input, ':')
	if idx <= 1 {
		return "", "", false
	}
	prefix := input[:idx]
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		if !(isAlpha(c) || (c >= '0' && c <= '9') || c == '_' || c == '-' || c == '+') {
			return "", "", false
		}
	}
	return prefix, input[idx+1:], true
}

func finishPluginFS(fsName, userPart string) (Path, error) {
	if fsName == "" {
		return Path{}, ErrInvalidPath
	}
	return NewPluginFS(fsName, userPart), nil
}

// splitUNC splits a normalized "\\server\share\tail" input into its parts.
func splitUNC(s string) (server, share, tail string, err error) {
	rest := s[2:] // strip leading "\\"
	rest = strings.TrimSuffix(rest, `\`)
	parts := strings.SplitN(rest, `\`, 3)
	if len(parts) < 2 || parts[1] == "" {
		return "", "", "", ErrShareNameMissing
	}
	server = parts[0]
	share = parts[1]
	if len(parts) == 3 {
		tail = parts[2]
	}
	return server, share, tail, nil
}

// joinRelative joins a base tail and a relative remainder (which may itself
// begin with "." or ".." segments) into a single raw tail for segment
// resolution.
func joinRelative(baseTail, relative string) string {
	if baseTail == "" {
		return relative
	}
	return baseTail + `\` + relative
}

// resolveSegments splits a raw tail into validated segments, collapsing "."
// and resolving ".." against the accumulated stack. An over-pop past the
// root yields ErrPathIsInvalid.
func resolveSegments(rawTail string) ([]string, error) {
	if rawTail == "" {
		return nil, nil
	}
	var stack []string
	for _, segment := range strings.Split(rawTail, `\`) {
		switch segment {
		case "", ".":
			continue
		case "..":
			if len(stack) == 0 {
				return nil, ErrPathIsInvalid
			}
			stack = stack[:len(stack)-1]
		default:
			if err := ValidateComponent(segment); err != nil {
				return nil, ErrInvalidPath
			}
			stack = append(stack, segment)
		}
	}
	return stack, nil
}

// cutLastSegmentDiskOrUNC is a narrow helper used only for resolving
// relative input against an Archive context; it simply calls the public
// CutLastSegment, which enforces the NoShorter error for roots.
func cutLastSegmentDiskOrUNC(p Path) (Path, string, error) {
	return CutLastSegment(p)
}
