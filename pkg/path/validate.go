package path

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// invalidComponentChars are the characters forbidden in a single path
// component by Windows naming rules.
const invalidComponentChars = `*?\/<>|":`

// reservedDeviceNames are Windows reserved device names; a component is
// invalid if it equals one of these (case-insensitively), with or without
// a trailing extension (e.g. "NUL.txt" is still reserved).
var reservedDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// ValidateComponent reports whether s is a valid single path-segment name:
// non-empty, not composed entirely of dots and/or whitespace, free of
// SalIsValidFileNameComponent's forbidden characters, and not a reserved
// device name.
func ValidateComponent(s string) error {
	if s == "" {
		return ErrInvalidPath
	}
	if strings.ContainsAny(s, invalidComponentChars) {
		return ErrInvalidPath
	}
	if isAllDotsOrWhitespace(s) {
		return ErrInvalidPath
	}
	baseName := s
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		baseName = s[:idx]
	}
	if reservedDeviceNames[strings.ToUpper(baseName)] {
		return ErrInvalidPath
	}
	// Reject trailing dots/spaces, which Windows silently strips and which
	// would therefore make round-tripping (Format -> Parse) lossy.
	if s != strings.TrimRight(s, " .") {
		return ErrInvalidPath
	}
	if !norm.NFC.IsNormalString(s) {
		return ErrInvalidPath
	}
	return nil
}

func isAllDotsOrWhitespace(s string) bool {
	for _, r := range s {
		if r != '.' && r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// MakeValidComponent repairs s into the closest valid component: forbidden
// characters are replaced with "_", trailing dots and spaces are trimmed
// (leading ones are kept), an all-dots-or-empty result becomes "_", reserved device names
// gain a trailing "_", and the string is normalized to NFC.
func MakeValidComponent(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(invalidComponentChars, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	repaired := strings.TrimRight(b.String(), " .")

	if repaired == "" || isAllDotsOrWhitespace(repaired) {
		repaired = "_"
	}

	baseName := repaired
	if idx := strings.IndexByte(repaired, '.'); idx >= 0 {
		baseName = repaired[:idx]
	}
	if reservedDeviceNames[strings.ToUpper(baseName)] {
		repaired += "_"
	}

	return repaired
}
