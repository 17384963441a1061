package path

import "strings"

// splitBaseExt splits s on its last '.', returning the base and extension
// (without the dot) and whether a dot was present at all.
func splitBaseExt(s string) (base, ext string, hasDot bool) {
	idx := strings.LastIndexByte(s, '.')
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

// applyMaskPart composes one half (base or extension) of a target name: a
// mask '*' copies the remainder of the source characters verbatim and
// stops, a mask '?' copies a single source character if one remains (and
// contributes nothing otherwise), and any other mask character is a
// literal that consumes one source character if available.
func applyMaskPart(namePart, maskPart string) string {
	nameRunes := []rune(namePart)
	var result []rune
	ni := 0
	for _, mc := range maskPart {
		switch mc {
		case '*':
			result = append(result, nameRunes[ni:]...)
			ni = len(nameRunes)
		case '?':
			if ni < len(nameRunes) {
				result = append(result, nameRunes[ni])
				ni++
			}
		default:
			result = append(result, mc)
			if ni < len(nameRunes) {
				ni++
			}
		}
	}
	return string(result)
}

// MaskApply composes a target name from a source name and a mask, in the
// style of a rename-with-mask operation: MaskApply(name, "*.*") == name.
func MaskApply(name, mask string) string {
	nameBase, nameExt, _ := splitBaseExt(name)
	maskBase, maskExt, _ := splitBaseExt(mask)

	resultBase := applyMaskPart(nameBase, maskBase)
	resultExt := applyMaskPart(nameExt, maskExt)

	if resultExt == "" {
		return resultBase
	}
	return resultBase + "." + resultExt
}

func isDigitRune(r rune) bool {
	return r >= '0' && r <= '9'
}

// singleMaskMatch matches name against a single (non-grouped) mask using
// the classic wildcard backtracking algorithm: '?' matches exactly one
// character, '*' matches any run of characters (including none), and, when
// extended is true, '#' matches exactly one digit. Matching is
// case-insensitive.
func singleMaskMatch(name, mask string, extended bool) bool {
	nameR := []rune(strings.ToLower(name))
	maskR := []rune(strings.ToLower(mask))

	ni, mi := 0, 0
	starIdx, matchFrom := -1, 0

	for ni < len(nameR) {
		switch {
		case mi < len(maskR) && maskR[mi] == '?':
			ni++
			mi++
		case mi < len(maskR) && extended && maskR[mi] == '#' && isDigitRune(nameR[ni]):
			ni++
			mi++
		case mi < len(maskR) && maskR[mi] != '*' && maskR[mi] == nameR[ni]:
			ni++
			mi++
		case mi < len(maskR) && maskR[mi] == '*':
			starIdx = mi
			matchFrom = ni
			mi++
		case starIdx != -1:
			mi = starIdx + 1
			matchFrom++
			ni = matchFrom
		default:
			return false
		}
	}

	for mi < len(maskR) && maskR[mi] == '*' {
		mi++
	}
	return mi == len(maskR)
}

// splitMaskTokens splits a mask sub-group string on unescaped ';'
// separators; a literal semicolon is written as ";;".
func splitMaskTokens(s string) []string {
	var tokens []string
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			if i+1 < len(s) && s[i+1] == ';' {
				b.WriteByte(';')
				i++
				continue
			}
			tokens = append(tokens, b.String())
			b.Reset()
			continue
		}
		b.WriteByte(s[i])
	}
	tokens = append(tokens, b.String())

	filtered := tokens[:0]
	for _, t := range tokens {
		if t != "" {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// splitMaskGroup divides a mask-group string on its first unescaped '|'
// into the positive and inverse (negative) token lists.
func splitMaskGroup(group string) (positive, negative []string) {
	if idx := strings.IndexByte(group, '|'); idx >= 0 {
		return splitMaskTokens(group[:idx]), splitMaskTokens(group[idx+1:])
	}
	return splitMaskTokens(group), nil
}

// MaskMatch reports whether name matches the mask group: name must match at
// least one positive mask and none of the inverse (post-'|') masks. Pass
// extended to enable '#' digit-wildcard matching.
func MaskMatch(name, maskGroup string, extended bool) bool {
	positive, negative := splitMaskGroup(maskGroup)

	matched := false
	for _, m := range positive {
		if singleMaskMatch(name, m, extended) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	for _, m := range negative {
		if singleMaskMatch(name, m, extended) {
			return false
		}
	}
	return true
}
