package config

import (
	"strconv"
	"strings"
)

// parseVersion splits a dotted version string ("3.0", "2.52") into its
// numeric components for ordering comparisons. Unparseable components are
// treated as 0, so malformed version subkeys sort lowest rather than
// aborting the probe.
func parseVersion(v string) []int {
	parts := strings.Split(v, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = 0
		}
		nums[i] = n
	}
	return nums
}

// compareVersions returns -1, 0, or 1 as a is less than, equal to, or
// greater than b, comparing component-wise and treating a missing
// component as 0 (so "3" == "3.0").
func compareVersions(a, b string) int {
	pa, pb := parseVersion(a), parseVersion(b)
	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		var va, vb int
		if i < len(pa) {
			va = pa[i]
		}
		if i < len(pb) {
			vb = pb[i]
		}
		if va != vb {
			if va < vb {
				return -1
			}
			return 1
		}
	}
	return 0
}
