// Package nameutil provides the case-insensitive comparison and short-name
// trimming helpers the FAT12 core needs - the Go-native equivalent of the
// byte/string utilities module spec.md treats as an external collaborator.
package nameutil

import (
	"strings"

	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// EqualFold reports whether a and b are the same path component under
// case-insensitive comparison. FAT12 path components are ASCII short or
// VFAT long names; golang.org/x/text/cases' Unicode-aware folding is used
// rather than strings.EqualFold so that any OEM short-name byte >= 0x80
// compares sensibly too - for the ASCII-only names spec.md actually
// exercises, the result is identical to strings.EqualFold.
func EqualFold(a, b string) bool {
	if len(a) == len(b) && strings.EqualFold(a, b) {
		return true
	}
	return fold.String(a) == fold.String(b)
}

// HasPrefixFold reports whether s begins with prefix under the same
// case-insensitive comparison as EqualFold. Used by tab-completion.
func HasPrefixFold(s, prefix string) bool {
	if prefix == "" {
		return true
	}
	folded := fold.String(s)
	foldedPrefix := fold.String(prefix)
	return strings.HasPrefix(folded, foldedPrefix)
}

// TrimShort trims trailing spaces from an 8.3 short-name field.
func TrimShort(field string) string {
	return strings.TrimRight(field, " ")
}
