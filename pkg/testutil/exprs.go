package testutil

import (
	"sort"
	"strings"

	"github.com/leftmike/algebra/pkg/expr"
)

func FormatList(l expr.List, sep string) string {
	var buf strings.Builder
	for edx, e := range l {
		if edx > 0 && sep != "" {
			buf.WriteString(sep)
		}
		buf.WriteString(e.String())
	}

	return buf.String()
}

// ListsEqual compares two lists by their formatted text; unordered sorts both
// lists in place first.
func ListsEqual(l1, l2 expr.List, unordered bool) bool {
	if len(l1) != len(l2) {
		return false
	}

	if unordered {
		sort.Slice(l1,
			func(i, j int) bool {
				return l1[i].String() < l1[j].String()
			})
		sort.Slice(l2,
			func(i, j int) bool {
				return l2[i].String() < l2[j].String()
			})
	}

	return FormatList(l1, "\n") == FormatList(l2, "\n")
}
