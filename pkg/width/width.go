// ABOUTME: Display width of strings in terminal cells, grapheme-aware
// ABOUTME: Truncate fits a line to a column budget before it is written to the terminal

package width

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Of returns the number of terminal cells s occupies. Wide East Asian
// characters and emoji count as two; combining sequences count once.
func Of(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += clusterWidth(cluster)
	}
	return w
}

// Truncate shortens s so that it fits in cols cells, ending it with tail
// when anything was cut. Clusters are never split.
func Truncate(s string, cols int, tail string) string {
	if cols <= 0 {
		return ""
	}
	if Of(s) <= cols {
		return s
	}

	tw := Of(tail)
	if tw > cols {
		tail, tw = "", 0
	}
	budget := cols - tw

	var b strings.Builder
	used := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w := clusterWidth(cluster)
		if used+w > budget {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString(tail)
	return b.String()
}

// isPlainASCII reports whether s holds only printable ASCII.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

func clusterWidth(cluster string) int {
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
