package util

import (
	"strings"
	"unicode/utf8"
)

func isASCII(r rune) bool {
	return r < utf8.RuneSelf
}

// AddSpace Adds a space, if not present, between ASCII Characters and Non-ASCII Characters.
// For example, "中文english" -> "中文 english"
func AddSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 && isASCII(prev) != isASCII(r) && prev != ' ' && r != ' ' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
