package main

import (
	"bytes"
	"strings"
)

// firstDiff locates the first line that differs between before and after.
// When two lines differ only in a trailing \r, the \r is spelled out so the
// change stays visible.
func firstDiff(before, after []byte) (line int, old, updated string, ok bool) {
	if bytes.Equal(before, after) {
		return 0, "", "", false
	}
	a := strings.Split(string(before), "\n")
	b := strings.Split(string(after), "\n")
	for i := 0; i < max(len(a), len(b)); i++ {
		var x, y string
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x == y && i < len(a) && i < len(b) {
			continue
		}
		if strings.TrimSuffix(x, "\r") == strings.TrimSuffix(y, "\r") && x != y {
			return i + 1, strings.ReplaceAll(x, "\r", `\r`), strings.ReplaceAll(y, "\r", `\r`), true
		}
		return i + 1, x, y, true
	}
	return 0, "", "", false
}
