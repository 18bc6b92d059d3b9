package source

import (
	"bytes"
	"path/filepath"
)

// normalizeNewlines rewrites "\r\n" and lone "\r" to "\n".
func normalizeNewlines(content []byte) (out []byte, hadCRLF, hadCR bool) {
	if !bytes.ContainsRune(content, '\r') {
		return content, false, false
	}

	out = make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		if content[i] != '\r' {
			out = append(out, content[i])
			continue
		}
		if i+1 < len(content) && content[i+1] == '\n' {
			hadCRLF = true
			i++
		} else {
			hadCR = true
		}
		out = append(out, '\n')
	}
	return out, hadCRLF, hadCR
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- bounded by Add's safecast check
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// binary search for the largest lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := lo // number of newlines before off
	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1} // #nosec G115
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
