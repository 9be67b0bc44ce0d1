package confpatch

import (
	"slices"
	"strings"
)

// matches reports whether line starts with prefix once leading blanks are
// trimmed.
func matches(line, prefix string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), prefix)
}

// Find returns the index of the first line starting with prefix, or -1.
func Find(lines []string, prefix string) int {
	return slices.IndexFunc(lines, func(l string) bool { return matches(l, prefix) })
}

// PatchLines replaces the first line starting with prefix by replacement,
// or appends replacement when no line matches. Later matching lines are
// left as they are. The input slice is not modified.
func PatchLines(lines []string, prefix, replacement string) []string {
	out := slices.Clone(lines)
	if i := Find(out, prefix); i >= 0 {
		out[i] = replacement
		return out
	}
	return append(out, replacement)
}

// RemoveLine drops the first line starting with prefix.
// The input slice is not modified.
func RemoveLine(lines []string, prefix string) []string {
	out := slices.Clone(lines)
	if i := Find(out, prefix); i >= 0 {
		return slices.Delete(out, i, i+1)
	}
	return out
}

// splitLines splits file content into lines and reports the line ending in
// use, taken from the first terminator. Lines are split on "\n" with any
// trailing "\r" dropped, so mixed endings never merge lines. A trailing
// terminator does not produce an empty last line.
func splitLines(data []byte) ([]string, string) {
	text := string(data)
	eol := "\n"
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		eol = "\r\n"
	}
	if text == "" {
		return nil, eol
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, eol
}

// joinLines is the inverse of splitLines; the result always ends with eol.
func joinLines(lines []string, eol string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, eol) + eol)
}
