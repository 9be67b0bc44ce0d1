package catalog

import (
	"strconv"
	"strings"
)

// LookupByName finds a theme by exact name.
// Returns -1 if not found.
func LookupByName(themes []Theme, name string) int {
	for i := range themes {
		if themes[i].Name == name {
			return i
		}
	}
	return -1
}

// LookupByIndex finds a theme by its index (1-based for user-friendliness).
// Returns -1 if index is out of bounds.
func LookupByIndex(themes []Theme, index int) int {
	idx := index - 1
	if idx < 0 || idx >= len(themes) {
		return -1
	}
	return idx
}

// Lookup resolves a user argument that is either a 1-based index or a name.
// Names win over indexes so a theme called "2" stays reachable.
func Lookup(themes []Theme, arg string) int {
	if i := LookupByName(themes, arg); i >= 0 {
		return i
	}
	if n, err := strconv.Atoi(arg); err == nil {
		return LookupByIndex(themes, n)
	}
	return -1
}

// Search returns the index of the first theme at or after start whose name
// contains term (case-insensitive), wrapping around. Returns -1 if none match.
func Search(themes []Theme, term string, start int) int {
	if len(themes) == 0 {
		return -1
	}
	term = strings.ToLower(term)
	if start < 0 || start >= len(themes) {
		start = 0
	}
	for off := 0; off < len(themes); off++ {
		i := (start + off) % len(themes)
		if strings.Contains(strings.ToLower(themes[i].Name), term) {
			return i
		}
	}
	return -1
}
