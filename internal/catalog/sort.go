package catalog

import (
	"sort"
	"strings"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByName     SortField = "name"
	SortByModified SortField = "modified"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions returns default sort options (alphabetical).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByName,
		Order: SortAsc,
	}
}

// Sort sorts themes in place based on the provided options.
// Ties are broken by name so the order is stable across listings.
func Sort(themes []Theme, opts SortOptions) {
	if len(themes) == 0 {
		return
	}

	sort.SliceStable(themes, func(i, j int) bool {
		a, b := themes[i], themes[j]
		var less bool

		switch opts.Field {
		case SortByModified:
			if a.ModTime.Equal(b.ModTime) {
				less = nameLess(a.Name, b.Name)
			} else {
				less = a.ModTime.Before(b.ModTime)
			}
		default:
			less = nameLess(a.Name, b.Name)
		}

		if opts.Order == SortDesc {
			return !less
		}
		return less
	})
}

func nameLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return a < b
	}
	return la < lb
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "modified", "mtime", "time", "m":
		return SortByModified
	default:
		return SortByName
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "d":
		return SortDesc
	default:
		return SortAsc
	}
}
