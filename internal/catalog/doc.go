// Package catalog lists the theme folders under a themes root, resolves the
// preview image for a theme, and removes themes from disk.
package catalog
