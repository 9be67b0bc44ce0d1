// Package confpatch rewrites the theme directives of a rEFInd config file.
//
// Only two single-line directives are owned: the include line naming the
// theme and the banner line naming its background. Every other line is kept
// verbatim.
package confpatch
