// Package render decodes preview images and turns them into frames for the
// terminal and desktop front ends.
package render
