// Package app wires the catalog, selection state and config patcher into
// the controller shared by the terminal and desktop front ends.
package app
