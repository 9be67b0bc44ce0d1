// Package selection holds the navigation state of the theme browser.
//
// State is a value: every transform returns a new State and leaves the
// receiver untouched, so front ends can keep the previous value around and
// roll back when applying a selection fails.
package selection
