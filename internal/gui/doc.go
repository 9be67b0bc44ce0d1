// Package gui provides the GTK4/libadwaita theme selector window.
//
// All widget access happens on the GTK main loop. Work done off the loop
// (frame rendering, watcher events) hands its result back with glib.IdleAdd.
package gui
