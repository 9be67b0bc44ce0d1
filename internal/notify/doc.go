// Package notify sends org.freedesktop.Notifications desktop notifications
// over the session bus.
package notify
