package notify

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/skinsel/internal/selection"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the bus name of the notification server.
	DBusBusName = "org.freedesktop.Notifications"
)

// Urgency levels matching the freedesktop notification spec.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// AppName is sent as the notifying application.
const AppName = "skinsel"

// Request holds the parameters of a Notify call.
type Request struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// Args returns the Notify arguments in wire order: susssasa{sv}i.
func (r Request) Args() []any {
	actions := r.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := r.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}
	return []any{
		r.AppName,
		r.ReplacesID,
		r.AppIcon,
		r.Summary,
		r.Body,
		actions,
		hints,
		r.ExpireTimeout,
	}
}

// ThemeApplied builds the notification sent after a selection is written.
// A zero timeout leaves expiry to the server.
func ThemeApplied(sel selection.Selection, timeout time.Duration) Request {
	body := sel.Theme
	if sel.HasBackground() {
		body = fmt.Sprintf("%s (%s)", sel.Theme, sel.Background)
	}

	expire := int32(-1)
	if timeout > 0 {
		expire = int32(timeout.Milliseconds())
	}

	return Request{
		AppName: AppName,
		AppIcon: "preferences-desktop-theme",
		Summary: "Boot theme applied",
		Body:    body,
		Actions: []string{},
		Hints: map[string]dbus.Variant{
			"urgency":       dbus.MakeVariant(UrgencyLow),
			"category":      dbus.MakeVariant("system"),
			"desktop-entry": dbus.MakeVariant(AppName),
		},
		ExpireTimeout: expire,
	}
}
