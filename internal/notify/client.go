package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/skinsel/internal/selection"
)

// Client sends notifications to the session notification server.
type Client struct {
	obj     dbus.BusObject
	timeout time.Duration
	logger  *slog.Logger
}

// Dial connects to the session bus. timeout is the notification expiry.
func Dial(timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &Client{
		obj:     conn.Object(DBusBusName, dbus.ObjectPath(DBusPath)),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Send issues a Notify call and returns the server-assigned ID.
func (c *Client) Send(ctx context.Context, req Request) (uint32, error) {
	var id uint32
	call := c.obj.CallWithContext(ctx, DBusInterface+".Notify", 0, req.Args()...)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify reply: %w", err)
	}

	c.logger.Debug("notification sent", "id", id, "summary", req.Summary)
	return id, nil
}

// ThemeApplied announces sel.
func (c *Client) ThemeApplied(ctx context.Context, sel selection.Selection) error {
	_, err := c.Send(ctx, ThemeApplied(sel, c.timeout))
	return err
}
