package notify

import (
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/skinsel/internal/selection"
)

func TestRequest_ArgsOrder(t *testing.T) {
	req := Request{AppName: "app", ReplacesID: 7, AppIcon: "icon", Summary: "s", Body: "b", ExpireTimeout: 5}

	args := req.Args()

	require.Len(t, args, 8)
	assert.Equal(t, "app", args[0])
	assert.Equal(t, uint32(7), args[1])
	assert.Equal(t, "icon", args[2])
	assert.Equal(t, "s", args[3])
	assert.Equal(t, "b", args[4])
	assert.Equal(t, []string{}, args[5], "nil actions are sent as an empty array")
	assert.Equal(t, map[string]dbus.Variant{}, args[6])
	assert.Equal(t, int32(5), args[7])
}

func TestThemeApplied(t *testing.T) {
	tests := []struct {
		name    string
		sel     selection.Selection
		timeout time.Duration
		body    string
		expire  int32
	}{
		{"theme only", selection.Selection{Theme: "alpha"}, 0, "alpha", -1},
		{"with background", selection.Selection{Theme: "alpha", Background: "one.png"}, 4 * time.Second, "alpha (one.png)", 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ThemeApplied(tt.sel, tt.timeout)

			assert.Equal(t, AppName, req.AppName)
			assert.Equal(t, tt.body, req.Body)
			assert.Equal(t, tt.expire, req.ExpireTimeout)
			assert.NotEmpty(t, req.Summary)

			urgency, ok := req.Hints["urgency"].Value().(byte)
			require.True(t, ok)
			assert.Equal(t, UrgencyLow, urgency)
		})
	}
}
