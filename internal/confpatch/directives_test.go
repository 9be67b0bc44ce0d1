package confpatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/skinsel/internal/config"
	"github.com/jmylchreest/skinsel/internal/selection"
)

func TestDirectives_Lines(t *testing.T) {
	d := DefaultDirectives()

	assert.Equal(t, "include themes/alpha/theme.conf", d.IncludeLine("alpha"))
	assert.Equal(t, "banner themes/alpha/bg/one.png", d.BannerLine("alpha", "one.png"))

	d.IncludeFile = ""
	assert.Equal(t, "include themes/alpha", d.IncludeLine("alpha"))
}

func TestDirectivesFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Directives.IncludePrefix = "include skins/"
	cfg.Catalog.BackgroundDir = "banners"

	d := DirectivesFromConfig(cfg)

	assert.Equal(t, "include skins/", d.IncludePrefix)
	assert.Equal(t, "banners", d.BackgroundDir)
	assert.Equal(t, "banner themes/", d.BannerPrefix)
}

func TestDirectives_Patch(t *testing.T) {
	d := DefaultDirectives()
	base := []string{
		"timeout 20",
		"include themes/old/theme.conf",
		"banner themes/old/bg/x.png",
		"scanfor manual,external",
	}

	t.Run("with background", func(t *testing.T) {
		got := d.Patch(base, selection.Selection{Theme: "alpha", Background: "one.png"})
		want := []string{
			"timeout 20",
			"include themes/alpha/theme.conf",
			"banner themes/alpha/bg/one.png",
			"scanfor manual,external",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Patch() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("stale banner removed", func(t *testing.T) {
		got := d.Patch(base, selection.Selection{Theme: "beta"})
		want := []string{
			"timeout 20",
			"include themes/beta/theme.conf",
			"scanfor manual,external",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Patch() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		got := d.Patch(nil, selection.Selection{Theme: "alpha"})
		assert.Equal(t, []string{"include themes/alpha/theme.conf"}, got)
	})
}

func TestDirectives_Parse(t *testing.T) {
	d := DefaultDirectives()

	tests := []struct {
		name  string
		lines []string
		want  selection.Selection
	}{
		{
			name:  "theme and background",
			lines: []string{"  include themes/alpha/theme.conf", "banner themes/alpha/bg/one.png"},
			want:  selection.Selection{Theme: "alpha", Background: "one.png"},
		},
		{
			name:  "theme only",
			lines: []string{"include themes/beta/theme.conf"},
			want:  selection.Selection{Theme: "beta"},
		},
		{
			name:  "banner only",
			lines: []string{"banner themes/gamma/bg/two.png"},
			want:  selection.Selection{Theme: "gamma", Background: "two.png"},
		},
		{
			name:  "nothing",
			lines: []string{"timeout 5"},
			want:  selection.Selection{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Parse(tt.lines))
		})
	}
}
