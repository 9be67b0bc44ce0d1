package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/skinsel/internal/catalog"
)

func themes(names ...string) []catalog.Theme {
	out := make([]catalog.Theme, len(names))
	for i, n := range names {
		out[i] = catalog.Theme{Name: n, Dir: "/themes/" + n}
	}
	return out
}

// fakeBackgrounds returns a loader backed by a map and counts its calls.
func fakeBackgrounds(sets map[string][]string, calls *int) BackgroundLoader {
	return func(t catalog.Theme) []string {
		if calls != nil {
			*calls++
		}
		return sets[t.Name]
	}
}

func activeName(t *testing.T, s State) string {
	t.Helper()
	th, ok := s.Theme()
	require.True(t, ok)
	return th.Name
}

func TestNew_StartsAtFirstTheme(t *testing.T) {
	s := New(themes("alpha", "beta"), fakeBackgrounds(map[string][]string{
		"alpha": {"/a/1.png", "/a/2.png"},
	}, nil))

	assert.Equal(t, 0, s.ThemeIndex())
	assert.Equal(t, "alpha", activeName(t, s))
	assert.Equal(t, 0, s.BackgroundIndex())
	assert.Len(t, s.Backgrounds(), 2)
}

func TestNextTheme_WrapsAtEnd(t *testing.T) {
	s := New(themes("alpha", "beta", "gamma"), nil).Select(2)

	s = s.NextTheme()

	assert.Equal(t, 0, s.ThemeIndex())
	assert.Equal(t, "alpha", activeName(t, s))
}

func TestPrevTheme_WrapsAtStart(t *testing.T) {
	s := New(themes("alpha", "beta", "gamma"), nil)

	s = s.PrevTheme()

	assert.Equal(t, 2, s.ThemeIndex())
}

func TestNextThenPrev_Restores(t *testing.T) {
	s := New(themes("alpha", "beta", "gamma"), nil)

	for i := 0; i < s.Len(); i++ {
		start := s.Select(i)
		assert.Equal(t, i, start.NextTheme().PrevTheme().ThemeIndex())
		assert.Equal(t, i, start.PrevTheme().NextTheme().ThemeIndex())
	}
}

func TestTransforms_DoNotMutateReceiver(t *testing.T) {
	s := New(themes("alpha", "beta"), nil)

	_ = s.NextTheme()

	assert.Equal(t, 0, s.ThemeIndex())
}

func TestThemeChange_ResetsBackground(t *testing.T) {
	calls := 0
	s := New(themes("alpha", "beta"), fakeBackgrounds(map[string][]string{
		"alpha": {"/a/1.png", "/a/2.png", "/a/3.png"},
		"beta":  {"/b/x.png"},
	}, &calls))

	s = s.NextBackground().NextBackground()
	require.Equal(t, 2, s.BackgroundIndex())

	s = s.NextTheme()

	assert.Equal(t, 0, s.BackgroundIndex())
	assert.Equal(t, []string{"/b/x.png"}, s.Backgrounds())
	assert.Equal(t, 2, calls, "background set is recomputed for the new theme")
}

func TestBackgroundNavigation_Wraps(t *testing.T) {
	s := New(themes("alpha"), fakeBackgrounds(map[string][]string{
		"alpha": {"/a/1.png", "/a/2.png"},
	}, nil))

	assert.Equal(t, 1, s.PrevBackground().BackgroundIndex())
	assert.Equal(t, 0, s.NextBackground().NextBackground().BackgroundIndex())
	assert.Equal(t, 0, s.NextBackground().PrevBackground().BackgroundIndex())

	bg, ok := s.NextBackground().Background()
	require.True(t, ok)
	assert.Equal(t, "/a/2.png", bg)
}

func TestBackgroundNavigation_NoopWhenEmpty(t *testing.T) {
	s := New(themes("alpha"), nil)

	next := s.NextBackground().PrevBackground()

	assert.Equal(t, -1, next.BackgroundIndex())
	_, ok := next.Background()
	assert.False(t, ok)

	sel, ok := next.Selection()
	require.True(t, ok)
	assert.False(t, sel.HasBackground())
}

func TestEmptyState_NavigationIsNoop(t *testing.T) {
	s := New(nil, nil)

	assert.True(t, s.Empty())
	assert.Equal(t, -1, s.ThemeIndex())
	assert.True(t, s.NextTheme().PrevTheme().Empty())
	_, ok := s.Theme()
	assert.False(t, ok)
	_, ok = s.Selection()
	assert.False(t, ok)
	assert.Equal(t, catalog.Target{}, s.Target())
}

func TestJumpTo(t *testing.T) {
	s := New(themes("alpha", "beta", "gamma"), nil)

	next, ok := s.JumpTo("gamma")
	require.True(t, ok)
	assert.Equal(t, 2, next.ThemeIndex())

	same, ok := s.JumpTo("delta")
	assert.False(t, ok)
	assert.Equal(t, 0, same.ThemeIndex())
}

func TestSelectBackground(t *testing.T) {
	s := New(themes("alpha"), fakeBackgrounds(map[string][]string{
		"alpha": {"/a/bg/one.png", "/a/bg/two.png"},
	}, nil))

	next, ok := s.SelectBackground("two.png")
	require.True(t, ok)
	assert.Equal(t, 1, next.BackgroundIndex())

	_, ok = s.SelectBackground("three.png")
	assert.False(t, ok)
}

func TestSelection(t *testing.T) {
	s := New(themes("alpha"), fakeBackgrounds(map[string][]string{
		"alpha": {"/t/alpha/bg/one.png", "/t/alpha/bg/two.png"},
	}, nil)).NextBackground()

	sel, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, Selection{Theme: "alpha", Background: "two.png"}, sel)

	target := s.Target()
	assert.Equal(t, "alpha", target.Theme)
	assert.Equal(t, "/themes/alpha", target.ThemeDir)
	assert.Equal(t, 1, target.BackgroundIndex)
}

func TestAfterDelete_Clamps(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		remains []string
		want    int
	}{
		{"middle", 1, []string{"alpha", "gamma"}, 1},
		{"last", 2, []string{"alpha", "beta"}, 1},
		{"first", 0, []string{"beta", "gamma"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(themes("alpha", "beta", "gamma"), nil).Select(tt.start)
			assert.Equal(t, tt.want, s.AfterDelete(themes(tt.remains...)).ThemeIndex())
		})
	}
}

func TestAfterDelete_OnlyThemeEmptiesState(t *testing.T) {
	s := New(themes("alpha"), fakeBackgrounds(map[string][]string{
		"alpha": {"/a/1.png"},
	}, nil))

	s = s.AfterDelete(nil)

	assert.True(t, s.Empty())
	assert.Empty(t, s.Themes())
	assert.Empty(t, s.Backgrounds())
	assert.Equal(t, -1, s.BackgroundIndex())
	assert.Equal(t, catalog.Target{}, s.Target())
}

func TestWithThemes_KeepsActiveByName(t *testing.T) {
	s := New(themes("alpha", "beta"), fakeBackgrounds(map[string][]string{
		"beta": {"/b/1.png", "/b/2.png"},
	}, nil)).NextTheme().NextBackground()

	s = s.WithThemes(themes("aardvark", "alpha", "beta"))

	assert.Equal(t, "beta", activeName(t, s))
	assert.Equal(t, 2, s.ThemeIndex())
	assert.Equal(t, 1, s.BackgroundIndex(), "active background survives a rescan")
}

func TestWithThemes_ClampsWhenActiveGone(t *testing.T) {
	s := New(themes("alpha", "beta", "gamma"), nil).Select(2)

	s = s.WithThemes(themes("alpha"))

	assert.Equal(t, 0, s.ThemeIndex())
}

func TestSelect_IgnoresOutOfRange(t *testing.T) {
	s := New(themes("alpha", "beta"), nil)

	assert.Equal(t, 0, s.Select(5).ThemeIndex())
	assert.Equal(t, 0, s.Select(-1).ThemeIndex())
}
