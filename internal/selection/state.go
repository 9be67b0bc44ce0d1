package selection

import (
	"path/filepath"

	"github.com/jmylchreest/skinsel/internal/catalog"
)

// BackgroundLoader returns the background set of a theme.
type BackgroundLoader func(t catalog.Theme) []string

// State is the active theme and background within a theme set.
type State struct {
	themes      []catalog.Theme
	theme       int
	backgrounds []string
	background  int
	load        BackgroundLoader
}

// New returns a State pointing at the first theme.
// A nil loader yields empty background sets.
func New(themes []catalog.Theme, load BackgroundLoader) State {
	s := State{themes: themes, load: load}
	return s.selectTheme(0)
}

// Empty reports whether the theme set is empty.
func (s State) Empty() bool {
	return len(s.themes) == 0
}

// Themes returns the theme set. Callers must not modify it.
func (s State) Themes() []catalog.Theme {
	return s.themes
}

// Len returns the number of themes.
func (s State) Len() int {
	return len(s.themes)
}

// ThemeIndex returns the active theme index, or -1 when empty.
func (s State) ThemeIndex() int {
	if s.Empty() {
		return -1
	}
	return s.theme
}

// Theme returns the active theme.
func (s State) Theme() (catalog.Theme, bool) {
	if s.Empty() {
		return catalog.Theme{}, false
	}
	return s.themes[s.theme], true
}

// Backgrounds returns the background set of the active theme.
func (s State) Backgrounds() []string {
	return s.backgrounds
}

// BackgroundIndex returns the active background index, or -1 when the
// background set is empty.
func (s State) BackgroundIndex() int {
	if len(s.backgrounds) == 0 {
		return -1
	}
	return s.background
}

// Background returns the path of the active background.
func (s State) Background() (string, bool) {
	if len(s.backgrounds) == 0 {
		return "", false
	}
	return s.backgrounds[s.background], true
}

// NextTheme moves to the next theme, wrapping at the end.
func (s State) NextTheme() State {
	if s.Empty() {
		return s
	}
	return s.selectTheme((s.theme + 1) % len(s.themes))
}

// PrevTheme moves to the previous theme, wrapping at the start.
func (s State) PrevTheme() State {
	if s.Empty() {
		return s
	}
	return s.selectTheme((s.theme - 1 + len(s.themes)) % len(s.themes))
}

// NextBackground moves to the next background of the active theme.
func (s State) NextBackground() State {
	n := len(s.backgrounds)
	if n == 0 {
		return s
	}
	s.background = (s.background + 1) % n
	return s
}

// PrevBackground moves to the previous background of the active theme.
func (s State) PrevBackground() State {
	n := len(s.backgrounds)
	if n == 0 {
		return s
	}
	s.background = (s.background - 1 + n) % n
	return s
}

// Select moves to the theme at index i. Out of range indexes are ignored.
func (s State) Select(i int) State {
	if i < 0 || i >= len(s.themes) {
		return s
	}
	return s.selectTheme(i)
}

// JumpTo moves to the theme called name.
func (s State) JumpTo(name string) (State, bool) {
	i := catalog.LookupByName(s.themes, name)
	if i < 0 {
		return s, false
	}
	return s.selectTheme(i), true
}

// SelectBackground moves to the background with the given file name.
func (s State) SelectBackground(name string) (State, bool) {
	for i, bg := range s.backgrounds {
		if filepath.Base(bg) == name {
			s.background = i
			return s, true
		}
	}
	return s, false
}

// WithThemes replaces the theme set after a rescan. The active theme is kept
// when it still exists; otherwise the index clamps to the new set.
func (s State) WithThemes(themes []catalog.Theme) State {
	current, ok := s.Theme()
	bg, hasBG := s.Background()

	next := State{themes: themes, load: s.load}
	if ok {
		if i := catalog.LookupByName(themes, current.Name); i >= 0 {
			next = next.selectTheme(i)
			if hasBG {
				next, _ = next.SelectBackground(filepath.Base(bg))
			}
			return next
		}
	}
	return next.selectTheme(clamp(s.theme, len(themes)))
}

// AfterDelete replaces the theme set after the active theme was removed.
// The index becomes min(old, len-1).
func (s State) AfterDelete(themes []catalog.Theme) State {
	next := State{themes: themes, load: s.load}
	return next.selectTheme(clamp(s.theme, len(themes)))
}

// Selection returns the value written to the bootloader config.
func (s State) Selection() (Selection, bool) {
	t, ok := s.Theme()
	if !ok {
		return Selection{}, false
	}
	sel := Selection{Theme: t.Name}
	if bg, ok := s.Background(); ok {
		sel.Background = filepath.Base(bg)
	}
	return sel, true
}

// Target returns the resolution input for the active theme.
func (s State) Target() catalog.Target {
	t, ok := s.Theme()
	if !ok {
		return catalog.Target{}
	}
	return catalog.Target{
		Theme:           t.Name,
		ThemeDir:        t.Dir,
		Backgrounds:     s.backgrounds,
		BackgroundIndex: s.background,
	}
}

func (s State) selectTheme(i int) State {
	s.theme = i
	s.background = 0
	s.backgrounds = nil
	if i >= 0 && i < len(s.themes) && s.load != nil {
		s.backgrounds = s.load(s.themes[i])
	}
	return s
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
