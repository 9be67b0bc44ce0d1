package selection

// Selection is a theme plus an optional background file name.
type Selection struct {
	Theme      string `json:"theme" yaml:"theme"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"` // Base name inside the theme's background folder
}

// HasBackground reports whether a background is selected.
func (s Selection) HasBackground() bool {
	return s.Background != ""
}
