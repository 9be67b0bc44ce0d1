package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/skinsel/internal/catalog"
	"github.com/jmylchreest/skinsel/internal/config"
	"github.com/jmylchreest/skinsel/internal/confpatch"
	"github.com/jmylchreest/skinsel/internal/history"
	"github.com/jmylchreest/skinsel/internal/install"
	"github.com/jmylchreest/skinsel/internal/selection"
)

// ErrNothingSelected is returned when applying with an empty catalog.
var ErrNothingSelected = errors.New("no theme selected")

// Notifier announces an applied selection.
type Notifier interface {
	ThemeApplied(ctx context.Context, sel selection.Selection) error
}

// Action is a navigation step.
type Action int

const (
	NextTheme Action = iota
	PrevTheme
	NextBackground
	PrevBackground
)

func (a Action) String() string {
	switch a {
	case NextTheme:
		return "next-theme"
	case PrevTheme:
		return "prev-theme"
	case NextBackground:
		return "next-background"
	case PrevBackground:
		return "prev-background"
	default:
		return "unknown"
	}
}

// Controller owns the selection state. It is not safe for concurrent use;
// each front end drives it from its UI loop.
type Controller struct {
	cfg      *config.Config
	dirs     confpatch.Directives
	listOpts catalog.Options
	chain    catalog.Chain
	gate     *selection.Gate
	notifier Notifier
	logger   *slog.Logger

	state   selection.State
	applied selection.Selection
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the desktop notifier used after each apply.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithGate replaces the navigation debounce gate.
func WithGate(g *selection.Gate) Option {
	return func(c *Controller) { c.gate = g }
}

// WithChain replaces the preview resolution chain.
func WithChain(chain catalog.Chain) Option {
	return func(c *Controller) { c.chain = chain }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New loads the catalog and positions the state on the theme recorded in
// the bootloader config, if any. An empty catalog is an error unless the
// config asks for an empty state.
func New(cfg *config.Config, opts ...Option) (*Controller, error) {
	c := &Controller{
		cfg:  cfg,
		dirs: confpatch.DirectivesFromConfig(cfg),
		listOpts: catalog.Options{
			Exclude: cfg.Catalog.Exclude,
			Sort: catalog.SortOptions{
				Field: catalog.ParseSortField(cfg.Catalog.Sort),
				Order: catalog.ParseSortOrder(cfg.Catalog.Order),
			},
		},
		chain:  catalog.NewChain(cfg.SamplesDir(), cfg.ErrorImage(), config.CachePath()),
		gate:   selection.NewGate(cfg.DebounceInterval()),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	themes, err := catalog.List(cfg.Paths.ThemesRoot, c.listOpts)
	if err != nil {
		if !errors.Is(err, catalog.ErrEmptyCatalog) || cfg.Catalog.OnEmpty != config.OnEmptyEmptyState {
			return nil, fmt.Errorf("%s: %w", cfg.Paths.ThemesRoot, err)
		}
		c.logger.Info("no themes found, starting empty", "root", cfg.Paths.ThemesRoot)
	}

	c.state = selection.New(themes, c.backgrounds)
	c.restore()
	return c, nil
}

func (c *Controller) backgrounds(t catalog.Theme) []string {
	return catalog.Backgrounds(t.Dir, c.cfg.Catalog.BackgroundDir, c.cfg.Catalog.ImagePatterns)
}

// restore moves the state to the selection found in the bootloader config.
func (c *Controller) restore() {
	current, err := confpatch.Current(c.cfg.Refind.ConfigFile, c.dirs)
	if err != nil {
		c.logger.Debug("could not read current selection", "error", err)
		return
	}
	if current.Theme == "" {
		return
	}
	st, ok := c.state.JumpTo(current.Theme)
	if !ok {
		c.logger.Debug("configured theme not in catalog", "theme", current.Theme)
		return
	}
	if current.HasBackground() {
		st, _ = st.SelectBackground(current.Background)
	}
	c.state = st
	c.applied, _ = st.Selection()
}

// Config returns the application config.
func (c *Controller) Config() *config.Config {
	return c.cfg
}

// State returns the current selection state.
func (c *Controller) State() selection.State {
	return c.state
}

// Applied returns the last selection written to the bootloader config.
func (c *Controller) Applied() selection.Selection {
	return c.applied
}

// ConfirmMode reports whether navigation only previews.
func (c *Controller) ConfirmMode() bool {
	return c.cfg.UI.Apply == config.ApplyOnConfirm
}

// Dirty reports whether the previewed selection differs from the applied one.
func (c *Controller) Dirty() bool {
	sel, ok := c.state.Selection()
	return ok && sel != c.applied
}

// Preview resolves the image for the current state. An empty catalog yields
// an empty Resolution.
func (c *Controller) Preview() catalog.Resolution {
	if c.state.Empty() {
		return catalog.Resolution{}
	}
	return c.chain.Resolve(c.state.Target())
}

// Label returns the caption for the current state: the theme name, plus the
// background name when the theme has a background set.
func (c *Controller) Label() string {
	t, ok := c.state.Theme()
	if !ok {
		return ""
	}
	bg, ok := c.state.Background()
	if !ok {
		return t.Name
	}
	name := filepath.Base(bg)
	return t.Name + ": " + strings.TrimSuffix(name, filepath.Ext(name))
}

// Navigate applies a navigation action. It reports false when the action
// was debounced or changed nothing. In navigate mode the new selection is
// applied at once and the move is rolled back if writing the config fails.
func (c *Controller) Navigate(ctx context.Context, a Action) (bool, error) {
	if !c.gate.Allow() {
		c.logger.Debug("navigation debounced", "action", a.String())
		return false, nil
	}

	prev := c.state
	var next selection.State
	switch a {
	case NextTheme:
		next = prev.NextTheme()
	case PrevTheme:
		next = prev.PrevTheme()
	case NextBackground:
		next = prev.NextBackground()
	case PrevBackground:
		next = prev.PrevBackground()
	default:
		return false, fmt.Errorf("unknown action %d", a)
	}

	if next.ThemeIndex() == prev.ThemeIndex() && next.BackgroundIndex() == prev.BackgroundIndex() {
		return false, nil
	}
	return true, c.moveTo(ctx, next)
}

// Select moves to the theme at index i.
func (c *Controller) Select(ctx context.Context, i int) error {
	if i == c.state.ThemeIndex() {
		return nil
	}
	return c.moveTo(ctx, c.state.Select(i))
}

// JumpTo moves to the theme called name.
func (c *Controller) JumpTo(ctx context.Context, name string) error {
	next, ok := c.state.JumpTo(name)
	if !ok {
		return fmt.Errorf("theme %q not found", name)
	}
	return c.moveTo(ctx, next)
}

// SelectBackground moves to the background file name of the active theme.
func (c *Controller) SelectBackground(ctx context.Context, name string) error {
	next, ok := c.state.SelectBackground(name)
	if !ok {
		return fmt.Errorf("background %q not found", name)
	}
	return c.moveTo(ctx, next)
}

func (c *Controller) moveTo(ctx context.Context, next selection.State) error {
	if c.ConfirmMode() {
		c.state = next
		return nil
	}
	if err := c.apply(ctx, next); err != nil {
		return err
	}
	c.state = next
	return nil
}

// Apply writes the current selection to the bootloader config.
func (c *Controller) Apply(ctx context.Context) error {
	return c.apply(ctx, c.state)
}

// apply runs the apply step for st: patch the config, then mirror the theme,
// record history and notify. Only the patch can fail the step.
func (c *Controller) apply(ctx context.Context, st selection.State) error {
	sel, ok := st.Selection()
	if !ok {
		return ErrNothingSelected
	}

	if err := confpatch.Apply(c.cfg.Refind.ConfigFile, c.dirs, sel); err != nil {
		return err
	}
	if sel == c.applied {
		return nil
	}
	c.applied = sel

	if dst := c.cfg.Refind.ThemeDir; dst != "" {
		t, _ := st.Theme()
		if _, err := install.Mirror(t.Dir, dst); err != nil {
			c.logger.Warn("theme mirror incomplete", "theme", t.Name, "dest", dst, "error", err)
		}
	}

	if c.cfg.History.Enabled {
		if err := c.record(sel); err != nil {
			c.logger.Warn("failed to record history", "error", err)
		}
	}

	if c.notifier != nil {
		if err := c.notifier.ThemeApplied(ctx, sel); err != nil {
			c.logger.Warn("failed to send notification", "error", err)
		}
	}

	return nil
}

func (c *Controller) record(sel selection.Selection) error {
	e, err := history.NewEntry(sel, c.cfg.Refind.ConfigFile)
	if err != nil {
		return err
	}
	return history.Record(c.cfg.HistoryPath(), c.cfg.History.Keep, e)
}

// Delete removes the active theme from disk. On success the catalog is
// reloaded and the index clamps to the new set; in navigate mode the new
// active theme is then applied. On failure the state is unchanged.
func (c *Controller) Delete(ctx context.Context) error {
	t, ok := c.state.Theme()
	if !ok {
		return ErrNothingSelected
	}

	if err := catalog.Delete(c.cfg.Paths.ThemesRoot, t.Name); err != nil {
		return err
	}

	themes, err := c.list()
	if err != nil {
		c.logger.Warn("failed to reload themes after delete", "error", err)
		themes = without(c.state.Themes(), t.Name)
	}
	c.state = c.state.AfterDelete(themes)

	if c.state.Empty() || c.ConfirmMode() {
		return nil
	}
	if err := c.apply(ctx, c.state); err != nil {
		return fmt.Errorf("theme deleted but applying %s failed: %w", c.Label(), err)
	}
	return nil
}

// Rescan reloads the catalog after an external change, keeping the active
// theme when it still exists.
func (c *Controller) Rescan() error {
	themes, err := c.list()
	if err != nil {
		return err
	}
	c.state = c.state.WithThemes(themes)
	return nil
}

func without(themes []catalog.Theme, name string) []catalog.Theme {
	out := make([]catalog.Theme, 0, len(themes))
	for _, t := range themes {
		if t.Name != name {
			out = append(out, t)
		}
	}
	return out
}

// list reads the themes root; an empty catalog is not an error here.
func (c *Controller) list() ([]catalog.Theme, error) {
	themes, err := catalog.List(c.cfg.Paths.ThemesRoot, c.listOpts)
	if errors.Is(err, catalog.ErrEmptyCatalog) {
		return nil, nil
	}
	return themes, err
}

// Watch starts an fsnotify watcher on the themes root.
func (c *Controller) Watch() (*catalog.Watcher, error) {
	w, err := catalog.NewWatcher(c.cfg.Paths.ThemesRoot)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}
