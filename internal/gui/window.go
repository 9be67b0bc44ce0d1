package gui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/skinsel/internal/app"
	"github.com/jmylchreest/skinsel/internal/catalog"
	"github.com/jmylchreest/skinsel/internal/config"
	"github.com/jmylchreest/skinsel/internal/render"
)

const (
	// resizeDelayMs coalesces resize events while the window is dragged.
	resizeDelayMs = 120
	statusDelayMs = 3000
)

// Window is the theme selector window.
type Window struct {
	window *gtk.Window
	logger *slog.Logger

	// Widgets
	picture   *gtk.Picture
	empty     *gtk.Label
	caption   *gtk.Label
	counter   *gtk.Label
	status    *gtk.Label
	applyBtn  *gtk.Button
	deleteBtn *gtk.Button

	ctrl   *app.Controller
	frames *render.FrameCache

	// Preview area in logical pixels
	width  int
	height int

	// generation increases with every render request; results for an older
	// generation are dropped.
	generation   uint64
	resizeSource glib.SourceHandle
	statusSource glib.SourceHandle
}

// NewWindow creates the window for ctrl. Call Present to show it.
func NewWindow(application *gtk.Application, ctrl *app.Controller, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}

	w := &Window{
		ctrl:   ctrl,
		logger: logger,
		frames: render.NewFrameCache(config.CachePath()),
	}

	cfg := ctrl.Config()
	w.window = gtk.NewWindow()
	w.window.SetApplication(application)
	w.window.SetTitle("skinsel")
	w.window.SetDefaultSize(cfg.GUI.Width, cfg.GUI.Height)

	w.buildUI()
	w.connectSignals()
	w.refresh()

	return w
}

// buildUI constructs the widget hierarchy.
func (w *Window) buildUI() {
	header := gtk.NewHeaderBar()

	w.deleteBtn = gtk.NewButtonFromIconName("user-trash-symbolic")
	w.deleteBtn.SetTooltipText("Delete theme (Del)")
	w.deleteBtn.AddCSSClass("destructive-action")
	w.deleteBtn.SetFocusable(false)
	header.PackStart(w.deleteBtn)

	w.applyBtn = gtk.NewButtonWithLabel("Apply")
	w.applyBtn.SetTooltipText("Write the selection to the rEFInd config (Enter)")
	w.applyBtn.AddCSSClass("suggested-action")
	w.applyBtn.SetFocusable(false)
	w.applyBtn.SetVisible(w.ctrl.ConfirmMode())
	header.PackEnd(w.applyBtn)

	w.window.SetTitlebar(header)

	// The drawing area only reports the preview size; the picture on top
	// shows the letterboxed frame.
	area := gtk.NewDrawingArea()
	area.SetHExpand(true)
	area.SetVExpand(true)
	area.ConnectResize(func(width, height int) {
		w.onResize(width, height)
	})

	w.picture = gtk.NewPicture()
	w.picture.SetCanShrink(true)
	w.picture.SetContentFit(gtk.ContentFitContain)

	w.empty = gtk.NewLabel("")
	w.empty.AddCSSClass("empty-state")
	w.empty.SetVisible(false)

	overlay := gtk.NewOverlay()
	overlay.AddCSSClass("preview")
	overlay.SetChild(area)
	overlay.AddOverlay(w.picture)
	overlay.AddOverlay(w.empty)

	w.caption = gtk.NewLabel("")
	w.caption.AddCSSClass("caption")
	w.caption.SetXAlign(0)

	w.counter = gtk.NewLabel("")
	w.counter.AddCSSClass("counter")

	w.status = gtk.NewLabel("")
	w.status.AddCSSClass("status")
	w.status.SetHExpand(true)
	w.status.SetXAlign(1)

	footer := gtk.NewBox(gtk.OrientationHorizontal, 12)
	footer.AddCSSClass("footer")
	footer.Append(w.caption)
	footer.Append(w.counter)
	footer.Append(w.status)

	box := gtk.NewBox(gtk.OrientationVertical, 0)
	box.Append(overlay)
	box.Append(footer)

	w.window.SetChild(box)
}

// connectSignals sets up event handlers.
func (w *Window) connectSignals() {
	w.applyBtn.ConnectClicked(func() {
		w.apply()
	})
	w.deleteBtn.ConnectClicked(func() {
		w.confirmDelete()
	})

	// Capture phase so arrow keys reach us before focus navigation.
	keys := gtk.NewEventControllerKey()
	keys.SetPropagationPhase(gtk.PhaseCapture)
	keys.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		return w.handleKey(keyval, state)
	})
	w.window.AddController(keys)
}

// handleKey maps key presses to actions. It reports whether the key was used.
func (w *Window) handleKey(keyval uint, state gdk.ModifierType) bool {
	if state&(gdk.ControlMask|gdk.AltMask) != 0 {
		if keyval == gdk.KEY_q && state&gdk.ControlMask != 0 {
			w.window.Close()
			return true
		}
		return false
	}

	switch keyval {
	case gdk.KEY_Left, gdk.KEY_h:
		w.navigate(app.PrevTheme)
	case gdk.KEY_Right, gdk.KEY_l:
		w.navigate(app.NextTheme)
	case gdk.KEY_Up, gdk.KEY_k:
		w.navigate(app.NextBackground)
	case gdk.KEY_Down, gdk.KEY_j:
		w.navigate(app.PrevBackground)
	case gdk.KEY_Delete, gdk.KEY_KP_Delete, gdk.KEY_x:
		w.confirmDelete()
	case gdk.KEY_Return, gdk.KEY_KP_Enter:
		w.apply()
	case gdk.KEY_q, gdk.KEY_Escape:
		w.window.Close()
	default:
		return false
	}
	return true
}

// Present shows the window.
func (w *Window) Present() {
	w.window.Present()
}

// Rescan reloads the catalog. Must run on the GTK main loop.
func (w *Window) Rescan() {
	if err := w.ctrl.Rescan(); err != nil {
		w.showStatus("Rescan failed: "+err.Error(), true)
		return
	}
	w.refresh()
}

func (w *Window) navigate(a app.Action) {
	changed, err := w.ctrl.Navigate(context.Background(), a)
	if err != nil {
		w.showStatus(err.Error(), true)
		return
	}
	if changed {
		w.refresh()
	}
}

func (w *Window) apply() {
	if w.ctrl.State().Empty() {
		return
	}
	if err := w.ctrl.Apply(context.Background()); err != nil {
		w.showStatus("Apply failed: "+err.Error(), true)
		return
	}
	w.showStatus("Applied "+w.ctrl.Label(), false)
	w.refresh()
}

// confirmDelete asks before deleting the active theme.
func (w *Window) confirmDelete() {
	t, ok := w.ctrl.State().Theme()
	if !ok {
		return
	}

	size, err := catalog.DirSize(t.Dir)
	if err != nil {
		w.logger.Debug("failed to size theme", "theme", t.Name, "error", err)
	}

	dialog := adw.NewMessageDialog(w.window,
		"Delete theme?",
		fmt.Sprintf("%s (%s) will be removed from %s. This cannot be undone.",
			t.Name, humanize.Bytes(uint64(max(size, 0))), w.ctrl.Config().Paths.ThemesRoot))
	dialog.AddResponse("cancel", "_Cancel")
	dialog.AddResponse("delete", "_Delete")
	dialog.SetResponseAppearance("delete", adw.ResponseDestructive)
	dialog.SetDefaultResponse("cancel")
	dialog.SetCloseResponse("cancel")
	dialog.ConnectResponse(func(response string) {
		if response != "delete" {
			return
		}
		w.delete(t.Name)
	})
	dialog.Present()
}

func (w *Window) delete(name string) {
	err := w.ctrl.Delete(context.Background())
	if err != nil && catalog.IsDeletionError(err) {
		w.showStatus(err.Error(), true)
		return
	}
	if err != nil {
		// Deleted, but applying the next theme failed.
		w.showStatus(err.Error(), true)
	} else {
		w.showStatus("Deleted "+name, false)
	}
	w.refresh()
}

// refresh updates labels and buttons from the controller and requests a
// new frame.
func (w *Window) refresh() {
	st := w.ctrl.State()
	w.deleteBtn.SetSensitive(!st.Empty())

	if st.Empty() {
		w.caption.SetText("")
		w.counter.SetText("")
		w.applyBtn.SetSensitive(false)
		w.empty.SetText("No themes found in " + w.ctrl.Config().Paths.ThemesRoot)
		w.empty.SetVisible(true)
		w.picture.SetPaintable(nil)
		w.window.SetTitle("skinsel")
		w.generation++
		return
	}

	w.empty.SetVisible(false)
	w.caption.SetText(w.ctrl.Label())
	w.window.SetTitle("skinsel: " + w.ctrl.Label())

	counter := fmt.Sprintf("%d/%d", st.ThemeIndex()+1, st.Len())
	if n := len(st.Backgrounds()); n > 1 {
		counter += fmt.Sprintf("  bg %d/%d", st.BackgroundIndex()+1, n)
	}
	if w.ctrl.Dirty() {
		counter += "  (not applied)"
	}
	w.counter.SetText(counter)
	w.applyBtn.SetSensitive(w.ctrl.Dirty())

	w.renderPreview()
}

func (w *Window) onResize(width, height int) {
	w.width = width
	w.height = height

	if w.resizeSource != 0 {
		glib.SourceRemove(w.resizeSource)
	}
	w.resizeSource = glib.TimeoutAdd(resizeDelayMs, func() bool {
		w.resizeSource = 0
		w.renderPreview()
		return false
	})
}

// renderPreview renders the current preview off the main loop. On failure
// the previous frame stays on screen.
func (w *Window) renderPreview() {
	if w.ctrl.State().Empty() {
		return
	}
	scale := w.picture.ScaleFactor()
	width, height := w.width*scale, w.height*scale
	if width <= 0 || height <= 0 {
		return
	}

	res := w.ctrl.Preview()
	w.generation++
	gen := w.generation

	go func() {
		png, err := w.frames.Frame(res.Path, width, height)
		glib.IdleAdd(func() {
			if gen != w.generation {
				return
			}
			if err != nil {
				w.logger.Warn("failed to render preview", "path", res.Path, "strategy", res.Strategy, "error", err)
				return
			}
			w.picture.SetFilename(png)
		})
	}()
}

// showStatus shows a transient message in the footer.
func (w *Window) showStatus(text string, isErr bool) {
	w.status.SetText(text)
	if isErr {
		w.status.AddCSSClass("error")
		w.logger.Warn(text)
	} else {
		w.status.RemoveCSSClass("error")
	}

	if w.statusSource != 0 {
		glib.SourceRemove(w.statusSource)
	}
	w.statusSource = glib.TimeoutAdd(statusDelayMs, func() bool {
		w.statusSource = 0
		w.status.SetText("")
		w.status.RemoveCSSClass("error")
		return false
	})
}
