package presentation

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"

	"multilabel-go/application"
	"multilabel-go/application/session"
	"multilabel-go/core/event"
	"multilabel-go/core/eventbus"
	"multilabel-go/core/state"
	"multilabel-go/domain/annotation"
	"multilabel-go/domain/schema"
	"multilabel-go/infrastructure/repository"
)

func TestMainWindowConfig(t *testing.T) {
	cfg := &MainWindowConfig{}

	if cfg.App != nil {
		t.Error("App should be nil by default")
	}
	if cfg.Bridge != nil {
		t.Error("Bridge should be nil by default")
	}
	if cfg.Logger != nil {
		t.Error("Logger should be nil by default")
	}
}

func TestWindowTitle(t *testing.T) {
	tests := []struct {
		path  string
		index int
		total int
		want  string
	}{
		{"", 0, 0, baseTitle},
		{"/data/cat.jpg", 0, 3, baseTitle + ": [1/3]cat.jpg"},
		{"/data/dog.png", 2, 3, baseTitle + ": [3/3]dog.png"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := windowTitle(tt.path, tt.index, tt.total); got != tt.want {
				t.Errorf("windowTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want severity
	}{
		{"nil", nil, severityNone},
		{"no images", session.ErrNoImages, severityNone},
		{"at end", session.ErrAtEnd, severityInfo},
		{"at start", session.ErrAtStart, severityInfo},
		{"no output", annotation.ErrNoOutputDirectory, severityWarning},
		{"bad schema", fmt.Errorf("%w: not an object", schema.ErrInvalidFormat), severityWarning},
		{"io failure", errors.New("disk full"), severityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := noticeFor(tt.err)
			if n.severity != tt.want {
				t.Errorf("noticeFor(%v).severity = %v, want %v", tt.err, n.severity, tt.want)
			}
			if tt.want != severityNone && n.message == "" {
				t.Error("notice should carry a message")
			}
		})
	}
}

func TestFixedWidthLayout(t *testing.T) {
	l := &fixedWidthLayout{width: attributePanelWidth}
	short := canvas.NewRectangle(color.Transparent)
	short.SetMinSize(fyne.NewSize(10, 40))
	tall := canvas.NewRectangle(color.Transparent)
	tall.SetMinSize(fyne.NewSize(500, 120))
	objects := []fyne.CanvasObject{short, tall}

	if got := l.MinSize(objects); got != fyne.NewSize(300, 120) {
		t.Errorf("MinSize() = %v, want 300x120", got)
	}

	l.Layout(objects, fyne.NewSize(900, 600))
	for i, o := range objects {
		if o.Size() != fyne.NewSize(300, 600) {
			t.Errorf("object %d size = %v, want 300x600", i, o.Size())
		}
	}
}

func TestAttributePanel(t *testing.T) {
	test.NewTempApp(t)

	var picked []string
	p := NewAttributePanel(func(attribute, label string) {
		picked = append(picked, attribute+"="+label)
	}, nil)

	p.Rebuild([]event.AttributeOptions{
		{Name: "color", Labels: []string{"red", "blue"}},
		{Name: "size", Labels: []string{"small", "big"}},
	})

	if got := p.Attributes(); len(got) != 2 || got[0] != "color" || got[1] != "size" {
		t.Errorf("Attributes() = %v", got)
	}
	if v, _ := p.Selected("color"); v != "red" {
		t.Errorf("Selected(color) = %v, want red", v)
	}

	p.Apply([]event.Choice{{Attribute: "color", Label: "blue"}, {Attribute: "shape", Label: "round"}})
	if v, _ := p.Selected("color"); v != "blue" {
		t.Errorf("Selected(color) after Apply = %v, want blue", v)
	}
	if len(picked) != 0 {
		t.Errorf("programmatic updates reported %v", picked)
	}

	p.selects["size"].SetSelected("big")
	if len(picked) != 1 || picked[0] != "size=big" {
		t.Errorf("user selection reported %v, want [size=big]", picked)
	}

	p.Rebuild(nil)
	if _, ok := p.Selected("color"); ok {
		t.Error("Rebuild should drop old selectors")
	}
}

func TestImageView_Scrolled(t *testing.T) {
	test.NewTempApp(t)

	var ticks []bool
	v := NewImageView(func(in bool) { ticks = append(ticks, in) })

	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 3}})
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: -3}})
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DX: 5}})

	if len(ticks) != 2 || !ticks[0] || ticks[1] {
		t.Errorf("ticks = %v, want [true false]", ticks)
	}

	// Empty view still produces a raster image
	if img := v.generate(10, 10); img.Bounds().Dx() != 10 {
		t.Errorf("generate() bounds = %v", img.Bounds())
	}
}

func TestAttributePanel_ForwardsNavigationKeys(t *testing.T) {
	test.NewTempApp(t)

	var keys []fyne.KeyName
	p := NewAttributePanel(nil, func(e *fyne.KeyEvent) bool {
		if e.Name == fyne.KeyA || e.Name == fyne.KeyD {
			keys = append(keys, e.Name)
			return true
		}
		return false
	})
	p.Rebuild([]event.AttributeOptions{{Name: "color", Labels: []string{"red", "blue"}}})

	sel := p.selects["color"]
	sel.TypedKey(&fyne.KeyEvent{Name: fyne.KeyD})
	sel.TypedKey(&fyne.KeyEvent{Name: fyne.KeyA})

	if len(keys) != 2 || keys[0] != fyne.KeyD || keys[1] != fyne.KeyA {
		t.Errorf("forwarded keys = %v, want [D A]", keys)
	}
	if v, _ := p.Selected("color"); v != "red" {
		t.Errorf("Selected(color) = %v, navigation keys must not change the label", v)
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		name   string
		state  state.WorkspaceState
		output string
		want   string
	}{
		{"no folder", state.StateNoFolder, "", "No image folder | Output: not set"},
		{"no folder with output", state.StateNoFolder, "/out", "No image folder | Output: /out"},
		{"empty folder", state.StateEmptyFolder, "", "No images in folder | Output: not set"},
		{"viewing", state.StateViewing, "", "Viewing (no output directory)"},
		{"annotating", state.StateAnnotating, "/out", "Annotating | Output: /out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusText(tt.state, tt.output); got != tt.want {
				t.Errorf("statusText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func newTestWindow(t *testing.T) (*MainWindow, *UIEventBridge) {
	t.Helper()
	a := test.NewTempApp(t)

	bus := eventbus.New(nil)
	t.Cleanup(func() { bus.Close() })

	schemas := schema.NewStore(nil)
	if _, err := schemas.Replace(`{"color": ["red", "blue"]}`); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	coordinator := application.NewCoordinator(&application.CoordinatorConfig{
		EventBus:    bus,
		Schemas:     schemas,
		Annotations: annotation.NewStore(&annotation.StoreConfig{Factory: repository.JSONFileFactory(nil)}),
	})
	t.Cleanup(coordinator.Stop)

	bridge := NewUIEventBridge(&BridgeConfig{Coordinator: coordinator, EventBus: bus})
	t.Cleanup(bridge.Close)

	w := NewMainWindow(&MainWindowConfig{App: a, Bridge: bridge})
	t.Cleanup(w.Cleanup)

	coordinator.Start()
	return w, bridge
}

func zoomDisabled(w *MainWindow) bool {
	for _, item := range w.zoomItems {
		if !item.Disabled {
			return false
		}
	}
	return len(w.zoomItems) > 0
}

func TestMainWindow_FollowsWorkspaceState(t *testing.T) {
	w, bridge := newTestWindow(t)

	if got := w.outputInfo.Text; got != "No image folder | Output: not set" {
		t.Errorf("initial status = %q", got)
	}
	if !zoomDisabled(w) {
		t.Error("zoom items should be disabled without an image")
	}

	images := t.TempDir()
	writePNG(t, filepath.Join(images, "a.png"))
	writePNG(t, filepath.Join(images, "b.png"))
	if err := bridge.SelectFolder(images); err != nil {
		t.Fatalf("SelectFolder() error = %v", err)
	}

	if got := w.outputInfo.Text; got != "Viewing (no output directory)" {
		t.Errorf("status after folder = %q", got)
	}
	if zoomDisabled(w) {
		t.Error("zoom items should be enabled once an image is shown")
	}

	out := t.TempDir()
	if err := bridge.SetOutputDirectory(out); err != nil {
		t.Fatalf("SetOutputDirectory() error = %v", err)
	}
	if got, want := w.outputInfo.Text, "Annotating | Output: "+out; got != want {
		t.Errorf("status after output = %q, want %q", got, want)
	}
}

func TestMainWindow_NavigatesFromFocusedSelector(t *testing.T) {
	w, bridge := newTestWindow(t)

	images := t.TempDir()
	writePNG(t, filepath.Join(images, "a.png"))
	writePNG(t, filepath.Join(images, "b.png"))
	if err := bridge.SelectFolder(images); err != nil {
		t.Fatalf("SelectFolder() error = %v", err)
	}
	out := t.TempDir()
	if err := bridge.SetOutputDirectory(out); err != nil {
		t.Fatalf("SetOutputDirectory() error = %v", err)
	}

	sel := w.panel.selects["color"]
	w.window.Canvas().Focus(sel)
	// Confirming the label already shown leaves focus on the selector
	sel.SetSelected("red")
	sel.TypedKey(&fyne.KeyEvent{Name: fyne.KeyD})

	if title := w.window.Title(); !strings.HasSuffix(title, "[2/2]b.png") {
		t.Errorf("title = %q, want the second image", title)
	}
	if _, err := os.Stat(filepath.Join(out, "a.json")); err != nil {
		t.Errorf("record for a.png not saved: %v", err)
	}
}
