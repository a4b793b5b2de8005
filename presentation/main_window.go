package presentation

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"multilabel-go/core/event"
	"multilabel-go/core/state"
	"multilabel-go/infrastructure/imaging"
	"multilabel-go/resources"
)

const (
	baseTitle           = "Multi-Label Image Annotator"
	attributePanelWidth = 300
)

// MainWindow is the main application window.
type MainWindow struct {
	app    fyne.App
	window fyne.Window
	bridge *UIEventBridge
	logger *slog.Logger

	// UI components
	imageView  *ImageView
	panel      *AttributePanel
	outputInfo *widget.Label
	zoomInfo   *widget.Label
	zoomItems  []*fyne.MenuItem

	// Cleanup
	cleanupOnce sync.Once
}

// MainWindowConfig holds configuration for MainWindow.
type MainWindowConfig struct {
	App    fyne.App
	Bridge *UIEventBridge
	Logger *slog.Logger
	Width  float32
	Height float32
}

// NewMainWindow creates a new main window.
func NewMainWindow(cfg *MainWindowConfig) *MainWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1580, 750
	}

	w := &MainWindow{
		app:    cfg.App,
		window: cfg.App.NewWindow(baseTitle),
		bridge: cfg.Bridge,
		logger: cfg.Logger,
	}

	w.init(cfg.Width, cfg.Height)
	w.setupEventCallbacks()

	w.window.SetOnClosed(func() {
		w.Cleanup()
	})

	return w
}

func (w *MainWindow) init(width, height float32) {
	w.imageView = NewImageView(func(in bool) {
		w.report(w.bridge.ZoomWheel(in))
	})
	w.panel = NewAttributePanel(w.onLabelSelected, w.navigateKey)
	w.outputInfo = widget.NewLabel(statusText(state.StateNoFolder, ""))
	w.zoomInfo = widget.NewLabel("")

	side := container.New(&fixedWidthLayout{width: attributePanelWidth}, w.panel.Object())
	status := container.NewBorder(nil, nil, nil, w.zoomInfo, w.outputInfo)

	content := container.NewBorder(nil, status, nil, side, w.imageView)
	w.window.SetContent(content)
	w.window.SetMaster()
	w.window.SetMainMenu(w.createMenu())
	w.setupShortcuts()
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) createMenu() *fyne.MainMenu {
	quit := fyne.NewMenuItem("Quit", func() {
		w.report(w.bridge.Quit())
	})
	quit.IsQuit = true

	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image Folder...", w.showOpenFolder),
		fyne.NewMenuItem("Set Output Directory...", w.showOutputFolder),
		fyne.NewMenuItem("Edit Labels...", w.showSchemaDialog),
		fyne.NewMenuItemSeparator(),
		quit,
	)

	zoomIn := fyne.NewMenuItem("Zoom In", func() { w.zoomStep(true) })
	zoomIn.Shortcut = zoomInShortcut
	zoomOut := fyne.NewMenuItem("Zoom Out", func() { w.zoomStep(false) })
	zoomOut.Shortcut = zoomOutShortcut
	w.zoomItems = []*fyne.MenuItem{zoomIn, zoomOut}
	view := fyne.NewMenu("View", zoomIn, zoomOut)

	about := fyne.NewMenu("About",
		fyne.NewMenuItem("About", func() { w.showHelp("About", resources.HelpAbout) }),
		fyne.NewMenuItem("Shortcuts", func() { w.showHelp("Shortcuts", resources.HelpShortcuts) }),
		fyne.NewMenuItem("Help", func() { w.showHelp("Help", resources.HelpUsage) }),
	)

	return fyne.NewMainMenu(file, view, about)
}

var (
	zoomInShortcut    = &desktop.CustomShortcut{KeyName: fyne.KeyEqual, Modifier: fyne.KeyModifierAlt}
	zoomInAltShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyPlus, Modifier: fyne.KeyModifierAlt}
	zoomOutShortcut   = &desktop.CustomShortcut{KeyName: fyne.KeyMinus, Modifier: fyne.KeyModifierAlt}
)

func (w *MainWindow) setupShortcuts() {
	c := w.window.Canvas()

	zoomIn := func(fyne.Shortcut) { w.zoomStep(true) }
	c.AddShortcut(zoomInShortcut, zoomIn)
	c.AddShortcut(zoomInAltShortcut, zoomIn)
	c.AddShortcut(zoomOutShortcut, func(fyne.Shortcut) { w.zoomStep(false) })

	// Typed keys only reach the canvas when no widget has focus;
	// focused label selectors forward them through the panel.
	c.SetOnTypedKey(func(e *fyne.KeyEvent) { w.navigateKey(e) })
}

// navigateKey moves to the previous or next image on A / D.
func (w *MainWindow) navigateKey(e *fyne.KeyEvent) bool {
	switch e.Name {
	case fyne.KeyA:
		w.report(w.bridge.Previous())
	case fyne.KeyD:
		w.report(w.bridge.Next())
	default:
		return false
	}
	return true
}

func (w *MainWindow) zoomStep(in bool) {
	if !w.bridge.State().HasImage() {
		return
	}
	w.report(w.bridge.ZoomStep(in))
}

// refreshState updates the status line and zoom items for the workspace state.
func (w *MainWindow) refreshState() {
	st := w.bridge.State()
	w.outputInfo.SetText(statusText(st, w.bridge.OutputDirectory()))

	for _, item := range w.zoomItems {
		item.Disabled = !st.HasImage()
	}
	if menu := w.window.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

// statusText describes the workspace state for the status line.
func statusText(st state.WorkspaceState, outputDir string) string {
	output := "Output: not set"
	if outputDir != "" {
		output = "Output: " + outputDir
	}

	switch {
	case st.CanSave():
		return "Annotating | " + output
	case st == state.StateViewing:
		return "Viewing (no output directory)"
	case st == state.StateEmptyFolder:
		return "No images in folder | " + output
	default:
		return "No image folder | " + output
	}
}

func (w *MainWindow) setupEventCallbacks() {
	if w.bridge == nil {
		return
	}

	// Events arrive on the UI goroutine, so widgets are updated directly.
	w.bridge.SetCallbacks(&UICallbacks{
		OnFolderOpened: func(folder string, count int) {
			w.logger.Info("Image folder opened", "folder", folder, "count", count)
		},
		OnOutputDirectoryChanged: func(path string) {
			w.refreshState()
		},
		OnSchemaReplaced: func(attributes []event.AttributeOptions) {
			w.panel.Rebuild(attributes)
		},
		OnQuitRequested: func() {
			w.app.Quit()
		},
		OnImageChanged: func(path string, index, total int) {
			w.window.SetTitle(windowTitle(path, index, total))
			w.showImage(path)
			w.refreshState()
		},
		OnSelectionChanged: func(choices []event.Choice) {
			w.panel.Apply(choices)
		},
		OnAnnotationSaved: func(imageFilename, recordPath string) {
			w.logger.Debug("Annotation saved", "image", imageFilename, "path", recordPath)
		},
		OnZoomChanged: func(level float64, source event.ZoomSource) {
			w.imageView.SetZoom(level)
			w.zoomInfo.SetText(fmt.Sprintf("Zoom: %.0f%%", level*100))
		},
	})
}

// windowTitle formats "<base>: [i/n]<filename>" with a 1-based index.
func windowTitle(path string, index, total int) string {
	if path == "" || total == 0 {
		return baseTitle
	}
	return fmt.Sprintf("%s: [%d/%d]%s", baseTitle, index+1, total, filepath.Base(path))
}

func (w *MainWindow) showImage(path string) {
	if path == "" {
		w.imageView.SetImage(nil)
		return
	}

	img, err := imaging.Decode(path)
	if err != nil {
		w.logger.Error("Failed to load image", "image", path, "error", err)
		w.imageView.SetImage(nil)
		dialog.ShowError(err, w.window)
		return
	}
	w.imageView.SetImage(img)
}

func (w *MainWindow) onLabelSelected(attribute, label string) {
	if err := w.bridge.SelectLabel(attribute, label); err != nil {
		w.report(err)
		w.resyncSelection()
	}
	// Release focus so A / D navigate again
	w.window.Canvas().Unfocus()
}

func (w *MainWindow) resyncSelection() {
	labels := w.bridge.Selection()
	choices := make([]event.Choice, len(labels))
	for i, l := range labels {
		choices[i] = event.Choice{Attribute: l.Attribute, Label: l.Value}
	}
	w.panel.Apply(choices)
}

func (w *MainWindow) showOpenFolder() {
	w.showFolderDialog(func(path string) {
		if err := w.bridge.SelectFolder(path); err != nil {
			w.report(err)
			return
		}
		dialog.ShowInformation("Folder Selected", "You selected: "+path, w.window)
	})
}

func (w *MainWindow) showOutputFolder() {
	w.showFolderDialog(func(path string) {
		if err := w.bridge.SetOutputDirectory(path); err != nil {
			w.report(err)
			return
		}
		dialog.ShowInformation("Folder Selected", "You selected: "+path, w.window)
	})
}

func (w *MainWindow) showFolderDialog(onChosen func(path string)) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if uri == nil {
			return // cancelled
		}
		onChosen(uri.Path())
	}, w.window)
	d.Resize(fyne.NewSize(800, 560))
	d.Show()
}

func (w *MainWindow) showSchemaDialog() {
	NewSchemaDialog(&SchemaDialogConfig{
		Parent:      w.window,
		Text:        w.bridge.SchemaText(),
		Placeholder: resources.ExampleSchema,
		Submit:      w.bridge.ReplaceSchema,
	}).Show()
}

func (w *MainWindow) showHelp(title, page string) {
	text, err := resources.HelpText(page)
	if err != nil {
		w.logger.Error("Missing help page", "page", page, "error", err)
		return
	}
	content := widget.NewRichTextFromMarkdown(text)
	content.Wrapping = fyne.TextWrapWord
	d := dialog.NewCustom(title, "OK", content, w.window)
	d.Resize(fyne.NewSize(480, 360))
	d.Show()
}

// report shows the outcome of a command according to its severity.
func (w *MainWindow) report(err error) {
	n := noticeFor(err)
	switch n.severity {
	case severityNone:
	case severityInfo, severityWarning:
		dialog.ShowInformation(n.title, n.message, w.window)
	default:
		w.logger.Error("Command failed", "error", err)
		dialog.ShowError(err, w.window)
	}
}

// Show displays the window.
func (w *MainWindow) Show() {
	w.window.Show()
}

// Cleanup detaches the window from the bridge.
func (w *MainWindow) Cleanup() {
	w.cleanupOnce.Do(func() {
		if w.bridge != nil {
			w.bridge.SetCallbacks(nil)
		}
		w.logger.Info("Main window closed")
	})
}
