package presentation

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// SchemaDialog lets the user edit the attribute schema as JSON text.
// It stays open until the text is accepted or the user cancels.
type SchemaDialog struct {
	dialog *dialog.CustomDialog
	entry  *widget.Entry
	parent fyne.Window
	submit func(text string) error
}

// SchemaDialogConfig holds configuration for SchemaDialog.
type SchemaDialogConfig struct {
	Parent      fyne.Window
	Text        string
	Placeholder string
	// Submit applies the text; a non-nil error keeps the dialog open
	Submit func(text string) error
}

// NewSchemaDialog creates the dialog without showing it.
func NewSchemaDialog(cfg *SchemaDialogConfig) *SchemaDialog {
	d := &SchemaDialog{
		entry:  widget.NewMultiLineEntry(),
		parent: cfg.Parent,
		submit: cfg.Submit,
	}

	d.entry.SetPlaceHolder(cfg.Placeholder)
	if cfg.Text != "{}" {
		d.entry.SetText(cfg.Text)
	}
	d.entry.Wrapping = fyne.TextWrapOff

	hint := widget.NewLabel("Enter a JSON object mapping each attribute to its labels.")
	content := container.NewBorder(hint, nil, nil, nil, d.entry)

	d.dialog = dialog.NewCustomWithoutButtons("Edit Labels", content, cfg.Parent)

	cancel := widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), d.dialog.Hide)
	ok := widget.NewButtonWithIcon("OK", theme.ConfirmIcon(), d.accept)
	ok.Importance = widget.HighImportance
	d.dialog.SetButtons([]fyne.CanvasObject{cancel, ok})
	d.dialog.Resize(fyne.NewSize(560, 420))

	return d
}

// Show displays the dialog and focuses the editor.
func (d *SchemaDialog) Show() {
	d.dialog.Show()
	d.parent.Canvas().Focus(d.entry)
}

func (d *SchemaDialog) accept() {
	if err := d.submit(d.entry.Text); err != nil {
		n := noticeFor(err)
		dialog.ShowInformation(n.title, n.message, d.parent)
		return
	}
	d.dialog.Hide()
}
