package presentation

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"multilabel-go/core/event"
)

// labelSelect is a Select that hands navigation keys to the window while it
// has keyboard focus.
type labelSelect struct {
	widget.Select
	onKey func(*fyne.KeyEvent) bool
}

func newLabelSelect(options []string, changed func(string), onKey func(*fyne.KeyEvent) bool) *labelSelect {
	s := &labelSelect{onKey: onKey}
	s.Options = options
	s.OnChanged = changed
	s.PlaceHolder = "(Select one)"
	s.ExtendBaseWidget(s)
	return s
}

// TypedKey forwards keys onKey consumes and leaves the rest to the Select.
func (s *labelSelect) TypedKey(e *fyne.KeyEvent) {
	if s.onKey != nil && s.onKey(e) {
		return
	}
	s.Select.TypedKey(e)
}

// AttributePanel shows one label selector per schema attribute.
type AttributePanel struct {
	box      *fyne.Container
	scroll   *container.Scroll
	selects  map[string]*labelSelect
	order    []string
	updating bool
	onSelect func(attribute, label string)
	onKey    func(*fyne.KeyEvent) bool
}

// NewAttributePanel creates an empty panel. onSelect is called when the user
// picks a label; onKey sees keys typed while a selector is focused and
// returns true for the ones it handled.
func NewAttributePanel(onSelect func(attribute, label string), onKey func(*fyne.KeyEvent) bool) *AttributePanel {
	p := &AttributePanel{
		box:      container.NewVBox(),
		selects:  make(map[string]*labelSelect),
		onSelect: onSelect,
		onKey:    onKey,
	}
	p.scroll = container.NewVScroll(p.box)
	return p
}

// Object returns the canvas object to place in a layout.
func (p *AttributePanel) Object() fyne.CanvasObject {
	return p.scroll
}

// Rebuild replaces all selectors. Each starts at its first label.
func (p *AttributePanel) Rebuild(attributes []event.AttributeOptions) {
	p.updating = true
	defer func() { p.updating = false }()

	p.box.RemoveAll()
	p.selects = make(map[string]*labelSelect, len(attributes))
	p.order = p.order[:0]

	for _, attr := range attributes {
		name := attr.Name
		sel := newLabelSelect(attr.Labels, func(label string) {
			if p.updating || p.onSelect == nil {
				return
			}
			p.onSelect(name, label)
		}, p.onKey)
		if len(attr.Labels) > 0 {
			sel.SetSelectedIndex(0)
		}

		p.selects[name] = sel
		p.order = append(p.order, name)
		p.box.Add(container.NewBorder(nil, nil, widget.NewLabel(name+":"), nil, sel))
	}
	p.box.Refresh()
}

// Apply shows the given choices without reporting them back through onSelect.
func (p *AttributePanel) Apply(choices []event.Choice) {
	p.updating = true
	defer func() { p.updating = false }()

	for _, c := range choices {
		if sel, ok := p.selects[c.Attribute]; ok && sel.Selected != c.Label {
			sel.SetSelected(c.Label)
		}
	}
}

// Selected returns the label shown for an attribute.
func (p *AttributePanel) Selected(attribute string) (string, bool) {
	sel, ok := p.selects[attribute]
	if !ok {
		return "", false
	}
	return sel.Selected, true
}

// Attributes returns the attribute names in display order.
func (p *AttributePanel) Attributes() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}
