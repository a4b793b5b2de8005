package command

// Advance saves the current image and moves to the next one.
type Advance struct{}

func (c *Advance) CommandName() string {
	return "Advance"
}

// Retreat saves the current image and moves to the previous one.
type Retreat struct{}

func (c *Retreat) CommandName() string {
	return "Retreat"
}

// SelectLabel picks a label for one attribute of the current image.
type SelectLabel struct {
	Attribute string
	Label     string
}

func NewSelectLabel(attribute, label string) *SelectLabel {
	return &SelectLabel{Attribute: attribute, Label: label}
}

func (c *SelectLabel) CommandName() string {
	return "SelectLabel"
}

// ZoomStep zooms the image by one discrete step (menu or keyboard).
type ZoomStep struct {
	In bool
}

func (c *ZoomStep) CommandName() string {
	return "ZoomStep"
}

// ZoomWheel zooms the image by one mouse wheel tick.
type ZoomWheel struct {
	In bool
}

func (c *ZoomWheel) CommandName() string {
	return "ZoomWheel"
}
