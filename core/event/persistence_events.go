package event

// OutputDirectoryChanged is published when annotations get a new destination.
type OutputDirectoryChanged struct {
	Path string
}

func NewOutputDirectoryChanged(path string) *OutputDirectoryChanged {
	return &OutputDirectoryChanged{Path: path}
}

func (e *OutputDirectoryChanged) EventName() string {
	return "OutputDirectoryChanged"
}

// AnnotationSaved is published after a record was written for an image.
type AnnotationSaved struct {
	ImageFilename string
	RecordPath    string
}

func NewAnnotationSaved(imageFilename, recordPath string) *AnnotationSaved {
	return &AnnotationSaved{ImageFilename: imageFilename, RecordPath: recordPath}
}

func (e *AnnotationSaved) EventName() string {
	return "AnnotationSaved"
}
