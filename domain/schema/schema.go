// Package schema defines the attribute schema that drives labeling:
// each attribute offers an ordered, non-empty list of labels.
package schema

// Attribute is a named property of an image and the labels it may take.
type Attribute struct {
	// Name is unique within a schema
	Name string

	// Labels are the selectable options in display order; never empty
	Labels []string
}

// Default returns the label preselected for the attribute.
func (a Attribute) Default() string {
	return a.Labels[0]
}

// Has reports whether label is one of the attribute's options.
func (a Attribute) Has(label string) bool {
	for _, l := range a.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Schema is an immutable, ordered set of attributes.
type Schema struct {
	attributes []Attribute
	index      map[string]int
}

// Empty returns a schema with no attributes.
func Empty() *Schema {
	return &Schema{index: make(map[string]int)}
}

// New builds a schema from attributes, copying the input.
// Callers are expected to have validated names and labels; use Parse for user input.
func New(attributes []Attribute) *Schema {
	s := &Schema{
		attributes: make([]Attribute, len(attributes)),
		index:      make(map[string]int, len(attributes)),
	}
	for i, a := range attributes {
		labels := make([]string, len(a.Labels))
		copy(labels, a.Labels)
		s.attributes[i] = Attribute{Name: a.Name, Labels: labels}
		s.index[a.Name] = i
	}
	return s
}

// Len returns the number of attributes.
func (s *Schema) Len() int {
	return len(s.attributes)
}

// Attributes returns a copy of the attributes in schema order.
func (s *Schema) Attributes() []Attribute {
	out := make([]Attribute, len(s.attributes))
	copy(out, s.attributes)
	return out
}

// Names returns the attribute names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.attributes))
	for i, a := range s.attributes {
		names[i] = a.Name
	}
	return names
}

// Attribute looks up an attribute by name.
func (s *Schema) Attribute(name string) (Attribute, bool) {
	i, ok := s.index[name]
	if !ok {
		return Attribute{}, false
	}
	return s.attributes[i], true
}

// Has reports whether the schema defines the attribute.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Contains reports whether label is a valid option of the named attribute.
func (s *Schema) Contains(name, label string) bool {
	a, ok := s.Attribute(name)
	return ok && a.Has(label)
}

// Defaults maps every attribute to its first label.
func (s *Schema) Defaults() map[string]string {
	defaults := make(map[string]string, len(s.attributes))
	for _, a := range s.attributes {
		defaults[a.Name] = a.Default()
	}
	return defaults
}
