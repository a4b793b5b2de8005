package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidFormat is returned when schema text is not a JSON object mapping
// attribute names to non-empty arrays of label strings.
var ErrInvalidFormat = errors.New("invalid schema format")

// ReservedName cannot be used as an attribute: annotation records store the
// image file name under it.
const ReservedName = "img_filename"

// Parse decodes schema text, keeping attributes in the order they appear.
func Parse(text string) (*Schema, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidFormat)
	}

	dec := json.NewDecoder(strings.NewReader(text))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var attributes []Attribute
	seen := make(map[string]bool)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, invalid(err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrInvalidFormat, tok)
		}
		if name == ReservedName {
			return nil, fmt.Errorf("%w: attribute name %q is reserved", ErrInvalidFormat, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate attribute %q", ErrInvalidFormat, name)
		}
		seen[name] = true

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, invalid(err)
		}
		labels, err := decodeLabels(name, raw)
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, Attribute{Name: name, Labels: labels})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after schema object", ErrInvalidFormat)
	}

	return New(attributes), nil
}

func decodeLabels(name string, raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: attribute %q must map to an array of labels", ErrInvalidFormat, name)
	}

	var labels []string
	if err := json.Unmarshal(trimmed, &labels); err != nil {
		return nil, fmt.Errorf("%w: attribute %q labels must be strings", ErrInvalidFormat, name)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: attribute %q has no labels", ErrInvalidFormat, name)
	}
	return labels, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return invalid(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrInvalidFormat, want, tok)
	}
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
}

// Format renders the schema as indented JSON, attributes in schema order.
// The output parses back to an equal schema.
func Format(s *Schema) string {
	if s == nil || s.Len() == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteString("{\n")
	for i, a := range s.attributes {
		name, _ := json.Marshal(a.Name)
		labels, _ := json.Marshal(a.Labels)
		b.WriteString("    ")
		b.Write(name)
		b.WriteString(": ")
		b.Write(labels)
		if i < len(s.attributes)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
