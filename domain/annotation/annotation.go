// Package annotation defines the per-image annotation record and the store
// that persists it next to other records in an output directory.
package annotation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FilenameKey is the record key holding the annotated image's base name.
const FilenameKey = "img_filename"

// Label is the value chosen for one attribute.
type Label struct {
	Attribute string
	Value     string
}

// Record is the persisted annotation of one image.
// Its JSON form is a flat object: img_filename first, then one key per attribute.
type Record struct {
	ImageFilename string
	Labels        []Label
}

// NewRecord builds a record for the image at imagePath.
func NewRecord(imagePath string, labels []Label) *Record {
	cp := make([]Label, len(labels))
	copy(cp, labels)
	return &Record{
		ImageFilename: filepath.Base(imagePath),
		Labels:        cp,
	}
}

// Get returns the stored label for an attribute.
func (r *Record) Get(attribute string) (string, bool) {
	for _, l := range r.Labels {
		if l.Attribute == attribute {
			return l.Value, true
		}
	}
	return "", false
}

// RecordName returns the record file name for an image: its base name with
// the extension replaced by ".json". Leading dots are part of the stem, so
// ".png" maps to ".png.json".
func RecordName(imagePath string) string {
	return recordStem(filepath.Base(imagePath)) + ".json"
}

func recordStem(base string) string {
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || strings.TrimLeft(base[:i], ".") == "" {
		return base
	}
	return base[:i]
}

// MarshalJSON writes img_filename first and attributes in record order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writePair(&buf, FilenameKey, r.ImageFilename); err != nil {
		return nil, err
	}
	for _, l := range r.Labels {
		if l.Attribute == FilenameKey {
			continue
		}
		buf.WriteByte(',')
		if err := writePair(&buf, l.Attribute, l.Value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writePair(buf *bytes.Buffer, key, value string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// UnmarshalJSON accepts any key order. Values that are not strings are skipped,
// and a missing img_filename is tolerated.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode annotation record: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("annotation record is not an object")
	}

	r.ImageFilename = ""
	r.Labels = r.Labels[:0]

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var s string
		if err := json.Unmarshal(raw[k], &s); err != nil {
			continue
		}
		if k == FilenameKey {
			r.ImageFilename = s
			continue
		}
		r.Labels = append(r.Labels, Label{Attribute: k, Value: s})
	}
	return nil
}

// Encode renders the record the way it is written to disk, indented by four spaces.
func (r *Record) Encode() ([]byte, error) {
	compact, err := r.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "    "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
