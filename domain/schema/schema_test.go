package schema

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantNames []string
	}{
		{"single attribute", `{"color":["red","blue"]}`, []string{"color"}},
		{"keeps source order", `{"zeta":["a"],"alpha":["b"],"mid":["c"]}`, []string{"zeta", "alpha", "mid"}},
		{"empty object", `{}`, []string{}},
		{"surrounding whitespace", "\n  {\"size\": [\"small\"]}  \n", []string{"size"}},
		{"unicode names", `{"颜色":["红","绿"]}`, []string{"颜色"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := s.Names(); !reflect.DeepEqual(got, tt.wantNames) {
				t.Errorf("Names() = %v, want %v", got, tt.wantNames)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty text", ""},
		{"whitespace", "   "},
		{"malformed", `{"color":["red"`},
		{"trailing comma", `{"color":["red"],}`},
		{"top level array", `["red","blue"]`},
		{"top level string", `"color"`},
		{"value not array", `{"color":"red"}`},
		{"value null", `{"color":null}`},
		{"non-string label", `{"color":["red",1]}`},
		{"empty label list", `{"color":[]}`},
		{"duplicate attribute", `{"color":["red"],"color":["blue"]}`},
		{"trailing data", `{"color":["red"]} {}`},
		{"reserved name", `{"img_filename":["a.jpg"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidFormat", tt.text, err)
			}
		})
	}
}

func TestSchema_Lookups(t *testing.T) {
	s, err := Parse(`{"color":["red","green","blue"],"shape":["round","square"]}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Has("shape") || s.Has("size") {
		t.Error("Has() mismatch")
	}
	if !s.Contains("color", "green") {
		t.Error("Contains(color, green) = false, want true")
	}
	if s.Contains("color", "round") {
		t.Error("Contains(color, round) = true, want false")
	}
	if s.Contains("size", "big") {
		t.Error("Contains on unknown attribute should be false")
	}

	want := map[string]string{"color": "red", "shape": "round"}
	if got := s.Defaults(); !reflect.DeepEqual(got, want) {
		t.Errorf("Defaults() = %v, want %v", got, want)
	}

	attr, ok := s.Attribute("shape")
	if !ok || attr.Default() != "round" {
		t.Errorf("Attribute(shape) = %+v, %v", attr, ok)
	}
}

func TestSchema_AttributesIsCopy(t *testing.T) {
	s := New([]Attribute{{Name: "color", Labels: []string{"red"}}})

	attrs := s.Attributes()
	attrs[0].Name = "mutated"

	if s.Names()[0] != "color" {
		t.Error("mutating Attributes() result changed the schema")
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	original, err := Parse(`{"b":["x","y"],"a":["z"]}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	reparsed, err := Parse(Format(original))
	if err != nil {
		t.Fatalf("Parse(Format()) error = %v", err)
	}
	if !reflect.DeepEqual(reparsed.Attributes(), original.Attributes()) {
		t.Errorf("round trip = %v, want %v", reparsed.Attributes(), original.Attributes())
	}

	if got := Format(Empty()); got != "{}" {
		t.Errorf("Format(Empty()) = %q, want {}", got)
	}
}

func TestStore_LoadDefault(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		store := NewStore(nil)
		s := store.LoadDefault(filepath.Join(dir, "missing.json"))
		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		store := NewStore(nil)
		if s := store.LoadDefault(path); s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "attribute_labels.json")
		if err := os.WriteFile(path, []byte(`{"color":["red","blue"]}`), 0o644); err != nil {
			t.Fatal(err)
		}
		store := NewStore(nil)
		store.LoadDefault(path)
		if !store.Current().Contains("color", "blue") {
			t.Error("loaded schema missing color/blue")
		}
	})
}

func TestStore_Replace(t *testing.T) {
	store := NewStore(nil)
	if _, err := store.Replace(`{"color":["red","blue"]}`); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	before := store.Current()

	_, err := store.Replace(`{"color": oops}`)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Replace() error = %v, want ErrInvalidFormat", err)
	}
	if store.Current() != before {
		t.Error("failed Replace changed the current schema")
	}

	if _, err := store.Replace(`{"shape":["round"]}`); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if store.Current().Has("color") {
		t.Error("Replace merged instead of replacing")
	}
}
