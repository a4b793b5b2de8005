// Package imageset builds the ordered list of images found in a folder.
package imageset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Extensions are the recognized raster image extensions, lower case, without dot.
var Extensions = []string{"jpg", "jpeg", "png", "bmp", "tif", "tiff"}

// pattern matches a lower-cased base name against Extensions.
var pattern = "*.{" + strings.Join(Extensions, ",") + "}"

// IsImage reports whether name has a recognized image extension, ignoring case.
func IsImage(name string) bool {
	matched, err := doublestar.Match(pattern, strings.ToLower(filepath.Base(name)))
	return err == nil && matched
}

// Set is an immutable, ordered list of absolute image paths.
type Set struct {
	folder string
	paths  []string
}

// Scan lists folder non-recursively and keeps the files with image extensions.
// Paths are absolute and sorted lexicographically so navigation order is stable.
func Scan(folder string) (*Set, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve folder %s: %w", folder, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", abs, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(abs, entry.Name()))
	}
	sort.Strings(paths)

	return &Set{folder: abs, paths: paths}, nil
}

// Folder returns the scanned folder.
func (s *Set) Folder() string {
	return s.folder
}

// Len returns the number of images.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// IsEmpty reports whether no image was found.
func (s *Set) IsEmpty() bool {
	return s.Len() == 0
}

// At returns the path at index i.
func (s *Set) At(i int) string {
	return s.paths[i]
}
