// Package samples serves the small fixed set of pre-supplied IR images used
// for demonstration detections.
package samples

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound marks an unknown sample id.
var ErrNotFound = errors.New("sample not found")

// Info describes one catalog entry.
type Info struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ExpectedRisk string `json:"risk_level"`
}

// catalog is the fixed sample set; ids double as the image file base names.
var catalog = []Info{
	{
		ID:           "normal",
		Name:         "Normal Conditions",
		Description:  "Clear skies with minimal cloud cover",
		ExpectedRisk: "low",
	},
	{
		ID:           "developing",
		Name:         "Developing Cluster",
		Description:  "Organized cloud formation with moderate convection",
		ExpectedRisk: "moderate",
	},
	{
		ID:           "cyclone",
		Name:         "Cyclone Formation",
		Description:  "Deep convective system with spiral structure",
		ExpectedRisk: "high",
	},
}

// Store reads sample images from a directory. The catalog is fixed; only the
// image bytes live on disk.
type Store struct {
	dir string
}

// NewStore creates a store over the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// List returns the sample catalog.
func (s *Store) List() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the raw image bytes for a sample id, trying the common raster
// extensions in order.
func (s *Store) Get(id string) ([]byte, error) {
	if !s.known(id) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		data, err := os.ReadFile(filepath.Join(s.dir, id+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read sample %q: %w", id, err)
		}
	}
	return nil, fmt.Errorf("%w: no image file for %q in %s", ErrNotFound, id, s.dir)
}

func (s *Store) known(id string) bool {
	for _, info := range catalog {
		if info.ID == id {
			return true
		}
	}
	return false
}
