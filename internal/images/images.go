// Package images holds the per-scene image set: source pixel arrays
// looked up by name by image-derived segmentations.
package images

import (
	"errors"
	"fmt"
	"sort"

	"github.com/banshee-data/cellmeasure/internal/labels"
)

// ErrNotFound is returned when no image is registered under a name.
var ErrNotFound = errors.New("image not found")

// ImageSet maps image names to pixel arrays for one scene.
type ImageSet struct {
	images map[string]*labels.Image
}

// NewImageSet returns an empty image set.
func NewImageSet() *ImageSet {
	return &ImageSet{images: make(map[string]*labels.Image)}
}

// Add registers img under name, replacing any previous image.
func (s *ImageSet) Add(name string, img *labels.Image) error {
	if name == "" {
		return fmt.Errorf("image name must not be empty")
	}
	if img == nil {
		return fmt.Errorf("add image %q: nil image", name)
	}
	s.images[name] = img
	return nil
}

// Get returns the image registered under name.
func (s *ImageSet) Get(name string) (*labels.Image, error) {
	img, ok := s.images[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return img, nil
}

// Names returns the registered image names in sorted order.
func (s *ImageSet) Names() []string {
	names := make([]string, 0, len(s.images))
	for n := range s.images {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
