package objects

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotFound is returned when no entity is registered under a name.
	ErrNotFound = errors.New("objects not found")
	// ErrDuplicateName is returned when a name is registered twice in one scene.
	ErrDuplicateName = errors.New("objects already registered")
	// ErrNoSegmentation is returned when an entity has no segmented matrix.
	ErrNoSegmentation = errors.New("objects have no segmented labels")
)

// ObjectSet is the per-scene namespace of segmentations.
// It is owned by a single scene and is not safe for concurrent use.
type ObjectSet struct {
	objects map[string]*Objects
}

// NewObjectSet returns an empty registry.
func NewObjectSet() *ObjectSet {
	return &ObjectSet{objects: make(map[string]*Objects)}
}

// Add registers o under name.
func (s *ObjectSet) Add(name string, o *Objects) error {
	if name == "" {
		return fmt.Errorf("objects name must not be empty")
	}
	if o == nil || !o.HasSegmented() {
		return fmt.Errorf("add %q: %w", name, ErrNoSegmentation)
	}
	if _, ok := s.objects[name]; ok {
		return fmt.Errorf("add %q: %w", name, ErrDuplicateName)
	}
	s.objects[name] = o
	return nil
}

// Get returns the entity registered under name.
func (s *ObjectSet) Get(name string) (*Objects, error) {
	o, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return o, nil
}

// Has reports whether name is registered.
func (s *ObjectSet) Has(name string) bool {
	_, ok := s.objects[name]
	return ok
}

// Names returns the registered names in sorted order.
func (s *ObjectSet) Names() []string {
	names := make([]string, 0, len(s.objects))
	for n := range s.objects {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered entities.
func (s *ObjectSet) Len() int { return len(s.objects) }
