package measurement

import (
	"fmt"
	"sort"
)

type key struct {
	entity  string
	feature string
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps every scene's measurements in memory.
// It is not safe for concurrent use.
type MemoryStore struct {
	scene  int
	scenes map[int]map[key][]float64
}

// NewMemoryStore returns an empty store positioned at scene 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scene:  1,
		scenes: make(map[int]map[key][]float64),
	}
}

// Write implements Store.
func (m *MemoryStore) Write(entity, feature string, values []float64) error {
	if err := validateWrite(entity, values); err != nil {
		return fmt.Errorf("write %s/%s: %w", entity, feature, err)
	}
	cur := m.scenes[m.scene]
	if cur == nil {
		cur = make(map[key][]float64)
		m.scenes[m.scene] = cur
	}
	k := key{entity, feature}
	if _, ok := cur[k]; ok {
		return fmt.Errorf("write %s/%s in scene %d: %w", entity, feature, m.scene, ErrDuplicateWrite)
	}
	cur[k] = append([]float64{}, values...)
	return nil
}

// Read implements Store.
func (m *MemoryStore) Read(entity, feature string) ([]float64, error) {
	return m.ReadScene(m.scene, entity, feature)
}

// ReadScene implements Store.
func (m *MemoryStore) ReadScene(scene int, entity, feature string) ([]float64, error) {
	v, ok := m.scenes[scene][key{entity, feature}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s in scene %d", ErrNotFound, entity, feature, scene)
	}
	return append([]float64{}, v...), nil
}

// Has implements Store.
func (m *MemoryStore) Has(entity, feature string) bool {
	_, ok := m.scenes[m.scene][key{entity, feature}]
	return ok
}

// Features implements Store.
func (m *MemoryStore) Features(entity string) []string {
	var out []string
	for k := range m.scenes[m.scene] {
		if k.entity == entity {
			out = append(out, k.feature)
		}
	}
	sort.Strings(out)
	return out
}

// Entities implements Store.
func (m *MemoryStore) Entities() []string {
	seen := make(map[string]struct{})
	for k := range m.scenes[m.scene] {
		seen[k.entity] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Scene implements Store.
func (m *MemoryStore) Scene() int { return m.scene }

// NextScene implements Store.
func (m *MemoryStore) NextScene() (int, error) {
	m.scene++
	return m.scene, nil
}

// Clear drops every scene and returns to scene 1.
func (m *MemoryStore) Clear() {
	m.scene = 1
	m.scenes = make(map[int]map[key][]float64)
}
