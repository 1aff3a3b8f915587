package measurement

import "errors"

var (
	// ErrNotFound is returned when a feature has no values in the current scene.
	ErrNotFound = errors.New("measurement not found")
	// ErrDuplicateWrite is returned when a feature is written twice in one scene.
	ErrDuplicateWrite = errors.New("measurement already written for this scene")
	// ErrImageValueCount is returned when an image-level write is not a single value.
	ErrImageValueCount = errors.New("image measurements hold exactly one value per scene")
)

// Store is an append-only columnar store of measurements keyed by entity
// and feature name. Values for per-object features are ordered by
// ascending object identifier.
//
// A Store is owned by one scene at a time: implementations do not
// serialise concurrent writers to the same entity and feature.
type Store interface {
	// Write records the values of one feature for the current scene.
	Write(entity, feature string, values []float64) error
	// Read returns the current scene's values of one feature.
	Read(entity, feature string) ([]float64, error)
	// ReadScene returns the values recorded for an earlier scene.
	ReadScene(scene int, entity, feature string) ([]float64, error)
	// Has reports whether the feature was written in the current scene.
	Has(entity, feature string) bool
	// Features lists the features written for entity in the current
	// scene, sorted by name.
	Features(entity string) []string
	// Entities lists the entities with any feature in the current scene.
	Entities() []string
	// Scene returns the current 1-based scene number.
	Scene() int
	// NextScene advances to a fresh scene and returns its number.
	NextScene() (int, error)
}

func validateWrite(entity string, values []float64) error {
	if entity == Image && len(values) != 1 {
		return ErrImageValueCount
	}
	return nil
}
