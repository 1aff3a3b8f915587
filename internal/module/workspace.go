package module

import (
	"errors"

	"github.com/banshee-data/cellmeasure/internal/images"
	"github.com/banshee-data/cellmeasure/internal/measurement"
	"github.com/banshee-data/cellmeasure/internal/objects"
)

// ErrNotConfigured is returned by Validate (and therefore Run) when a
// component is missing a required name or function.
var ErrNotConfigured = errors.New("component not configured")

// Workspace is everything a component can see while processing one scene.
type Workspace struct {
	Images       *images.ImageSet
	Objects      *objects.ObjectSet
	Measurements measurement.Store
}

// NewWorkspace returns a workspace with empty image and object sets
// writing into store.
func NewWorkspace(store measurement.Store) *Workspace {
	return &Workspace{
		Images:       images.NewImageSet(),
		Objects:      objects.NewObjectSet(),
		Measurements: store,
	}
}

// Component is a pipeline stage that produces objects and contributes
// measurements for them.
type Component interface {
	// Name identifies the component in logs.
	Name() string
	// Validate reports configuration errors before any scene is run.
	Validate() error
	// Run processes one scene: it registers the component's output
	// objects and writes their measurements.
	Run(ws *Workspace) error
	// Categories lists the measurement categories the component writes
	// for entity.
	Categories(entity string) []string
	// Measurements lists the features within category written for entity.
	Measurements(entity, category string) []string
	// MeasurementColumns describes every column the component writes.
	MeasurementColumns() []measurement.Column
}
