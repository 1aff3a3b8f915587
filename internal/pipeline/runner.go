package pipeline

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/cellmeasure/internal/labels"
	"github.com/banshee-data/cellmeasure/internal/measurement"
	"github.com/banshee-data/cellmeasure/internal/module"
	"github.com/banshee-data/cellmeasure/internal/monitoring"
	"github.com/banshee-data/cellmeasure/internal/objects"
	"github.com/banshee-data/cellmeasure/internal/timeutil"
)

// ErrNoComponents is returned by NewRunner when given nothing to run.
var ErrNoComponents = errors.New("pipeline has no components")

// SceneIdentifier is implemented by stores that assign their own scene IDs.
type SceneIdentifier interface {
	SceneID() string
}

// Scene is the input of one run: named images and named segmentations.
type Scene struct {
	Images  map[string]*labels.Image
	Objects map[string]*labels.Labels
}

// StageTiming records how long one component took.
type StageTiming struct {
	Component string
	Elapsed   time.Duration
}

// SceneResult is the outcome of one RunScene call.
type SceneResult struct {
	ID        string
	Number    int
	Workspace *module.Workspace
	Timings   []StageTiming
}

// Runner runs an ordered list of components over successive scenes,
// writing every scene's measurements to one store.
type Runner struct {
	store      measurement.Store
	components []module.Component
	clock      timeutil.Clock
	started    bool
}

// NewRunner validates every component and returns a runner writing to store.
func NewRunner(store measurement.Store, components ...module.Component) (*Runner, error) {
	if len(components) == 0 {
		return nil, ErrNoComponents
	}
	for _, c := range components {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name(), err)
		}
	}
	return &Runner{store: store, components: components, clock: timeutil.RealClock{}}, nil
}

// SetClock replaces the clock used for component timings.
func (r *Runner) SetClock(c timeutil.Clock) { r.clock = c }

// Store returns the store the runner writes to.
func (r *Runner) Store() measurement.Store { return r.store }

// Columns lists every measurement column the runner's components write,
// in component order.
func (r *Runner) Columns() []measurement.Column {
	var cols []measurement.Column
	for _, c := range r.components {
		cols = append(cols, c.MeasurementColumns()...)
	}
	return cols
}

// RunScene processes one scene. The first call writes to the store's
// current scene; each later call advances the store first. The context
// is checked before each component.
func (r *Runner) RunScene(ctx context.Context, scene Scene) (*SceneResult, error) {
	if r.started {
		if _, err := r.store.NextScene(); err != nil {
			return nil, fmt.Errorf("advance scene: %w", err)
		}
	}
	r.started = true

	ws := module.NewWorkspace(r.store)
	for _, name := range slices.Sorted(maps.Keys(scene.Images)) {
		if err := ws.Images.Add(name, scene.Images[name]); err != nil {
			return nil, fmt.Errorf("image %q: %w", name, err)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(scene.Objects)) {
		o, err := objects.FromSegmented(scene.Objects[name])
		if err != nil {
			return nil, fmt.Errorf("objects %q: %w", name, err)
		}
		if err := ws.Objects.Add(name, o); err != nil {
			return nil, err
		}
	}

	res := &SceneResult{
		ID:        sceneID(r.store),
		Number:    r.store.Scene(),
		Workspace: ws,
	}
	log := monitoring.Logger.With("scene", res.Number, "scene_id", res.ID)

	start := r.clock.Now()
	for _, c := range r.components {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		t0 := r.clock.Now()
		if err := c.Run(ws); err != nil {
			log.Error("component failed", "component", c.Name(), "err", err)
			return res, fmt.Errorf("scene %d: %s: %w", res.Number, c.Name(), err)
		}
		elapsed := r.clock.Since(t0)
		res.Timings = append(res.Timings, StageTiming{Component: c.Name(), Elapsed: elapsed})
		log.Debug("component done", "component", c.Name(), "elapsed", elapsed)
	}
	log.Info("scene measured", "objects", ws.Objects.Len(), "elapsed", r.clock.Since(start))
	return res, nil
}

func sceneID(store measurement.Store) string {
	if s, ok := store.(SceneIdentifier); ok {
		return s.SceneID()
	}
	return uuid.New().String()
}
