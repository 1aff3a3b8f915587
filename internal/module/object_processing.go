package module

import (
	"fmt"

	"github.com/banshee-data/cellmeasure/internal/measurement"
	"github.com/banshee-data/cellmeasure/internal/objects"
)

// DefaultObjectProcessingOutput is the output name of a freshly
// constructed ObjectProcessing.
const DefaultObjectProcessingOutput = "ObjectProcessing"

// ObjectPair names an extra input/output pair processed alongside the
// primary one. The output is related to its own input.
type ObjectPair struct {
	Input  string
	Output string
}

// ObjectProcessing derives a new object set from an existing one and
// measures it. With the default identity transform the output is a copy
// of the input and every output object is its own input object's child.
type ObjectProcessing struct {
	InputName  string
	OutputName string
	// ParentName relates the primary output to a parent object set.
	// Empty disables the Parent and Children columns.
	ParentName string
	Additional []ObjectPair
	// Transform is applied to every input; nil means Identity.
	Transform TransformFunc
}

var _ Component = (*ObjectProcessing)(nil)

// NewObjectProcessing returns a component reading input, writing
// DefaultObjectProcessingOutput and relating the output back to input.
func NewObjectProcessing(input string) *ObjectProcessing {
	return &ObjectProcessing{
		InputName:  input,
		OutputName: DefaultObjectProcessingOutput,
		ParentName: input,
	}
}

func (m *ObjectProcessing) Name() string { return "ObjectProcessing" }

func (m *ObjectProcessing) relations() []relation {
	out := make([]relation, 0, 1+len(m.Additional))
	out = append(out, relation{input: m.InputName, output: m.OutputName, parent: m.ParentName})
	for _, p := range m.Additional {
		out = append(out, relation{input: p.Input, output: p.Output, parent: p.Input})
	}
	return out
}

// Validate checks every pair names both sides and that no output name is
// produced twice or shadows an input.
func (m *ObjectProcessing) Validate() error {
	inputs := make(map[string]bool)
	for _, r := range m.relations() {
		if r.input == "" {
			return fmt.Errorf("%w: input objects name is empty", ErrNotConfigured)
		}
		inputs[r.input] = true
	}
	outputs := make(map[string]bool)
	for _, r := range m.relations() {
		switch {
		case r.output == "":
			return fmt.Errorf("%w: output objects name for %q is empty", ErrNotConfigured, r.input)
		case outputs[r.output]:
			return fmt.Errorf("%w: output objects %q named twice", ErrNotConfigured, r.output)
		case inputs[r.output]:
			return fmt.Errorf("%w: output objects %q is also an input", ErrNotConfigured, r.output)
		}
		outputs[r.output] = true
	}
	return nil
}

func (m *ObjectProcessing) transform() TransformFunc {
	if m.Transform == nil {
		return Identity
	}
	return m.Transform
}

// Run produces every output object set and writes its measurements.
// Outputs are registered only once all of them were produced, so a
// failing pair leaves the workspace untouched.
func (m *ObjectProcessing) Run(ws *Workspace) error {
	if err := m.Validate(); err != nil {
		return err
	}
	rels := m.relations()
	produced := make([]*objects.Objects, len(rels))
	for i, r := range rels {
		o, err := transformSource{input: r.input, fn: m.transform()}.Objects(ws)
		if err != nil {
			return err
		}
		if ws.Objects.Has(r.output) {
			return fmt.Errorf("add %q: %w", r.output, objects.ErrDuplicateName)
		}
		produced[i] = o
	}
	for i, r := range rels {
		if err := ws.Objects.Add(r.output, produced[i]); err != nil {
			return err
		}
	}
	return m.AddMeasurements(ws)
}

// AddMeasurements writes the measurements of outputs already present in
// the workspace.
func (m *ObjectProcessing) AddMeasurements(ws *Workspace) error {
	for _, r := range m.relations() {
		if err := measureObjects(ws, r.output, r.parent); err != nil {
			return err
		}
	}
	return nil
}

func (m *ObjectProcessing) Categories(entity string) []string {
	var out []string
	for _, r := range m.relations() {
		switch entity {
		case measurement.Image:
			out = appendUnique(out, measurement.CategoryCount)
		case r.output:
			out = appendUnique(out, measurement.CategoryLocation, measurement.CategoryNumber)
			if r.parent != "" {
				out = appendUnique(out, measurement.CategoryParent)
			}
		}
		if r.parent != "" && entity == r.parent {
			out = appendUnique(out, measurement.CategoryChildren)
		}
	}
	return out
}

func (m *ObjectProcessing) Measurements(entity, category string) []string {
	var out []string
	for _, r := range m.relations() {
		switch {
		case entity == measurement.Image && category == measurement.CategoryCount:
			out = appendUnique(out, r.output)
		case entity == r.output && category == measurement.CategoryLocation:
			out = appendUnique(out, measurement.FeatureCenterX, measurement.FeatureCenterY, measurement.FeatureCenterZ)
		case entity == r.output && category == measurement.CategoryNumber:
			out = appendUnique(out, measurement.FeatureObjectNumber)
		case entity == r.output && category == measurement.CategoryParent && r.parent != "":
			out = appendUnique(out, r.parent)
		case r.parent != "" && entity == r.parent && category == measurement.CategoryChildren:
			out = appendUnique(out, r.output+"_Count")
		}
	}
	return out
}

// MeasurementColumns lists per pair: location, object number, image
// count, then the children count on the parent and the parent column on
// the output.
func (m *ObjectProcessing) MeasurementColumns() []measurement.Column {
	var cols []measurement.Column
	for _, r := range m.relations() {
		cols = append(cols, locationColumns(r.output)...)
		if r.parent != "" {
			cols = append(cols, lineageColumns(r.output, r.parent)...)
		}
	}
	return cols
}
