package module

import (
	"fmt"
	"math"

	"github.com/banshee-data/cellmeasure/internal/labels"
	"github.com/banshee-data/cellmeasure/internal/objects"
)

// TransformFunc derives a label matrix from an existing one. The result
// must have the input's shape.
type TransformFunc func(*labels.Labels) (*labels.Labels, error)

// SegmentFunc derives a label matrix from an image. The result must
// match the image's two spatial axes.
type SegmentFunc func(*labels.Image) (*labels.Labels, error)

// Identity returns its input unchanged.
func Identity(l *labels.Labels) (*labels.Labels, error) { return l, nil }

// Renumber renumbers objects consecutively from 1.
func Renumber(l *labels.Labels) (*labels.Labels, error) { return labels.Relabel(l), nil }

// IntensityLabels reads a label-valued image: every pixel of the first
// channel, rounded to the nearest integer, is an object identifier.
func IntensityLabels(img *labels.Image) (*labels.Labels, error) {
	if img.NDim() < 2 {
		return nil, fmt.Errorf("%w: image shape %s", labels.ErrDimensionality, labels.ShapeString(img.Shape))
	}
	rows, cols := img.Shape[0], img.Shape[1]
	channels := img.Size() / max(rows*cols, 1)
	out := labels.New[int32](rows, cols)
	for i := range out.Data {
		v := math.Round(img.Data[i*channels])
		switch {
		case math.IsNaN(v):
			return nil, fmt.Errorf("%w: pixel %d is NaN", labels.ErrLabelRange, i)
		case v < 0:
			return nil, fmt.Errorf("%w: pixel value %g", labels.ErrNegativeLabel, v)
		case v > math.MaxInt32:
			return nil, fmt.Errorf("%w: pixel value %g exceeds %d", labels.ErrLabelRange, v, math.MaxInt32)
		}
		out.Data[i] = int32(v)
	}
	return out, nil
}

// LabelSource produces the output objects of a component for one scene.
type LabelSource interface {
	Objects(ws *Workspace) (*objects.Objects, error)
}

// transformSource applies a TransformFunc to a named object set.
type transformSource struct {
	input string
	fn    TransformFunc
}

func (s transformSource) Objects(ws *Workspace) (*objects.Objects, error) {
	in, err := ws.Objects.Get(s.input)
	if err != nil {
		return nil, err
	}
	x := in.Segmented()
	if x == nil {
		return nil, fmt.Errorf("input %q: %w", s.input, objects.ErrNoSegmentation)
	}

	y, err := s.fn(x)
	if err != nil {
		return nil, fmt.Errorf("transform %q: %w", s.input, err)
	}
	if y == nil {
		return nil, fmt.Errorf("transform %q: %w", s.input, objects.ErrNoSegmentation)
	}
	if err := labels.CheckConsistency(y, x, nil); err != nil {
		return nil, fmt.Errorf("transform %q: %w", s.input, err)
	}

	out := objects.New()
	if err := out.SetSegmented(y); err != nil {
		return nil, err
	}
	if err := out.SetUnedited(x); err != nil {
		return nil, err
	}
	out.ParentImageName = in.ParentImageName
	return out, nil
}

// segmentSource applies a SegmentFunc to a named image.
type segmentSource struct {
	image string
	fn    SegmentFunc
}

func (s segmentSource) Objects(ws *Workspace) (*objects.Objects, error) {
	img, err := ws.Images.Get(s.image)
	if err != nil {
		return nil, err
	}

	y, err := s.fn(img)
	if err != nil {
		return nil, fmt.Errorf("segment %q: %w", s.image, err)
	}
	if y == nil {
		return nil, fmt.Errorf("segment %q: %w", s.image, objects.ErrNoSegmentation)
	}
	if err := labels.CheckConsistency(y, nil, nil); err != nil {
		return nil, fmt.Errorf("segment %q: %w", s.image, err)
	}
	if img.NDim() < 2 || !labels.SameShape(y.Shape, img.Shape[:2]) {
		return nil, fmt.Errorf("segment %q: %w: labels %s for image %s", s.image,
			labels.ErrShapeMismatch, labels.ShapeString(y.Shape), labels.ShapeString(img.Shape))
	}

	out := objects.New()
	if err := out.SetSegmented(y); err != nil {
		return nil, err
	}
	out.ParentImageName = s.image
	return out, nil
}

// produce runs src and registers the result under name.
func produce(ws *Workspace, src LabelSource, name string) error {
	o, err := src.Objects(ws)
	if err != nil {
		return err
	}
	return ws.Objects.Add(name, o)
}
