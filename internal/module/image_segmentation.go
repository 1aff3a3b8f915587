package module

import (
	"fmt"

	"github.com/banshee-data/cellmeasure/internal/measurement"
)

// DefaultImageSegmentationOutput is the output name used when none is set.
const DefaultImageSegmentationOutput = "ImageSegmentation"

// ImageSegmentation segments an image into objects and measures them.
type ImageSegmentation struct {
	ImageName  string
	OutputName string
	Segment    SegmentFunc
}

var _ Component = (*ImageSegmentation)(nil)

// NewImageSegmentation returns a component segmenting image with fn.
func NewImageSegmentation(image string, fn SegmentFunc) *ImageSegmentation {
	return &ImageSegmentation{
		ImageName:  image,
		OutputName: DefaultImageSegmentationOutput,
		Segment:    fn,
	}
}

func (m *ImageSegmentation) Name() string { return "ImageSegmentation" }

func (m *ImageSegmentation) Validate() error {
	switch {
	case m.ImageName == "":
		return fmt.Errorf("%w: image name is empty", ErrNotConfigured)
	case m.OutputName == "":
		return fmt.Errorf("%w: output objects name is empty", ErrNotConfigured)
	case m.Segment == nil:
		return fmt.Errorf("%w: no segmentation function", ErrNotConfigured)
	}
	return nil
}

func (m *ImageSegmentation) Run(ws *Workspace) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := produce(ws, segmentSource{image: m.ImageName, fn: m.Segment}, m.OutputName); err != nil {
		return err
	}
	return m.AddMeasurements(ws)
}

func (m *ImageSegmentation) AddMeasurements(ws *Workspace) error {
	return measureObjects(ws, m.OutputName, "")
}

func (m *ImageSegmentation) Categories(entity string) []string {
	switch entity {
	case measurement.Image:
		return []string{measurement.CategoryCount}
	case m.OutputName:
		return []string{measurement.CategoryLocation, measurement.CategoryNumber}
	}
	return nil
}

func (m *ImageSegmentation) Measurements(entity, category string) []string {
	switch {
	case entity == measurement.Image && category == measurement.CategoryCount:
		return []string{m.OutputName}
	case entity == m.OutputName && category == measurement.CategoryLocation:
		return []string{measurement.FeatureCenterX, measurement.FeatureCenterY, measurement.FeatureCenterZ}
	case entity == m.OutputName && category == measurement.CategoryNumber:
		return []string{measurement.FeatureObjectNumber}
	}
	return nil
}

func (m *ImageSegmentation) MeasurementColumns() []measurement.Column {
	return locationColumns(m.OutputName)
}
