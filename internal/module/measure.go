package module

import (
	"fmt"
	"slices"

	"github.com/banshee-data/cellmeasure/internal/labels"
	"github.com/banshee-data/cellmeasure/internal/measurement"
	"github.com/banshee-data/cellmeasure/internal/objects"
)

// relation is one output object set to measure, optionally related to a
// parent object set.
type relation struct {
	input  string
	output string
	parent string
}

// measureObjects writes the location, number and count measurements of
// the objects registered under name and, when parent is non-empty, the
// parent/child lineage columns between them.
func measureObjects(ws *Workspace, name, parent string) error {
	obj, err := ws.Objects.Get(name)
	if err != nil {
		return err
	}
	seg := obj.Segmented()
	if seg == nil {
		return fmt.Errorf("measure %q: %w", name, objects.ErrNoSegmentation)
	}

	centroids, err := labels.Centroids(seg)
	if err != nil {
		return fmt.Errorf("measure %q: %w", name, err)
	}
	xs := make([]float64, len(centroids))
	ys := make([]float64, len(centroids))
	zs := make([]float64, len(centroids))
	numbers := make([]float64, len(centroids))
	for i, c := range centroids {
		xs[i], ys[i], zs[i] = c.X, c.Y, c.Z
		numbers[i] = float64(c.Label)
	}

	w := columnWriter{store: ws.Measurements}
	w.write(name, measurement.LocationCenterX, xs)
	w.write(name, measurement.LocationCenterY, ys)
	w.write(name, measurement.LocationCenterZ, zs)
	w.write(name, measurement.NumberObjectNumber, numbers)
	w.write(measurement.Image, measurement.CountFeature(name), []float64{float64(len(centroids))})
	if w.err != nil || parent == "" {
		return w.err
	}

	p, err := ws.Objects.Get(parent)
	if err != nil {
		return err
	}
	rel, err := p.RelateChildren(obj)
	if err != nil {
		return fmt.Errorf("relate %q to %q: %w", name, parent, err)
	}
	w.write(name, measurement.ParentFeature(parent), int32s(rel.Parents))
	counts := make([]float64, len(rel.ChildCounts))
	for i, n := range rel.ChildCounts {
		counts[i] = float64(n)
	}
	w.write(parent, measurement.ChildrenCountFeature(name), counts)
	return w.err
}

// columnWriter stops at the first failed write.
type columnWriter struct {
	store measurement.Store
	err   error
}

func (w *columnWriter) write(entity, feature string, values []float64) {
	if w.err != nil {
		return
	}
	if err := w.store.Write(entity, feature, values); err != nil {
		w.err = fmt.Errorf("write %s.%s: %w", entity, feature, err)
	}
}

func int32s(v []int32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// locationColumns are the per-object columns every component writes.
func locationColumns(output string) []measurement.Column {
	return []measurement.Column{
		{Entity: output, Feature: measurement.LocationCenterX, Type: measurement.ColumnFloat},
		{Entity: output, Feature: measurement.LocationCenterY, Type: measurement.ColumnFloat},
		{Entity: output, Feature: measurement.LocationCenterZ, Type: measurement.ColumnFloat},
		{Entity: output, Feature: measurement.NumberObjectNumber, Type: measurement.ColumnInteger},
		{Entity: measurement.Image, Feature: measurement.CountFeature(output), Type: measurement.ColumnInteger},
	}
}

func lineageColumns(output, parent string) []measurement.Column {
	return []measurement.Column{
		{Entity: parent, Feature: measurement.ChildrenCountFeature(output), Type: measurement.ColumnInteger},
		{Entity: output, Feature: measurement.ParentFeature(parent), Type: measurement.ColumnInteger},
	}
}

// appendUnique appends the values of add not already in dst.
func appendUnique(dst []string, add ...string) []string {
	for _, s := range add {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
