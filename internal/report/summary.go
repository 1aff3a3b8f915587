package report

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/cellmeasure/internal/measurement"
)

// Summary describes the distribution of one feature's values in the
// current scene. NaN values are left out.
type Summary struct {
	Entity  string
	Feature string
	N       int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

// Summarize returns a summary of every feature written for entity.
func Summarize(store measurement.Store, entity string) ([]Summary, error) {
	features := store.Features(entity)
	out := make([]Summary, 0, len(features))
	for _, f := range features {
		values, err := store.Read(entity, f)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(entity, f, values))
	}
	return out, nil
}

func summarize(entity, feature string, values []float64) Summary {
	s := Summary{Entity: entity, Feature: feature}
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	s.N = len(finite)
	if s.N == 0 {
		s.Mean, s.StdDev, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Mean = stat.Mean(finite, nil)
	if s.N > 1 {
		s.StdDev = stat.StdDev(finite, nil)
	}
	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	return s
}
