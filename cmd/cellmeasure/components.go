package main

import (
	"errors"

	"github.com/banshee-data/cellmeasure/internal/config"
	"github.com/banshee-data/cellmeasure/internal/measurement"
	"github.com/banshee-data/cellmeasure/internal/module"
	"github.com/banshee-data/cellmeasure/internal/storage/sqlite"
)

var errNothingToMeasure = errors.New("nothing to measure: set input_objects or segmentation")

// buildComponents turns a run configuration into pipeline components.
// Segmentation runs first so object processing can consume its output.
func buildComponents(cfg *config.RunConfig) ([]module.Component, error) {
	var comps []module.Component

	if seg := cfg.Segmentation; seg != nil {
		comps = append(comps, &module.ImageSegmentation{
			ImageName:  seg.Image,
			OutputName: cfg.GetSegmentationOutput(),
			Segment:    module.IntensityLabels,
		})
	}

	if input := cfg.GetInputObjects(); input != "" {
		op := &module.ObjectProcessing{
			InputName:  input,
			OutputName: cfg.GetOutputObjects(),
			ParentName: cfg.GetParentObjects(),
		}
		for _, p := range cfg.Additional {
			op.Additional = append(op.Additional, module.ObjectPair{Input: p.Input, Output: p.Output})
		}
		if cfg.GetRelabel() {
			op.Transform = module.Renumber
		}
		comps = append(comps, op)
	}

	if len(comps) == 0 {
		return nil, errNothingToMeasure
	}
	return comps, nil
}

// openStore opens the SQLite store named by the configuration, or an
// in-memory store when no database path is set.
func openStore(cfg *config.RunConfig) (measurement.Store, func() error, error) {
	path := cfg.GetDatabasePath()
	if path == "" {
		return measurement.NewMemoryStore(), func() error { return nil }, nil
	}
	s, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}
