package main

import (
	"fmt"
	"strings"

	"github.com/banshee-data/cellmeasure/internal/imageio"
	"github.com/banshee-data/cellmeasure/internal/labels"
	"github.com/banshee-data/cellmeasure/internal/pipeline"
)

const imagePrefix = "img:"

// sceneSource is one named file of a scene argument.
type sceneSource struct {
	name  string
	path  string
	image bool
}

// parseSceneArg splits a scene argument of comma-separated name=path
// entries. A bare path is bound to defaultObjects; an img: prefix on the
// name marks an intensity image rather than a label file.
func parseSceneArg(arg, defaultObjects string) ([]sceneSource, error) {
	var out []sceneSource
	seen := make(map[string]bool)
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		src := sceneSource{}
		name, path, ok := strings.Cut(part, "=")
		if ok {
			src.name, src.path = strings.TrimSpace(name), strings.TrimSpace(path)
		} else {
			src.name, src.path = defaultObjects, part
		}
		if after, found := strings.CutPrefix(src.name, imagePrefix); found {
			src.name, src.image = after, true
		}

		switch {
		case src.name == "":
			return nil, fmt.Errorf("scene %q: %q has no name and no input objects are configured", arg, part)
		case src.path == "":
			return nil, fmt.Errorf("scene %q: %q has no path", arg, part)
		}
		key := src.name
		if src.image {
			key = imagePrefix + key
		}
		if seen[key] {
			return nil, fmt.Errorf("scene %q: %q given twice", arg, src.name)
		}
		seen[key] = true
		out = append(out, src)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty scene argument")
	}
	return out, nil
}

// loadScene reads every file named by sources.
func loadScene(sources []sceneSource) (pipeline.Scene, error) {
	scene := pipeline.Scene{
		Images:  make(map[string]*labels.Image),
		Objects: make(map[string]*labels.Labels),
	}
	for _, src := range sources {
		if src.image {
			img, err := imageio.ReadImage(src.path)
			if err != nil {
				return scene, err
			}
			scene.Images[src.name] = img
			continue
		}
		l, err := imageio.ReadLabels(src.path)
		if err != nil {
			return scene, err
		}
		scene.Objects[src.name] = l
	}
	return scene, nil
}
