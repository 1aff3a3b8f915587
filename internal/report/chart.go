package report

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/cellmeasure/internal/measurement"
	"github.com/banshee-data/cellmeasure/internal/security"
)

// Centroid is one object's position as read back from the store.
type Centroid struct {
	Number float64
	X      float64
	Y      float64
}

// Centroids reads the location and number columns of entity.
func Centroids(store measurement.Store, entity string) ([]Centroid, error) {
	xs, err := store.Read(entity, measurement.LocationCenterX)
	if err != nil {
		return nil, err
	}
	ys, err := store.Read(entity, measurement.LocationCenterY)
	if err != nil {
		return nil, err
	}
	numbers, err := store.Read(entity, measurement.NumberObjectNumber)
	if err != nil {
		return nil, err
	}
	if len(xs) != len(ys) || len(xs) != len(numbers) {
		return nil, fmt.Errorf("%s: location columns differ in length (%d, %d, %d)", entity, len(xs), len(ys), len(numbers))
	}

	out := make([]Centroid, len(xs))
	for i := range xs {
		out[i] = Centroid{Number: numbers[i], X: xs[i], Y: ys[i]}
	}
	return out, nil
}

// CentroidScatterHTML renders an interactive scatter of entity's object
// centres to w.
func CentroidScatterHTML(w io.Writer, store measurement.Store, entity string) error {
	centroids, err := Centroids(store, entity)
	if err != nil {
		return err
	}

	data := make([]opts.ScatterData, 0, len(centroids))
	for _, c := range centroids {
		data = append(data, opts.ScatterData{Value: []interface{}{c.X, c.Y, c.Number}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: entity + " centroids", Width: "800px", Height: "800px"}),
		charts.WithTitleOpts(opts.Title{Title: entity + " centroids", Subtitle: fmt.Sprintf("scene=%d objects=%d", store.Scene(), len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (column)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (row)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries(entity, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	return scatter.Render(w)
}

// CentroidPlotPNG saves a static scatter of entity's object centres to path.
func CentroidPlotPNG(path string, store measurement.Store, entity string) error {
	centroids, err := Centroids(store, entity)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s centroids (scene %d)", entity, store.Scene())
	p.X.Label.Text = "X (column)"
	p.Y.Label.Text = "Y (row)"

	pts := make(plotter.XYs, 0, len(centroids))
	for _, c := range centroids {
		if math.IsNaN(c.X) || math.IsNaN(c.Y) {
			continue
		}
		pts = append(pts, plotter.XY{X: c.X, Y: c.Y})
	}
	if len(pts) > 0 {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("failed to create scatter: %w", err)
		}
		s.GlyphStyle.Color = color.RGBA{R: 31, G: 104, B: 142, A: 255}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// WriteCentroidReports writes <entity>_centroids.html and
// <entity>_centroids.png into dir for every entity with location columns,
// and returns the paths written. Entity names are sanitised before use
// as file names.
func WriteCentroidReports(dir string, store measurement.Store) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	var written []string
	for _, entity := range store.Entities() {
		if !store.Has(entity, measurement.LocationCenterX) {
			continue
		}

		base := security.SanitizeFilename(entity) + "_centroids"
		htmlPath, err := security.JoinWithin(dir, base+".html")
		if err != nil {
			return written, err
		}
		f, err := os.Create(htmlPath)
		if err != nil {
			return written, err
		}
		err = CentroidScatterHTML(f, store, entity)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return written, fmt.Errorf("%s: %w", htmlPath, err)
		}
		written = append(written, htmlPath)

		pngPath, err := security.JoinWithin(dir, base+".png")
		if err != nil {
			return written, err
		}
		if err := CentroidPlotPNG(pngPath, store, entity); err != nil {
			return written, fmt.Errorf("%s: %w", pngPath, err)
		}
		written = append(written, pngPath)
	}
	return written, nil
}
