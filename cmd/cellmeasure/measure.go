package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/banshee-data/cellmeasure/internal/config"
	"github.com/banshee-data/cellmeasure/internal/measurement"
	"github.com/banshee-data/cellmeasure/internal/monitoring"
	"github.com/banshee-data/cellmeasure/internal/pipeline"
	"github.com/banshee-data/cellmeasure/internal/report"
)

type measureOptions struct {
	input     string
	output    string
	parent    string
	relabel   bool
	database  string
	reportDir string
	summary   bool
}

func newMeasureCommand(ctx *commandContext) *cobra.Command {
	var o measureOptions

	cmd := &cobra.Command{
		Use:   "measure SCENE...",
		Short: "Measure one or more scenes",
		Long: `Measure one or more scenes. Each argument is one scene, written as
comma-separated name=path entries naming PNG or TIFF files:

  cellmeasure measure --input Nuclei nuclei1.png nuclei2.png
  cellmeasure measure --input Nuclei --parent Cells 'Nuclei=n.tif,Cells=c.tif'

A bare path is bound to the input objects. Prefix a name with img: to load
an intensity image for the segmentation step.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := o.apply(cmd, cfg); err != nil {
				return err
			}
			return runMeasure(cmd, cfg, args, o.summary)
		},
	}

	cmd.Flags().StringVar(&o.input, "input", "", "Input objects name")
	cmd.Flags().StringVar(&o.output, "output", "", "Output objects name")
	cmd.Flags().StringVar(&o.parent, "parent", "", "Parent objects name (empty disables lineage)")
	cmd.Flags().BoolVar(&o.relabel, "relabel", false, "Renumber objects consecutively")
	cmd.Flags().StringVar(&o.database, "db", "", "SQLite database to record measurements in")
	cmd.Flags().StringVar(&o.reportDir, "report-dir", "", "Directory for centroid charts")
	cmd.Flags().BoolVar(&o.summary, "summary", false, "Print feature summaries instead of full tables")

	return cmd
}

// apply overrides configuration fields with the flags that were set.
func (o *measureOptions) apply(cmd *cobra.Command, cfg *config.RunConfig) error {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputObjects = &o.input
	}
	if flags.Changed("output") {
		cfg.OutputObjects = &o.output
	}
	if flags.Changed("parent") {
		cfg.ParentObjects = &o.parent
	}
	if flags.Changed("relabel") {
		cfg.Relabel = &o.relabel
	}
	if flags.Changed("db") {
		cfg.DatabasePath = &o.database
	}
	if flags.Changed("report-dir") {
		cfg.ReportDir = &o.reportDir
	}
	return cfg.Validate()
}

func runMeasure(cmd *cobra.Command, cfg *config.RunConfig, args []string, summary bool) error {
	components, err := buildComponents(cfg)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			monitoring.Logger.Warn("close store", "err", err)
		}
	}()

	runner, err := pipeline.NewRunner(store, components...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, arg := range args {
		sources, err := parseSceneArg(arg, cfg.GetInputObjects())
		if err != nil {
			return err
		}
		scene, err := loadScene(sources)
		if err != nil {
			return err
		}

		res, err := runner.RunScene(cmd.Context(), scene)
		if err != nil {
			return err
		}
		if err := printScene(out, store, res, summary); err != nil {
			return err
		}

		if dir := cfg.GetReportDir(); dir != "" {
			sceneDir := filepath.Join(dir, fmt.Sprintf("scene-%03d", res.Number))
			written, err := report.WriteCentroidReports(sceneDir, store)
			if err != nil {
				return err
			}
			monitoring.Logger.Info("wrote centroid reports", "scene", res.Number, "files", len(written), "dir", sceneDir)
		}
	}
	return nil
}

func printScene(w io.Writer, store measurement.Store, res *pipeline.SceneResult, summary bool) error {
	if _, err := fmt.Fprintf(w, "Scene %d (%s)\n", res.Number, res.ID); err != nil {
		return err
	}

	if summary {
		var all []report.Summary
		for _, entity := range store.Entities() {
			s, err := report.Summarize(store, entity)
			if err != nil {
				return err
			}
			all = append(all, s...)
		}
		_, err := fmt.Fprintln(w, report.SummaryTable(all))
		return err
	}

	for _, entity := range store.Entities() {
		table, err := report.MeasurementTable(store, entity)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, table); err != nil {
			return err
		}
	}
	return nil
}
