package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/cellmeasure/internal/monitoring"
)

// DefaultConfigPath is the path to the example run configuration shipped
// with the repository.
const DefaultConfigPath = "config/cellmeasure.defaults.json"

// Default names used when a field is omitted.
const (
	DefaultOutputObjects      = "ObjectProcessing"
	DefaultSegmentationOutput = "ImageSegmentation"
	DefaultLogLevel           = "info"
)

// ObjectPair is an extra input/output pair processed alongside the
// primary objects.
type ObjectPair struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Segmentation configures an image segmentation step that turns a
// label-valued image into objects.
type Segmentation struct {
	Image  string  `json:"image"`
	Output *string `json:"output,omitempty"`
}

// RunConfig is the configuration for a measurement run.
// Fields omitted from the JSON fall back to the defaults returned by
// the Get* methods.
type RunConfig struct {
	// Object processing
	InputObjects  *string      `json:"input_objects,omitempty"`
	OutputObjects *string      `json:"output_objects,omitempty"`
	ParentObjects *string      `json:"parent_objects,omitempty"` // "" disables lineage columns
	Additional    []ObjectPair `json:"additional,omitempty"`
	Relabel       *bool        `json:"relabel,omitempty"`

	// Image segmentation (optional)
	Segmentation *Segmentation `json:"segmentation,omitempty"`

	// Output
	DatabasePath *string `json:"database_path,omitempty"` // empty keeps measurements in memory
	ReportDir    *string `json:"report_dir,omitempty"`
	LogLevel     *string `json:"log_level,omitempty"`
}

// Helper functions to create pointers
func ptrString(v string) *string { return &v }
func ptrBool(v bool) *bool       { return &v }

// EmptyRunConfig returns a RunConfig with all fields set to nil.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// LoadRunConfig loads a RunConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
func LoadRunConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RunConfig) Validate() error {
	if c.InputObjects != nil && *c.InputObjects == "" {
		return fmt.Errorf("input_objects must not be empty")
	}
	if c.OutputObjects != nil && *c.OutputObjects == "" {
		return fmt.Errorf("output_objects must not be empty")
	}
	if c.InputObjects != nil && c.GetOutputObjects() == *c.InputObjects {
		return fmt.Errorf("output_objects %q must differ from input_objects", c.GetOutputObjects())
	}

	for i, p := range c.Additional {
		if p.Input == "" || p.Output == "" {
			return fmt.Errorf("additional[%d]: input and output must both be set", i)
		}
	}

	if s := c.Segmentation; s != nil {
		if s.Image == "" {
			return fmt.Errorf("segmentation.image must not be empty")
		}
		if s.Output != nil && *s.Output == "" {
			return fmt.Errorf("segmentation.output must not be empty")
		}
	}

	if c.LogLevel != nil {
		if _, err := monitoring.ParseLevel(*c.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

// GetInputObjects returns the input_objects value, or "" when unset.
func (c *RunConfig) GetInputObjects() string {
	if c.InputObjects == nil {
		return ""
	}
	return *c.InputObjects
}

// GetOutputObjects returns the output_objects value or the default.
func (c *RunConfig) GetOutputObjects() string {
	if c.OutputObjects == nil {
		return DefaultOutputObjects
	}
	return *c.OutputObjects
}

// GetParentObjects returns the parent_objects value. When unset the
// output objects are related back to the input objects.
func (c *RunConfig) GetParentObjects() string {
	if c.ParentObjects == nil {
		return c.GetInputObjects()
	}
	return *c.ParentObjects
}

// GetRelabel returns the relabel value or the default.
func (c *RunConfig) GetRelabel() bool {
	if c.Relabel == nil {
		return false
	}
	return *c.Relabel
}

// GetSegmentationOutput returns the segmentation output name or the default.
func (c *RunConfig) GetSegmentationOutput() string {
	if c.Segmentation == nil || c.Segmentation.Output == nil {
		return DefaultSegmentationOutput
	}
	return *c.Segmentation.Output
}

// GetDatabasePath returns the database_path value, or "" for an in-memory run.
func (c *RunConfig) GetDatabasePath() string {
	if c.DatabasePath == nil {
		return ""
	}
	return *c.DatabasePath
}

// GetReportDir returns the report_dir value, or "" when no report is written.
func (c *RunConfig) GetReportDir() string {
	if c.ReportDir == nil {
		return ""
	}
	return *c.ReportDir
}

// GetLogLevel returns the log_level value or the default.
func (c *RunConfig) GetLogLevel() string {
	if c.LogLevel == nil {
		return DefaultLogLevel
	}
	return *c.LogLevel
}
