package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestEmptyRunConfig_Defaults(t *testing.T) {
	cfg := EmptyRunConfig()

	assert.Equal(t, "", cfg.GetInputObjects())
	assert.Equal(t, DefaultOutputObjects, cfg.GetOutputObjects())
	assert.Equal(t, "", cfg.GetParentObjects())
	assert.False(t, cfg.GetRelabel())
	assert.Equal(t, DefaultSegmentationOutput, cfg.GetSegmentationOutput())
	assert.Equal(t, "", cfg.GetDatabasePath())
	assert.Equal(t, "", cfg.GetReportDir())
	assert.Equal(t, DefaultLogLevel, cfg.GetLogLevel())
	assert.NoError(t, cfg.Validate())
}

func TestRunConfig_ParentDefaultsToInput(t *testing.T) {
	cfg := &RunConfig{InputObjects: ptrString("Nuclei")}
	assert.Equal(t, "Nuclei", cfg.GetParentObjects())

	cfg.ParentObjects = ptrString("")
	assert.Equal(t, "", cfg.GetParentObjects(), "explicit empty parent disables lineage")

	cfg.ParentObjects = ptrString("Cells")
	assert.Equal(t, "Cells", cfg.GetParentObjects())

	cfg.Relabel = ptrBool(true)
	assert.True(t, cfg.GetRelabel())
}

func TestLoadRunConfig(t *testing.T) {
	path := writeConfig(t, "run.json", `{
  "input_objects": "Nuclei",
  "output_objects": "Renumbered",
  "parent_objects": "Cells",
  "additional": [{"input": "Cells", "output": "CellsCopy"}],
  "relabel": true,
  "segmentation": {"image": "DNA"},
  "database_path": "measurements.db",
  "report_dir": "out",
  "log_level": "debug"
}`)

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Nuclei", cfg.GetInputObjects())
	assert.Equal(t, "Renumbered", cfg.GetOutputObjects())
	assert.Equal(t, "Cells", cfg.GetParentObjects())
	assert.Equal(t, []ObjectPair{{Input: "Cells", Output: "CellsCopy"}}, cfg.Additional)
	assert.True(t, cfg.GetRelabel())
	require.NotNil(t, cfg.Segmentation)
	assert.Equal(t, "DNA", cfg.Segmentation.Image)
	assert.Equal(t, DefaultSegmentationOutput, cfg.GetSegmentationOutput())
	assert.Equal(t, "measurements.db", cfg.GetDatabasePath())
	assert.Equal(t, "out", cfg.GetReportDir())
	assert.Equal(t, "debug", cfg.GetLogLevel())
}

func TestLoadRunConfig_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"input_objects": "Nuclei"}`)

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputObjects, cfg.GetOutputObjects())
	assert.Equal(t, "Nuclei", cfg.GetParentObjects())
	assert.Equal(t, DefaultLogLevel, cfg.GetLogLevel())
}

func TestLoadRunConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"wrong extension", "run.yaml", `{}`},
		{"invalid json", "bad.json", `{"input_objects": `},
		{"unknown field", "unknown.json", `{"input_object": "Nuclei"}`},
		{"empty input", "empty.json", `{"input_objects": ""}`},
		{"output equals input", "same.json", `{"input_objects": "A", "output_objects": "A"}`},
		{"incomplete pair", "pair.json", `{"additional": [{"input": "A"}]}`},
		{"segmentation without image", "seg.json", `{"segmentation": {}}`},
		{"bad log level", "level.json", `{"log_level": "loud"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRunConfig(writeConfig(t, tt.file, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadRunConfig_TooLarge(t *testing.T) {
	big := make([]byte, 1024*1024+1)
	for i := range big {
		big[i] = ' '
	}
	path := filepath.Join(t.TempDir(), "big.json")
	require.NoError(t, os.WriteFile(path, big, 0644))

	_, err := LoadRunConfig(path)
	assert.ErrorContains(t, err, "too large")
}

func TestDefaultConfigFile(t *testing.T) {
	cfg, err := LoadRunConfig(filepath.Join("..", "..", DefaultConfigPath))
	require.NoError(t, err)
	assert.Equal(t, "Nuclei", cfg.GetInputObjects())
	assert.False(t, cfg.GetRelabel())
}
