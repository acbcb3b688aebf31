package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"timing-report/internal/dataset"
	"timing-report/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const results = `workers,nodes,bfs_time,dfs_time,pagerank_time,mst_time,shortest_path_time
1,10,0.05,0.06,0.07,0.08,0.09
2,10,0.04,0.05,0.06,0.07,0.08
1,100,0.5,0.6,0.7,0.8,0.9
2,100,0.3,0.4,0.5,0.6,0.7
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logging.SetOutput(io.Discard)
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
		_ = logging.SetLogLevel("info")
	})

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeResults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timing_results.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoot_WritesCharts(t *testing.T) {
	input := writeResults(t, results)
	outDir := t.TempDir()

	_, err := run(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "--input", input, "-o", outDir, "--display", "none")
	// an explicitly named config file must exist
	require.Error(t, err)

	_, err = run(t, "--input", input, "-o", outDir, "--display", "none")
	require.NoError(t, err)

	for _, name := range []string{"bfs_time.png", "dfs_time.png", "pagerank_time.png", "mst_time.png", "shortest_path_time.png"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
}

func TestRoot_ConfigFile(t *testing.T) {
	input := writeResults(t, results)
	outDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "timing-report.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
source:
  type: csv
  csv:
    path: `+input+`
output:
  dir: `+outDir+`
  format: svg
  renderer: gochart
display: none
`), 0o644))

	_, err := run(t, "-c", cfgPath)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "bfs_time.svg"))
	assert.FileExists(t, filepath.Join(outDir, "shortest_path_time.svg"))
}

func TestRoot_FlagsOverrideConfigFile(t *testing.T) {
	input := writeResults(t, results)
	outDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "timing-report.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: svg\ndisplay: none\n"), 0o644))

	_, err := run(t, "-c", cfgPath, "-i", input, "-o", outDir, "--format", "png")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "bfs_time.png"))
	assert.NoFileExists(t, filepath.Join(outDir, "bfs_time.svg"))
}

func TestRoot_MissingMetricColumn(t *testing.T) {
	input := writeResults(t, "nodes,workers,bfs_time,dfs_time,pagerank_time,shortest_path_time\n10,1,0.1,0.1,0.1,0.1\n")
	outDir := t.TempDir()

	_, err := run(t, "-i", input, "-o", outDir, "--display", "none")
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	assert.FileExists(t, filepath.Join(outDir, "pagerank_time.png"))
	assert.NoFileExists(t, filepath.Join(outDir, "mst_time.png"))
}

func TestRoot_InvalidSettings(t *testing.T) {
	input := writeResults(t, results)

	_, err := run(t, "-i", input, "--renderer", "gochart", "--format", "pdf", "--display", "none")
	assert.Error(t, err)

	_, err = run(t, "-i", input, "--log-level", "loud")
	assert.Error(t, err)

	_, err = run(t, "-i", input, "extra-arg")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	_, err := run(t, "validate", "-i", writeResults(t, results))
	assert.NoError(t, err)

	_, err = run(t, "validate", "-i", writeResults(t, "nodes,workers\n10,1\n"))
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "timing-report "+Version+"\n", out)
}
