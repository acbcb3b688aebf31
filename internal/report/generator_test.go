package report

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timing-report/internal/dataset"
	"timing-report/internal/render"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenderer writes a marker file per chart and keeps the charts it
// was given.
type recordingRenderer struct {
	charts map[string]*render.Chart
	paths  []string
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{charts: make(map[string]*render.Chart)}
}

func (r *recordingRenderer) Render(ctx context.Context, c *render.Chart, path string) error {
	r.charts[path] = c
	r.paths = append(r.paths, path)
	return os.WriteFile(path, []byte(c.Title), 0o644)
}

type failingPresenter struct {
	calls int
}

func (p *failingPresenter) Present(ctx context.Context, path string) error {
	p.calls++
	return errors.New("no viewer")
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func readTable(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return table
}

const twoSizes = `nodes,workers,bfs_time,dfs_time,pagerank_time,mst_time,shortest_path_time
10,1,0.05,0.06,0.07,0.08,0.09
10,2,0.04,0.05,0.06,0.07,0.08
100,1,0.5,0.6,0.7,0.8,0.9
100,2,0.3,0.4,0.5,0.6,0.7
`

func newTestGenerator(dir string, r render.Renderer, p *failingPresenter, sortByWorkers bool) *Generator {
	return NewGenerator(r, p, quietLogger(), Options{OutputDir: dir, Format: "png", SortByWorkers: sortByWorkers})
}

func labels(c *render.Chart) []string {
	var out []string
	for _, s := range c.Series {
		out = append(out, s.Label)
	}
	return out
}

func TestGenerate_WritesOneFilePerMetric(t *testing.T) {
	dir := t.TempDir()
	r := newRecordingRenderer()
	p := &failingPresenter{}

	result, err := newTestGenerator(dir, r, p, false).Generate(context.Background(), readTable(t, twoSizes))
	require.NoError(t, err)

	expected := []string{
		filepath.Join(dir, "bfs_time.png"),
		filepath.Join(dir, "dfs_time.png"),
		filepath.Join(dir, "pagerank_time.png"),
		filepath.Join(dir, "mst_time.png"),
		filepath.Join(dir, "shortest_path_time.png"),
	}
	assert.Equal(t, expected, result.Files)
	assert.Equal(t, expected, r.paths)
	for _, path := range expected {
		assert.FileExists(t, path)
	}
	// display failures are not fatal
	assert.Equal(t, 5, p.calls)
}

func TestGenerate_ChartLayout(t *testing.T) {
	dir := t.TempDir()
	r := newRecordingRenderer()

	_, err := newTestGenerator(dir, r, &failingPresenter{}, false).Generate(context.Background(), readTable(t, twoSizes))
	require.NoError(t, err)

	for _, metric := range Catalog {
		c := r.charts[filepath.Join(dir, metric.Field+".png")]
		require.NotNil(t, c, metric.Field)
		assert.Equal(t, metric.Title, c.Title)
		assert.Equal(t, "Number of Workers", c.XLabel)
		assert.Equal(t, "Time (s)", c.YLabel)
		assert.True(t, c.Legend)
		assert.True(t, c.Grid)
		assert.Equal(t, []string{"10 nodes", "100 nodes"}, labels(c))
	}

	bfs := r.charts[filepath.Join(dir, "bfs_time.png")]
	assert.Equal(t, []render.Point{{X: 1, Y: 0.05}, {X: 2, Y: 0.04}}, bfs.Series[0].Points)
	assert.Equal(t, []render.Point{{X: 1, Y: 0.5}, {X: 2, Y: 0.3}}, bfs.Series[1].Points)
}

func TestGenerate_SingleRow(t *testing.T) {
	dir := t.TempDir()
	r := newRecordingRenderer()
	table := readTable(t, "nodes,workers,bfs_time,dfs_time,pagerank_time,mst_time,shortest_path_time\n50,4,1.23,1,1,1,1\n")

	_, err := newTestGenerator(dir, r, &failingPresenter{}, false).Generate(context.Background(), table)
	require.NoError(t, err)

	bfs := r.charts[filepath.Join(dir, "bfs_time.png")]
	require.Len(t, bfs.Series, 1)
	assert.Equal(t, "50 nodes", bfs.Series[0].Label)
	assert.Equal(t, []render.Point{{X: 4, Y: 1.23}}, bfs.Series[0].Points)
}

func TestGenerate_LegendAscendingRegardlessOfRowOrder(t *testing.T) {
	table := readTable(t, `nodes,workers,bfs_time,dfs_time,pagerank_time,mst_time,shortest_path_time
1000,1,5,5,5,5,5
10,1,0.1,0.1,0.1,0.1,0.1
100,1,1,1,1,1,1
`)
	r := newRecordingRenderer()
	dir := t.TempDir()

	_, err := newTestGenerator(dir, r, &failingPresenter{}, false).Generate(context.Background(), table)
	require.NoError(t, err)

	for _, c := range r.charts {
		assert.Equal(t, []string{"10 nodes", "100 nodes", "1000 nodes"}, labels(c))
	}
}

func TestGenerate_MissingMetricColumnStopsAtThatMetric(t *testing.T) {
	table := readTable(t, `nodes,workers,bfs_time,dfs_time,pagerank_time,shortest_path_time
10,1,0.1,0.1,0.1,0.1
`)
	dir := t.TempDir()
	r := newRecordingRenderer()

	result, err := newTestGenerator(dir, r, &failingPresenter{}, false).Generate(context.Background(), table)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
	assert.Contains(t, err.Error(), "mst_time")

	require.NotNil(t, result)
	assert.Len(t, result.Files, 3)
	assert.FileExists(t, filepath.Join(dir, "bfs_time.png"))
	assert.FileExists(t, filepath.Join(dir, "dfs_time.png"))
	assert.FileExists(t, filepath.Join(dir, "pagerank_time.png"))
	assert.NoFileExists(t, filepath.Join(dir, "mst_time.png"))
	assert.NoFileExists(t, filepath.Join(dir, "shortest_path_time.png"))
}

func TestGenerate_EmptyCellLeavesGap(t *testing.T) {
	table := readTable(t, `nodes,workers,bfs_time,dfs_time,pagerank_time,mst_time,shortest_path_time
10,1,0.05,0.06,,0.08,0.09
10,2,0.04,0.05,0.06,0.07,0.08
`)
	dir := t.TempDir()
	r := render.NewGonum(render.Options{WidthInches: 6.4, HeightInches: 4.8})

	result, err := newTestGenerator(dir, r, &failingPresenter{}, false).Generate(context.Background(), table)
	require.NoError(t, err)
	assert.Len(t, result.Files, len(Catalog))
	for _, metric := range Catalog {
		assert.FileExists(t, filepath.Join(dir, metric.Field+".png"))
	}
}

func TestBuildChart_EmptyCellIsNaNPoint(t *testing.T) {
	table := readTable(t, `nodes,workers,pagerank_time
10,1,
10,2,0.06
`)
	groups, err := table.GroupBy(dataset.ColumnNodes)
	require.NoError(t, err)
	workers, err := table.Float64s(dataset.ColumnWorkers)
	require.NoError(t, err)

	c, err := BuildChart(table, Catalog[2], groups, workers, false)
	require.NoError(t, err)
	require.Len(t, c.Series, 1)
	require.Len(t, c.Series[0].Points, 2)
	assert.True(t, math.IsNaN(c.Series[0].Points[0].Y))
	assert.Equal(t, render.Point{X: 2, Y: 0.06}, c.Series[0].Points[1])
}

func TestGenerate_MissingGroupingColumnWritesNothing(t *testing.T) {
	table := readTable(t, "nodes,bfs_time\n10,0.1\n")
	dir := t.TempDir()

	_, err := newTestGenerator(dir, newRecordingRenderer(), &failingPresenter{}, false).Generate(context.Background(), table)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestGenerate_RerunOverwrites(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(dir, newRecordingRenderer(), &failingPresenter{}, false)
	table := readTable(t, twoSizes)

	_, err := g.Generate(context.Background(), table)
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), table)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

const zigzag = `nodes,workers,bfs_time,dfs_time,pagerank_time,mst_time,shortest_path_time
10,4,0.3,1,1,1,1
10,1,0.1,1,1,1,1
10,2,0.2,1,1,1,1
`

func TestGenerate_KeepsRowOrder(t *testing.T) {
	dir := t.TempDir()
	r := newRecordingRenderer()

	_, err := newTestGenerator(dir, r, &failingPresenter{}, false).Generate(context.Background(), readTable(t, zigzag))
	require.NoError(t, err)

	bfs := r.charts[filepath.Join(dir, "bfs_time.png")]
	assert.Equal(t, []render.Point{{X: 4, Y: 0.3}, {X: 1, Y: 0.1}, {X: 2, Y: 0.2}}, bfs.Series[0].Points)
}

func TestGenerate_SortByWorkers(t *testing.T) {
	dir := t.TempDir()
	r := newRecordingRenderer()

	_, err := newTestGenerator(dir, r, &failingPresenter{}, true).Generate(context.Background(), readTable(t, zigzag))
	require.NoError(t, err)

	bfs := r.charts[filepath.Join(dir, "bfs_time.png")]
	assert.Equal(t, []render.Point{{X: 1, Y: 0.1}, {X: 2, Y: 0.2}, {X: 4, Y: 0.3}}, bfs.Series[0].Points)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()

	result, err := newTestGenerator(dir, newRecordingRenderer(), &failingPresenter{}, false).Generate(ctx, readTable(t, twoSizes))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Files)
}

func TestGenerate_WithGonumRenderer(t *testing.T) {
	dir := t.TempDir()
	r := render.NewGonum(render.Options{WidthInches: 6.4, HeightInches: 4.8})

	result, err := newTestGenerator(dir, r, &failingPresenter{}, false).Generate(context.Background(), readTable(t, twoSizes))
	require.NoError(t, err)
	for _, path := range result.Files {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestSeriesLabel(t *testing.T) {
	assert.Equal(t, "10 nodes", SeriesLabel(10))
	assert.Equal(t, "2.5 nodes", SeriesLabel(2.5))
	assert.Equal(t, "1000000 nodes", SeriesLabel(1e6))
}

func TestOutputPath_Defaults(t *testing.T) {
	g := NewGenerator(newRecordingRenderer(), &failingPresenter{}, quietLogger(), Options{})
	assert.Equal(t, "bfs_time.png", g.OutputPath(Catalog[0]))
}
