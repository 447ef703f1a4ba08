package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricPointsSkipsInfinite(t *testing.T) {
	points := metricPoints(sampleResults(), DelayMetric)
	require.Len(t, points, 1)
	assert.Equal(t, 4.0, points[0].X)
	assert.Equal(t, 2.25, points[0].Y)

	assert.Len(t, metricPoints(sampleResults(), OverheadMetric), 2)
}

func TestNewMetricPlot(t *testing.T) {
	p, err := NewMetricPlot(sampleResults(), PdrMetric)
	require.NoError(t, err)
	assert.Equal(t, "PDR vs Number of Nodes", p.Title.Text)
	assert.Equal(t, "Number of Nodes", p.X.Label.Text)
}

func TestPlotAll(t *testing.T) {
	dir := t.TempDir()
	files, err := PlotAll(sampleResults(), dir)
	require.NoError(t, err)
	require.Len(t, files, 4)
	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Equal(t, filepath.Join(dir, "PDR_vs_Nodes.png"), files[0])
}
