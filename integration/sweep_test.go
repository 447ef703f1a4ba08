//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/encodeous/dsdv/core"
	"github.com/encodeous/dsdv/report"
	"github.com/encodeous/dsdv/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSweepRecordAndPlot(t *testing.T) {
	dir := t.TempDir()
	sim := state.DefaultSimCfg()
	sweep := state.SweepCfg{MinNodes: state.DefaultMinNodes, MaxNodes: state.DefaultMaxNodes, Workers: 4}

	results, err := core.Sweep(context.Background(), sim, sweep, nil)
	require.NoError(t, err)
	require.Len(t, results, sweep.MaxNodes-sweep.MinNodes+1)

	rec := report.NewRecorder(filepath.Join(dir, "runs"))
	require.NoError(t, rec.Init())
	for _, res := range results {
		require.NoError(t, rec.Write(res))
	}
	require.NoError(t, rec.Close())

	loaded, err := report.LoadResults(rec.Filename())
	require.NoError(t, err)
	require.Len(t, loaded, len(results))
	for i := range results {
		assert.Equal(t, results[i].Nodes, loaded[i].Nodes)
		assert.Equal(t, results[i].Overhead, loaded[i].Overhead)
		assert.Equal(t, results[i].Rounds, loaded[i].Rounds)
	}

	files, err := report.PlotAll(loaded, dir)
	require.NoError(t, err)
	assert.Len(t, files, len(report.AllMetrics))
	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
