package report

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/encodeous/dsdv/core"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Metric is a per-run quantity charted against the node count
type Metric struct {
	Name  string
	YAxis string
	File  string
	Color color.Color
	Value func(r core.Result) float64
}

var (
	PdrMetric = Metric{
		Name:  "PDR",
		YAxis: "Packet Delivery Ratio (PDR)",
		File:  "PDR_vs_Nodes.png",
		Color: color.RGBA{R: 31, G: 119, B: 180, A: 255},
		Value: func(r core.Result) float64 { return r.Pdr },
	}
	DelayMetric = Metric{
		Name:  "Delay",
		YAxis: "Average End-to-End Delay",
		File:  "Delay_vs_Nodes.png",
		Color: color.RGBA{R: 255, G: 165, A: 255},
		Value: func(r core.Result) float64 { return r.Delay },
	}
	OverheadMetric = Metric{
		Name:  "Overhead",
		YAxis: "Routing Overhead (Control Messages)",
		File:  "Overhead_vs_Nodes.png",
		Color: color.RGBA{R: 255, A: 255},
		Value: func(r core.Result) float64 { return float64(r.Overhead) },
	}
	ConvergenceMetric = Metric{
		Name:  "Convergence Time",
		YAxis: "Convergence Time (seconds)",
		File:  "Convergence_vs_Nodes.png",
		Color: color.RGBA{G: 128, A: 255},
		Value: func(r core.Result) float64 { return r.Convergence.Seconds() },
	}
	AllMetrics = []Metric{PdrMetric, DelayMetric, OverheadMetric, ConvergenceMetric}
)

// metricPoints skips runs whose value is not finite, e.g. the delay of a run that delivered nothing
func metricPoints(results []core.Result, m Metric) plotter.XYs {
	points := make(plotter.XYs, 0, len(results))
	for _, r := range results {
		v := m.Value(r)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		points = append(points, plotter.XY{X: float64(r.Nodes), Y: v})
	}
	return points
}

func NewMetricPlot(results []core.Result, m Metric) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs Number of Nodes", m.Name)
	p.X.Label.Text = "Number of Nodes"
	p.Y.Label.Text = m.YAxis
	p.Add(plotter.NewGrid())

	points := metricPoints(results, m)
	if len(points) == 0 {
		return p, nil
	}
	line, scatter, err := plotter.NewLinePoints(points)
	if err != nil {
		return nil, fmt.Errorf("failed to create line for %s: %w", m.Name, err)
	}
	line.Color = m.Color
	scatter.Color = m.Color
	p.Add(line, scatter)
	return p, nil
}

// PlotAll renders every metric into dir and returns the written file paths
func PlotAll(results []core.Result, dir string) ([]string, error) {
	files := make([]string, 0, len(AllMetrics))
	for _, m := range AllMetrics {
		p, err := NewMetricPlot(results, m)
		if err != nil {
			return nil, err
		}
		file := filepath.Join(dir, m.File)
		err = p.Save(6*vg.Inch, 4*vg.Inch, file)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
