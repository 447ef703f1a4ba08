package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	ConvergenceLatency = metric.NewHistogram("1m1s")
	BroadcastRounds    = metric.NewHistogram("1m1s")
	ControlMessages    = metric.NewCounter("10s1s")
	RunsPerSecond      = metric.NewCounter("10s1s")
	FailedRuns         = metric.NewCounter("1m1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("dsdv:ConvergenceLatency (µs)", ConvergenceLatency)
	expvar.Publish("dsdv:BroadcastRounds", BroadcastRounds)
	expvar.Publish("dsdv:ControlMessages/s", ControlMessages)
	expvar.Publish("dsdv:Runs/s", RunsPerSecond)
	expvar.Publish("dsdv:FailedRuns", FailedRuns)
}
