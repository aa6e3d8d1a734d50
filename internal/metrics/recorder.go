package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zhulik/fleetscaler/internal/core"
)

const namespace = "fleetscaler"

type Recorder struct {
	Registry *prometheus.Registry

	runs          *prometheus.CounterVec
	batchFailures *prometheus.CounterVec
	planned       *prometheus.GaugeVec
	desired       prometheus.Gauge
}

func NewRecorder() *Recorder {
	recorder := &Recorder{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Scaling runs by outcome.",
		}, []string{"outcome"}),
		batchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_failures_total",
			Help:      "Failed lifecycle batches.",
		}, []string{"batch"}),
		planned: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_plan_instances",
			Help:      "Instances in each set of the last executed plan.",
		}, []string{"set"}),
		desired: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "desired_workers",
			Help:      "Desired worker count of the last executed plan.",
		}),
	}

	recorder.Registry.MustRegister(recorder.runs, recorder.batchFailures, recorder.planned, recorder.desired)

	return recorder
}

func (r *Recorder) ObserveRun(result core.ScalingResult, err error) {
	r.runs.WithLabelValues(outcome(err)).Inc()

	for _, batch := range core.FailedBatches(err) {
		r.batchFailures.WithLabelValues(batch.String()).Inc()
	}

	if core.IsQueryFailure(err) {
		return
	}

	r.desired.Set(float64(result.Plan.DesiredCount))
	r.planned.WithLabelValues("start").Set(float64(len(result.Plan.ToStart)))
	r.planned.WithLabelValues("stop").Set(float64(len(result.Plan.ToStop)))
	r.planned.WithLabelValues("unranked").Set(float64(len(result.Plan.Unranked)))
	r.planned.WithLabelValues("shadowed").Set(float64(len(result.Plan.Shadowed)))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case core.IsQueryFailure(err):
		return "query_failure"
	default:
		return "command_failure"
	}
}
