//Package metrics keeps Prometheus counters for fill runs. A command-line run
//has no one to scrape it, so the metrics are written to a textfile that the
//node exporter textfile collector can pick up.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rmera/gofill/fill"
)

const namespace = "gofill"

//Recorder collects the metrics of the fills in one run.
type Recorder struct {
	reg         *prometheus.Registry
	placed      *prometheus.CounterVec
	attempts    *prometheus.CounterVec
	saturations *prometheus.CounterVec
	perMolecule *prometheus.HistogramVec
	minDist     *prometheus.GaugeVec
	duration    *prometheus.HistogramVec
}

//New returns a Recorder with its own registry.
func New() *Recorder {
	R := &Recorder{
		reg: prometheus.NewRegistry(),
		placed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "fill",
				Name:      "molecules_placed_total",
				Help:      "Total number of adsorbate molecules placed",
			},
			[]string{"adsorbate"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "fill",
				Name:      "attempts_total",
				Help:      "Total number of candidate placements tried",
			},
			[]string{"adsorbate", "outcome"},
		),
		saturations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "fill",
				Name:      "saturations_total",
				Help:      "Fills that stopped because a molecule could not be placed",
			},
			[]string{"adsorbate"},
		),
		perMolecule: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "fill",
				Name:      "attempts_per_molecule",
				Help:      "Attempts needed to place one molecule",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"adsorbate"},
		),
		minDist: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "fill",
				Name:      "min_distance_angstrom",
				Help:      "Smallest distance between a placed molecule and the rest of the structure",
			},
			[]string{"adsorbate", "structure"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "fill",
				Name:      "duration_seconds",
				Help:      "Duration of one fill in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"adsorbate"},
		),
	}
	R.reg.MustRegister(R.placed, R.attempts, R.saturations, R.perMolecule, R.minDist, R.duration)
	return R
}

//Registry returns the registry where the metrics live.
func (R *Recorder) Registry() *prometheus.Registry {
	return R.reg
}

//Record adds the outcome of the fill of the given structure.
func (R *Recorder) Record(structure int, res *fill.Result, elapsed time.Duration) {
	ads := res.Formula
	R.placed.WithLabelValues(ads).Add(float64(res.Placed))
	var ok int
	for _, v := range res.Attempts {
		ok += v
		R.perMolecule.WithLabelValues(ads).Observe(float64(v))
	}
	R.attempts.WithLabelValues(ads, "placed").Add(float64(ok))
	R.attempts.WithLabelValues(ads, "failed").Add(float64(res.FailedAttempts))
	if res.Saturated {
		R.saturations.WithLabelValues(ads).Inc()
	}
	if res.Placed > 0 {
		R.minDist.WithLabelValues(ads, strconv.Itoa(structure)).Set(res.MinDistance())
	}
	R.duration.WithLabelValues(ads).Observe(elapsed.Seconds())
}

//WriteToTextfile writes the metrics to path in the text exposition format.
func (R *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, R.reg)
}
