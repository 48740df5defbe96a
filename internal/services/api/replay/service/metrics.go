package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the replay collectors
type Metrics struct {
	replays *prometheus.CounterVec
	minutes *prometheus.CounterVec
	bytes   prometheus.Histogram
}

// NewMetrics registers the replay collectors with reg; nil uses the default registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		replays: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rdtlog_replays_total",
			Help: "Replays by station and outcome (ok, error)",
		}, []string{"station", "outcome"}),
		minutes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rdtlog_minutes_total",
			Help: "Replayed minutes by station and result (decoded, mismatched)",
		}, []string{"station", "result"}),
		bytes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rdtlog_replay_bytes",
			Help:    "Size of replayed logs after normalization",
			Buckets: prometheus.ExponentialBuckets(256, 4, 9),
		}),
	}
}

func (m *Metrics) observe(station string, size int, st Stats, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.replays.WithLabelValues(station, outcome).Inc()
	m.minutes.WithLabelValues(station, "decoded").Add(float64(st.Decoded))
	m.minutes.WithLabelValues(station, "mismatched").Add(float64(st.Mismatched))
	m.bytes.Observe(float64(size))
}
