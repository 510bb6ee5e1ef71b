package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics aggregates the host's Prometheus instruments.
type metrics struct {
	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	framesReceived *prometheus.CounterVec
	framesSent     prometheus.Counter
	refreshes      prometheus.Counter
	dispatches     *prometheus.CounterVec
	frameDuration  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "weft",
			Subsystem: "host",
			Name:      "sessions_active",
			Help:      "Number of live websocket sessions.",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Subsystem: "host",
			Name:      "sessions_total",
			Help:      "Total websocket sessions accepted.",
		}),
		framesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weft",
			Subsystem: "host",
			Name:      "frames_received_total",
			Help:      "Incoming frames by type.",
		}, []string{"type"}),
		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Subsystem: "host",
			Name:      "frames_sent_total",
			Help:      "Outgoing render frames.",
		}),
		refreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Subsystem: "host",
			Name:      "refreshes_total",
			Help:      "Refresh traversals run on behalf of sessions.",
		}),
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weft",
			Subsystem: "host",
			Name:      "events_dispatched_total",
			Help:      "Events dispatched into systems by kind.",
		}, []string{"kind"}),
		frameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weft",
			Subsystem: "host",
			Name:      "frame_handle_seconds",
			Help:      "Time spent handling one incoming frame.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
