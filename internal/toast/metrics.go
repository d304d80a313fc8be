package toast

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsSeenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toastd",
			Subsystem: "toast",
			Name:      "events_total",
			Help:      "Accessibility events seen by the toast listener",
		},
		[]string{"type"},
	)

	capturedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "toastd",
			Subsystem: "toast",
			Name:      "captured_total",
			Help:      "Toast messages captured from notification events",
		},
	)

	expiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "toastd",
			Subsystem: "toast",
			Name:      "expired_total",
			Help:      "Toast messages cleared on read after the expiry window",
		},
	)

	listeningGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "toastd",
			Subsystem: "toast",
			Name:      "listening",
			Help:      "1 while the toast listener is installed",
		},
	)
)

func init() {
	prometheus.MustRegister(eventsSeenTotal, capturedTotal, expiredTotal, listeningGauge)
}
