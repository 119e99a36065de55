package inventory

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the endpoint. A nil *Metrics
// records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	entities *prometheus.GaugeVec
	duration prometheus.Histogram
}

// NewMetrics registers the inventory collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "graylogic",
				Subsystem: "components",
				Name:      "requests_total",
				Help:      "Requests served by the components endpoint, by status code",
			},
			[]string{"status"},
		),
		entities: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "graylogic",
				Subsystem: "components",
				Name:      "entities",
				Help:      "Entities seen by the last enumeration, by kind",
			},
			[]string{"kind"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "graylogic",
				Subsystem: "components",
				Name:      "enumeration_seconds",
				Help:      "Time to enumerate and encode the components document",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),
	}
}

func (m *Metrics) observeRequest(status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(strconv.Itoa(status)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) observeCounts(counts map[string]int) {
	if m == nil {
		return
	}
	for kind, n := range counts {
		m.entities.WithLabelValues(kind).Set(float64(n))
	}
}
