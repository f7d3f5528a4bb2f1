// Package metrics provides Prometheus collectors for widget operations.
// Collectors are exposed through the /-/metrics endpoint served by promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quotebox"

// Label values for the result label.
const (
	ResultShown         = "shown"
	ResultEmpty         = "empty"
	ResultSuccess       = "success"
	ResultRejected      = "rejected"
	ResultInvalidFormat = "invalid_format"
	ResultParseFailure  = "parse_failure"
	ResultStorageError  = "storage_error"
)

// Widget holds the collectors updated by the quote widget.
// A nil *Widget is valid and records nothing.
type Widget struct {
	randomPicks *prometheus.CounterVec
	adds        *prometheus.CounterVec
	imports     *prometheus.CounterVec
	imported    prometheus.Counter
	exports     prometheus.Counter
	size        prometheus.Gauge
}

// NewWidget creates the widget collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them via promhttp.Handler().
func NewWidget(reg prometheus.Registerer) (*Widget, error) {
	m := &Widget{
		randomPicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "random_picks_total",
			Help:      "Random quote selections by result.",
		}, []string{"result"}),
		adds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_adds_total",
			Help:      "Add-quote attempts by result.",
		}, []string{"result"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Import attempts by result.",
		}, []string{"result"}),
		imported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imported_quotes_total",
			Help:      "Quotes appended by successful imports.",
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Collection exports served.",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "collection_size",
			Help:      "Number of quotes in the collection.",
		}),
	}

	collectors := []prometheus.Collector{
		m.randomPicks, m.adds, m.imports, m.imported, m.exports, m.size,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RandomPick records a random selection.
func (m *Widget) RandomPick(result string) {
	if m == nil {
		return
	}

	m.randomPicks.WithLabelValues(result).Inc()
}

// Add records an add-quote attempt.
func (m *Widget) Add(result string) {
	if m == nil {
		return
	}

	m.adds.WithLabelValues(result).Inc()
}

// Import records an import attempt and, on success, how many quotes it appended.
func (m *Widget) Import(result string, count int) {
	if m == nil {
		return
	}

	m.imports.WithLabelValues(result).Inc()

	if result == ResultSuccess {
		m.imported.Add(float64(count))
	}
}

// Export records a served export.
func (m *Widget) Export() {
	if m == nil {
		return
	}

	m.exports.Inc()
}

// CollectionSize records the current collection length.
func (m *Widget) CollectionSize(n int) {
	if m == nil {
		return
	}

	m.size.Set(float64(n))
}
