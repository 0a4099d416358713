package bench

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/roach88/lootbench/internal/sorting"
)

const (
	namespace = "lootbench"
	subsystem = "bench"
)

// Metrics aggregates measurements across a bench session.
// Each Metrics owns its registry, so sessions never share counters.
type Metrics struct {
	registry *prometheus.Registry

	sortComparisons   *prometheus.CounterVec
	sortDuration      *prometheus.HistogramVec
	searchComparisons *prometheus.CounterVec
	searches          *prometheus.CounterVec
}

// NewMetrics creates and registers the bench collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sortComparisons: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sort_comparisons_total",
				Help:      "Element comparisons performed by sorts",
			},
			[]string{"algorithm", "key"},
		),
		sortDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sort_duration_seconds",
				Help:      "Wall-clock time per sort invocation",
				Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
			},
			[]string{"algorithm"},
		),
		searchComparisons: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "search_comparisons_total",
				Help:      "Element comparisons performed by searches",
			},
			[]string{"strategy"},
		),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "searches_total",
				Help:      "Search invocations",
			},
			[]string{"strategy"},
		),
	}
	m.registry.MustRegister(m.sortComparisons, m.sortDuration, m.searchComparisons, m.searches)
	return m
}

// ObserveSort records one sort measurement.
func (m *Metrics) ObserveSort(alg sorting.Algorithm, meas Measurement) {
	m.sortComparisons.WithLabelValues(alg.String(), alg.Key().String()).Add(float64(meas.Comparisons))
	m.sortDuration.WithLabelValues(alg.String()).Observe(meas.Elapsed.Seconds())
}

// ObserveSearch records one search invocation.
func (m *Metrics) ObserveSearch(strategy string, comparisons int) {
	m.searches.WithLabelValues(strategy).Inc()
	m.searchComparisons.WithLabelValues(strategy).Add(float64(comparisons))
}

// Sample is one counter value flattened out of the registry.
type Sample struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels"`
	Value  float64           `json:"value"`
}

// Counters gathers every counter series. Histograms are summarised by their
// sample count under the family name with a "_count" suffix.
func (m *Metrics) Counters() ([]Sample, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := make(map[string]string, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				out = append(out, Sample{Name: mf.GetName(), Labels: labels, Value: metric.GetCounter().GetValue()})
			case dto.MetricType_HISTOGRAM:
				out = append(out, Sample{
					Name:   mf.GetName() + "_count",
					Labels: labels,
					Value:  float64(metric.GetHistogram().GetSampleCount()),
				})
			}
		}
	}
	return out, nil
}
