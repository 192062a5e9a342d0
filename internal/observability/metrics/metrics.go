package metrics

import "github.com/prometheus/client_golang/prometheus"

// SiteMetrics exposes counters for booking intake and admin activity.
type SiteMetrics struct {
	bookingsTotal    *prometheus.CounterVec
	mutationsTotal   *prometheus.CounterVec
	cacheLookupTotal *prometheus.CounterVec
}

func NewSiteMetrics(reg prometheus.Registerer) *SiteMetrics {
	m := &SiteMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gilded",
			Subsystem: "booking",
			Name:      "received_total",
			Help:      "Total public booking submissions by outcome",
		}, []string{"status"}),
		mutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gilded",
			Subsystem: "admin",
			Name:      "mutations_total",
			Help:      "Total admin write operations by entity and outcome",
		}, []string{"entity", "op", "status"}),
		cacheLookupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gilded",
			Subsystem: "cache",
			Name:      "lookup_total",
			Help:      "Query cache lookups by result",
		}, []string{"entity", "result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.mutationsTotal, m.cacheLookupTotal)
	return m
}

func (m *SiteMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *SiteMetrics) ObserveMutation(entity, op, status string) {
	if m == nil {
		return
	}
	m.mutationsTotal.WithLabelValues(entity, op, status).Inc()
}

func (m *SiteMetrics) ObserveCacheLookup(entity, result string) {
	if m == nil {
		return
	}
	m.cacheLookupTotal.WithLabelValues(entity, result).Inc()
}
