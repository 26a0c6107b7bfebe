package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Metrics holds the service's Prometheus collectors. Methods are no-ops on a
// nil receiver.
type Metrics struct {
	recommendations *prometheus.CounterVec
	duration        prometheus.Histogram
	ratingsWritten  *prometheus.CounterVec
	healthStatus    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg. Collectors
// already registered by an earlier call are reused.
func NewMetrics(reg prometheus.Registerer, logger *logrus.Logger) *Metrics {
	m := &Metrics{
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anirec_recommendations_total",
			Help: "Recommendation sets served, by source (default, personalized, cache, preview)",
		}, []string{"source"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "anirec_recommendation_duration_seconds",
			Help:    "Time spent producing a recommendation response",
			Buckets: prometheus.DefBuckets,
		}),
		ratingsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anirec_ratings_written_total",
			Help: "Rating writes, by action (upsert, delete)",
		}, []string{"action"}),
		healthStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "health_check_status",
			Help: "Health check status (1 = healthy, 0 = unhealthy)",
		}, []string{"service"}),
	}

	m.recommendations = register(reg, m.recommendations, logger)
	m.duration = register(reg, m.duration, logger)
	m.ratingsWritten = register(reg, m.ratingsWritten, logger)
	m.healthStatus = register(reg, m.healthStatus, logger)

	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C, logger *logrus.Logger) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		logger.WithError(err).Warn("Failed to register metric")
	}
	return c
}

func (m *Metrics) RecommendationServed(source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.recommendations.WithLabelValues(source).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) RatingWritten(action string) {
	if m == nil {
		return
	}
	m.ratingsWritten.WithLabelValues(action).Inc()
}

func (m *Metrics) SetHealth(service string, healthy bool) {
	if m == nil {
		return
	}
	if healthy {
		m.healthStatus.WithLabelValues(service).Set(1)
	} else {
		m.healthStatus.WithLabelValues(service).Set(0)
	}
}
