package services

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name     string
	Critical bool
	Check    func(ctx context.Context) error
}

type HealthService struct {
	checks  []HealthCheck
	timeout time.Duration
	metrics *Metrics
	logger  *logrus.Logger
}

type HealthStatus struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Services    map[string]string `json:"services"`
	Critical    []string          `json:"critical_failures,omitempty"`
	NonCritical []string          `json:"non_critical_failures,omitempty"`
	Latency     time.Duration     `json:"latency,omitempty"`
}

func NewHealthService(logger *logrus.Logger, metrics *Metrics, checks ...HealthCheck) *HealthService {
	return &HealthService{
		checks:  checks,
		timeout: 5 * time.Second,
		metrics: metrics,
		logger:  logger,
	}
}

// CheckHealth runs every check. Any failing critical check makes the service
// unhealthy; failing non-critical checks only degrade it.
func (s *HealthService) CheckHealth(ctx context.Context) *HealthStatus {
	start := time.Now()
	status := &HealthStatus{
		Timestamp: start,
		Services:  make(map[string]string),
	}

	allCriticalHealthy := true
	for _, hc := range s.checks {
		checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := hc.Check(checkCtx)
		cancel()

		if err == nil {
			status.Services[hc.Name] = "healthy"
			s.metrics.SetHealth(hc.Name, true)
			continue
		}

		status.Services[hc.Name] = "unhealthy"
		s.metrics.SetHealth(hc.Name, false)
		if hc.Critical {
			allCriticalHealthy = false
			status.Critical = append(status.Critical, hc.Name)
			s.logger.WithError(err).Errorf("Critical service %s is unhealthy", hc.Name)
		} else {
			status.NonCritical = append(status.NonCritical, hc.Name)
			s.logger.WithError(err).Warnf("Non-critical service %s is unhealthy", hc.Name)
		}
	}
	sort.Strings(status.Critical)
	sort.Strings(status.NonCritical)

	// Overall status
	if allCriticalHealthy {
		if len(status.NonCritical) == 0 {
			status.Status = "healthy"
		} else {
			status.Status = "degraded"
		}
	} else {
		status.Status = "unhealthy"
	}
	status.Latency = time.Since(start)

	return status
}
