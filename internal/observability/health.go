package observability

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// HealthStatus is the state reported by /health
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// severity orders statuses so the worst one wins
var severity = map[HealthStatus]int{
	HealthStatusHealthy:   0,
	HealthStatusDegraded:  1,
	HealthStatusUnhealthy: 2,
}

// HealthCheck is the result for one dependency of the bot
type HealthCheck struct {
	Name      string                 `json:"name"`
	Status    HealthStatus           `json:"status"`
	Message   string                 `json:"message,omitempty"`
	CheckedAt time.Time              `json:"checked_at"`
	LatencyMS int64                  `json:"latency_ms"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// HealthCheckFunc inspects one dependency
type HealthCheckFunc func(context.Context) *HealthCheck

// HealthChecker runs the registered checks for /health. A full round of
// results is reused until ttl has passed or a new check is registered.
type HealthChecker struct {
	service string
	version string
	ttl     time.Duration

	mu        sync.Mutex
	checks    map[string]HealthCheckFunc
	results   map[string]*HealthCheck
	checkedAt time.Time
}

// NewHealthChecker creates a checker reporting service and version
func NewHealthChecker(service, version string) *HealthChecker {
	return &HealthChecker{
		service: service,
		version: version,
		ttl:     5 * time.Second,
		checks:  make(map[string]HealthCheckFunc),
	}
}

// Register adds or replaces the check for name
func (hc *HealthChecker) Register(name string, check HealthCheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[name] = check
	hc.results = nil
}

// Check returns the result of every registered check keyed by name
func (hc *HealthChecker) Check(ctx context.Context) map[string]*HealthCheck {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if hc.results == nil || time.Since(hc.checkedAt) >= hc.ttl {
		hc.results = make(map[string]*HealthCheck, len(hc.checks))
		for name, check := range hc.checks {
			result := check(ctx)
			if result.Name == "" {
				result.Name = name
			}
			result.CheckedAt = time.Now()
			hc.results[name] = result
		}
		hc.checkedAt = time.Now()
	}

	out := make(map[string]*HealthCheck, len(hc.results))
	for name, result := range hc.results {
		c := *result
		out[name] = &c
	}
	return out
}

// OverallStatus is the worst status among checks, healthy when there are none
func OverallStatus(checks map[string]*HealthCheck) HealthStatus {
	worst := HealthStatusHealthy
	for _, check := range checks {
		if severity[check.Status] > severity[worst] {
			worst = check.Status
		}
	}
	return worst
}

// HealthResponse is the /health body
type HealthResponse struct {
	Status    HealthStatus            `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	Checks    map[string]*HealthCheck `json:"checks"`
	Metadata  map[string]interface{}  `json:"metadata,omitempty"`
}

// GetHealthResponse runs Check and folds the results into one status
func (hc *HealthChecker) GetHealthResponse(ctx context.Context) *HealthResponse {
	checks := hc.Check(ctx)
	return &HealthResponse{
		Status:    OverallStatus(checks),
		Timestamp: time.Now(),
		Checks:    checks,
		Metadata:  map[string]interface{}{"service": hc.service, "version": hc.version},
	}
}

// pingCheck calls ping with a deadline and reports failStatus when it errors
func pingCheck(name, label string, timeout time.Duration, failStatus HealthStatus, ping func(context.Context) error) HealthCheckFunc {
	return func(ctx context.Context) *HealthCheck {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		err := ping(ctx)
		result := &HealthCheck{Name: name, LatencyMS: time.Since(start).Milliseconds()}

		if err != nil {
			result.Status = failStatus
			result.Message = fmt.Sprintf("%s unreachable: %v", label, err)
			return result
		}
		result.Status = HealthStatusHealthy
		result.Message = label + " reachable"
		return result
	}
}

// DatabaseHealthCheck pings the Postgres table source. Tables are already in
// memory, so a lost database only degrades the service.
func DatabaseHealthCheck(ping func(context.Context) error) HealthCheckFunc {
	return pingCheck("database", "Database", 2*time.Second, HealthStatusDegraded, ping)
}

// RedisHealthCheck pings the rewrite cache
func RedisHealthCheck(ping func(context.Context) error) HealthCheckFunc {
	return pingCheck("redis", "Redis", 2*time.Second, HealthStatusDegraded, ping)
}

// LLMHealthCheck reports the rewrite provider. Answers are still served
// unrewritten when it is down.
func LLMHealthCheck(check func(context.Context) error) HealthCheckFunc {
	return pingCheck("llm_service", "LLM service", 5*time.Second, HealthStatusDegraded, check)
}

// TablesHealthCheck reports row counts of the loaded tables. Without rooms no
// room, staff or service question can be answered.
func TablesHealthCheck(counts map[string]int) HealthCheckFunc {
	return func(ctx context.Context) *HealthCheck {
		result := &HealthCheck{
			Name:     "tables",
			Status:   HealthStatusHealthy,
			Message:  fmt.Sprintf("%d rooms, %d departments, %d general answers", counts["rooms"], counts["departments"], counts["general"]),
			Metadata: make(map[string]interface{}, len(counts)),
		}
		for table, n := range counts {
			result.Metadata[table] = n
		}
		if counts["rooms"] == 0 {
			result.Status = HealthStatusUnhealthy
		}
		return result
	}
}
