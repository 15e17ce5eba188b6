package observability

import (
	"maps"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MetricType represents the type of metric
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeGauge     MetricType = "gauge"
	MetricTypeHistogram MetricType = "histogram"
)

// Metric represents a single metric
type Metric struct {
	Name      string                 `json:"name"`
	Type      MetricType             `json:"type"`
	Value     float64                `json:"value"`
	Labels    map[string]string      `json:"labels,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// MetricsCollector collects and stores application metrics
type MetricsCollector struct {
	mu      sync.RWMutex
	metrics map[string]*Metric
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*Metric),
	}
}

// metricKey generates a unique key for a metric. Labels are sorted so the
// same label set always maps to the same key.
func metricKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	names := make([]string, 0, len(labels))
	for k := range labels {
		names = append(names, k)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(name)
	for _, k := range names {
		sb.WriteString("." + k + "=" + labels[k])
	}
	return sb.String()
}

// Inc increments a counter metric
func (mc *MetricsCollector) Inc(name string, labels map[string]string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	key := metricKey(name, labels)
	if metric, exists := mc.metrics[key]; exists {
		metric.Value++
		metric.Timestamp = time.Now()
	} else {
		mc.metrics[key] = &Metric{
			Name:      name,
			Type:      MetricTypeCounter,
			Value:     1,
			Labels:    maps.Clone(labels),
			Timestamp: time.Now(),
		}
	}
}

// Add adds a value to a counter metric
func (mc *MetricsCollector) Add(name string, value float64, labels map[string]string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	key := metricKey(name, labels)
	if metric, exists := mc.metrics[key]; exists {
		metric.Value += value
		metric.Timestamp = time.Now()
	} else {
		mc.metrics[key] = &Metric{
			Name:      name,
			Type:      MetricTypeCounter,
			Value:     value,
			Labels:    maps.Clone(labels),
			Timestamp: time.Now(),
		}
	}
}

// Set sets a gauge metric value
func (mc *MetricsCollector) Set(name string, value float64, labels map[string]string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	key := metricKey(name, labels)
	mc.metrics[key] = &Metric{
		Name:      name,
		Type:      MetricTypeGauge,
		Value:     value,
		Labels:    maps.Clone(labels),
		Timestamp: time.Now(),
	}
}

// Observe records a histogram observation
func (mc *MetricsCollector) Observe(name string, value float64, labels map[string]string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	key := metricKey(name, labels)
	if metric, exists := mc.metrics[key]; exists {
		// Simple histogram - just tracking count and sum for now
		// In production, you'd use proper histogram buckets
		if metric.Extra == nil {
			metric.Extra = make(map[string]interface{})
		}
		count := 1.0
		sum := value
		if c, ok := metric.Extra["count"].(float64); ok {
			count = c + 1
		}
		if s, ok := metric.Extra["sum"].(float64); ok {
			sum = s + value
		}
		metric.Extra["count"] = count
		metric.Extra["sum"] = sum
		metric.Value = sum / count // average
		metric.Timestamp = time.Now()
	} else {
		mc.metrics[key] = &Metric{
			Name:      name,
			Type:      MetricTypeHistogram,
			Value:     value,
			Labels:    maps.Clone(labels),
			Timestamp: time.Now(),
			Extra: map[string]interface{}{
				"count": 1.0,
				"sum":   value,
			},
		}
	}
}

// Get returns a copy of the metric with the given name and labels
func (mc *MetricsCollector) Get(name string, labels map[string]string) (*Metric, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	metric, exists := mc.metrics[metricKey(name, labels)]
	if !exists {
		return nil, false
	}
	return metric.snapshot(), true
}

// GetAll returns copies of every metric. Callers may read them while the
// collector keeps updating.
func (mc *MetricsCollector) GetAll() map[string]*Metric {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	result := make(map[string]*Metric, len(mc.metrics))
	for k, v := range mc.metrics {
		result[k] = v.snapshot()
	}
	return result
}

func (m *Metric) snapshot() *Metric {
	c := *m
	c.Labels = maps.Clone(m.Labels)
	c.Extra = maps.Clone(m.Extra)
	return &c
}

// Reset clears all metrics
func (mc *MetricsCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.metrics = make(map[string]*Metric)
}

// Standard metric names
const (
	// Ask metrics
	MetricAskTotal    = "tibot_asks_total"
	MetricAskDuration = "tibot_ask_duration_seconds"
	MetricAskNotFound = "tibot_asks_not_found_total"

	// Rewrite metrics
	MetricRewriteTotal    = "tibot_rewrites_total"
	MetricRewriteDuration = "tibot_rewrite_duration_seconds"
	MetricRewriteCache    = "tibot_rewrite_cache_total"

	// Reference table metrics
	MetricTableLoads    = "tibot_table_loads_total"
	MetricTableRows     = "tibot_table_rows"
	MetricTableDuration = "tibot_table_load_duration_seconds"

	// Resolver metrics
	MetricResolverFaults = "tibot_resolver_faults_total"

	// HTTP metrics
	MetricHTTPRequests     = "http_requests_total"
	MetricHTTPDuration     = "http_request_duration_seconds"
	MetricHTTPErrors       = "http_errors_total"
	MetricHTTPResponseSize = "http_response_size_bytes"
)

// Rewrite outcomes
const (
	RewriteOK       = "ok"
	RewriteFallback = "fallback"
	RewriteCached   = "cached"
	RewriteSkipped  = "skipped"
)

// Global metrics collector instance
var globalMetrics = NewMetricsCollector()

// GetGlobalMetrics returns the global metrics collector
func GetGlobalMetrics() *MetricsCollector {
	return globalMetrics
}

// RecordAskMetrics records one answered question
func RecordAskMetrics(intent string, duration time.Duration, notFound bool) {
	metrics := GetGlobalMetrics()

	labels := map[string]string{"intent": intent}
	metrics.Inc(MetricAskTotal, labels)
	metrics.Observe(MetricAskDuration, duration.Seconds(), labels)

	if notFound {
		metrics.Inc(MetricAskNotFound, labels)
	}
}

// RecordRewriteMetrics records the outcome of a tone rewrite
func RecordRewriteMetrics(provider, outcome string, duration time.Duration) {
	metrics := GetGlobalMetrics()

	labels := map[string]string{"provider": provider, "outcome": outcome}
	metrics.Inc(MetricRewriteTotal, labels)
	if duration > 0 {
		metrics.Observe(MetricRewriteDuration, duration.Seconds(), map[string]string{"provider": provider})
	}
}

// RecordRewriteCache records a rewrite cache lookup
func RecordRewriteCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	GetGlobalMetrics().Inc(MetricRewriteCache, map[string]string{"result": result})
}

// RecordTableLoad records a reference table load and the resulting row counts
func RecordTableLoad(source string, duration time.Duration, counts map[string]int, err error) {
	metrics := GetGlobalMetrics()

	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.Inc(MetricTableLoads, map[string]string{"source": source, "status": status})
	metrics.Observe(MetricTableDuration, duration.Seconds(), map[string]string{"source": source})

	for table, n := range counts {
		metrics.Set(MetricTableRows, float64(n), map[string]string{"table": table})
	}
}

// RecordResolverFault records a recovered failure inside a resolver
func RecordResolverFault(resolver string) {
	GetGlobalMetrics().Inc(MetricResolverFaults, map[string]string{"resolver": resolver})
}

// RecordHTTPMetrics records metrics for HTTP requests
func RecordHTTPMetrics(method, path string, statusCode int, duration time.Duration, responseSize int) {
	metrics := GetGlobalMetrics()

	labels := map[string]string{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(statusCode),
	}

	metrics.Inc(MetricHTTPRequests, labels)
	metrics.Observe(MetricHTTPDuration, duration.Seconds(), labels)

	// Errors (4xx, 5xx)
	if statusCode >= 400 {
		metrics.Inc(MetricHTTPErrors, labels)
	}

	if responseSize > 0 {
		metrics.Observe(MetricHTTPResponseSize, float64(responseSize), labels)
	}
}
