// Package metrics provides Prometheus metrics for the gobu bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command outcomes used as the "outcome" label.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeFailure = "failure"
	OutcomeUnknown = "unknown_command"
)

const (
	namespace = "gobu"
	subsystem = "bot"
)

// latencyBuckets are in milliseconds; queries are in-memory so most land
// well under one.
var latencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}

// Manager manages all Prometheus metrics for the bot.
type Manager struct {
	registry prometheus.Registerer

	// Query metrics
	commands       *prometheus.CounterVec
	commandLatency *prometheus.HistogramVec
	failures       *prometheus.CounterVec

	// Catalog metrics
	catalogRecords     *prometheus.GaugeVec
	catalogAliases     *prometheus.GaugeVec
	datasetLoadLatency prometheus.Gauge

	// Gateway metrics
	gatewayEvents      *prometheus.CounterVec
	cooldownSuppressed prometheus.Counter
	cooldownGuilds     prometheus.Gauge
	pagerSessions      prometheus.Gauge
	pagerInteractions  *prometheus.CounterVec
	replySendErrors    prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	responseCache       *prometheus.CounterVec

	// Queue metrics
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueued          prometheus.Counter
	queueDequeued          prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Worker metrics
	workerActiveCount       prometheus.Gauge
	workerMessagesPerSecond prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	errorsByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{registry: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	})
}

func (m *Manager) gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: latencyBuckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: latencyBuckets,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one registration per metric
	m.commands = m.counterVec("commands_total", "Commands executed by command and outcome", "command", "outcome")
	m.commandLatency = m.histogramVec("command_latency_milliseconds", "Command resolution latency in milliseconds", "command")
	m.failures = m.counterVec("query_failures_total", "Typed query failures by kind", "kind")

	m.catalogRecords = m.gaugeVec("catalog_records", "Records loaded per entity", "entity")
	m.catalogAliases = m.gaugeVec("catalog_aliases", "Aliases generated per entity", "entity")
	m.datasetLoadLatency = m.gauge("dataset_load_milliseconds", "Time spent loading and indexing the dataset")

	m.gatewayEvents = m.counterVec("gateway_events_total", "Chat gateway events by type", "event")
	m.cooldownSuppressed = m.counter("cooldown_suppressed_total", "Mention replies suppressed by the per-guild cooldown")
	m.cooldownGuilds = m.gauge("cooldown_tracked_guilds", "Guilds currently tracked by the cooldown")
	m.pagerSessions = m.gauge("pager_sessions", "Live paginated reply sessions")
	m.pagerInteractions = m.counterVec("pager_interactions_total", "Pager button presses by action", "action")
	m.replySendErrors = m.counter("reply_send_errors_total", "Replies the chat platform rejected")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")
	m.responseCache = m.counterVec("response_cache_total", "HTTP response cache lookups by result", "result")

	m.queueSize = m.gauge("queue_size", "Current number of queued invocations")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue utilization ratio (size / capacity)")
	m.queueEnqueued = m.counter("queue_enqueue_total", "Invocations enqueued")
	m.queueDequeued = m.counter("queue_dequeue_total", "Invocations dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Invocations rejected by the queue")
	m.queueProcessingLatency = m.histogram("queue_processing_latency_milliseconds", "Enqueue latency in milliseconds")

	m.workerActiveCount = m.gauge("worker_active_count", "Workers running")
	m.workerMessagesPerSecond = m.gauge("worker_messages_per_second", "Invocations handled per second")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Invocation handling latency in milliseconds")
	m.workerErrors = m.counter("worker_errors_total", "Invocations whose handler returned an error")

	m.errorsByComponent = m.counterVec("errors_total", "Errors by component and type", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem,
		Name:    "system_gc_pause_time_milliseconds",
		Help:    "GC pause time in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// Query Metrics Functions.

// RecordCommand counts one executed command.
func RecordCommand(command, outcome string) {
	globalManager.commands.WithLabelValues(command, outcome).Inc()
}

// RecordCommandLatency observes resolution latency for a command.
func RecordCommandLatency(command string, latencyMs float64) {
	globalManager.commandLatency.WithLabelValues(command).Observe(latencyMs)
}

// RecordQueryFailure counts a typed failure by kind.
func RecordQueryFailure(kind string) {
	globalManager.failures.WithLabelValues(kind).Inc()
}

// Catalog Metrics Functions.

// UpdateCatalogRecords sets the record count for an entity.
func UpdateCatalogRecords(entity string, count int) {
	globalManager.catalogRecords.WithLabelValues(entity).Set(float64(count))
}

// UpdateCatalogAliases sets the alias count for an entity.
func UpdateCatalogAliases(entity string, count int) {
	globalManager.catalogAliases.WithLabelValues(entity).Set(float64(count))
}

// RecordDatasetLoad sets how long the last dataset load took.
func RecordDatasetLoad(latencyMs float64) {
	globalManager.datasetLoadLatency.Set(latencyMs)
}

// Gateway Metrics Functions.

// RecordGatewayEvent counts a chat gateway event.
func RecordGatewayEvent(event string) {
	globalManager.gatewayEvents.WithLabelValues(event).Inc()
}

// RecordCooldownSuppressed counts a mention reply dropped by the cooldown.
func RecordCooldownSuppressed() {
	globalManager.cooldownSuppressed.Inc()
}

// UpdateCooldownGuilds sets the number of guilds the cooldown tracks.
func UpdateCooldownGuilds(count int) {
	globalManager.cooldownGuilds.Set(float64(count))
}

// UpdatePagerSessions sets the number of live pager sessions.
func UpdatePagerSessions(count int) {
	globalManager.pagerSessions.Set(float64(count))
}

// RecordPagerInteraction counts a pager button press.
func RecordPagerInteraction(action string) {
	globalManager.pagerInteractions.WithLabelValues(action).Inc()
}

// RecordReplySendError counts a reply the platform rejected.
func RecordReplySendError() {
	globalManager.replySendErrors.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordCacheHit counts a response cache hit.
func RecordCacheHit() {
	globalManager.responseCache.WithLabelValues("hit").Inc()
}

// RecordCacheMiss counts a response cache miss.
func RecordCacheMiss() {
	globalManager.responseCache.WithLabelValues("miss").Inc()
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueProcessingLatency records queue processing latency.
func RecordQueueProcessingLatency(latencyMs float64) {
	globalManager.queueProcessingLatency.Observe(latencyMs)
}

// Worker Metrics Functions.

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// UpdateWorkerMessagesPerSecond sets the average invocations handled per second.
func UpdateWorkerMessagesPerSecond(rate float64) {
	globalManager.workerMessagesPerSecond.Set(rate)
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
