package observability

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/humanizer-backend/internal/platform/envutil"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

const namespace = "humanizer"

// Metrics owns its registry so tests can build isolated instances. All
// methods are safe on a nil receiver, which is what callers get when metrics
// are disabled.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	rewrites       *prometheus.CounterVec
	rewriteChars   prometheus.Counter
	rewriteEdits   prometheus.Histogram
	rewriteLatency prometheus.Histogram
	rejections     *prometheus.CounterVec

	usageResets prometheus.Counter
	workerRuns  *prometheus.CounterVec

	pgStats   *prometheus.GaugeVec
	redisUp   prometheus.Gauge
	redisPing prometheus.Gauge

	sloCompliance *prometheus.GaugeVec
	sloBudget     *prometheus.GaugeVec
	sloBurn       *prometheus.GaugeVec

	// Running totals the SLO evaluator diffs between ticks.
	apiTotal      atomic.Uint64
	apiError      atomic.Uint64
	apiGood       atomic.Uint64
	workerTotal   atomic.Uint64
	workerError   atomic.Uint64
	latencyTarget time.Duration
}

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", true)
}

func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		registry:      reg,
		latencyTarget: envutil.Duration("SLO_API_LATENCY_THRESHOLD", time.Second),
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request latency in seconds by method/route/status.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_inflight_requests",
			Help:      "In-flight API requests.",
		}),
		rewrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rewrites_total",
			Help:      "Completed rewrites by mode and source.",
		}, []string{"mode", "source"}),
		rewriteChars: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rewrite_characters_total",
			Help:      "Input characters processed by the rewriter.",
		}),
		rewriteEdits: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rewrite_edits",
			Help:      "Edits produced per rewrite.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
		rewriteLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rewrite_duration_seconds",
			Help:      "Time spent inside the rewriter.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rewrite_rejections_total",
			Help:      "Rewrite requests refused before running, by reason.",
		}, []string{"reason"}),
		usageResets: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_resets_total",
			Help:      "Profiles whose monthly usage was reset.",
		}),
		workerRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_runs_total",
			Help:      "Background job runs by job and status.",
		}, []string{"job", "status"}),
		pgStats: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool",
			Help:      "database/sql pool statistics.",
		}, []string{"stat"}),
		redisUp: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "redis_up",
			Help:      "1 when the last Redis ping succeeded.",
		}),
		redisPing: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "redis_ping_seconds",
			Help:      "Latency of the last Redis ping.",
		}),
		sloCompliance: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slo_compliance",
			Help:      "Observed SLI over the rolling window.",
		}, []string{"slo", "window"}),
		sloBudget: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slo_error_budget_remaining",
			Help:      "Fraction of the error budget left over the rolling window.",
		}, []string{"slo", "window"}),
		sloBurn: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slo_burn_rate",
			Help:      "Error budget burn rate over the rolling window.",
		}, []string{"slo", "window"}),
	}
}

// Init builds the process metrics with Go runtime and process collectors, or
// returns nil when METRICS_ENABLED is off.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		if log != nil {
			log.Info("metrics disabled")
		}
		return nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the exposition format, or 503 when metrics are disabled.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())

	m.apiTotal.Add(1)
	if strings.HasPrefix(status, "5") {
		m.apiError.Add(1)
	} else if dur <= m.latencyTarget {
		m.apiGood.Add(1)
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveRewrite(mode, source string, characters, edits int, dur time.Duration) {
	if m == nil {
		return
	}
	m.rewrites.WithLabelValues(mode, source).Inc()
	m.rewriteChars.Add(float64(characters))
	m.rewriteEdits.Observe(float64(edits))
	m.rewriteLatency.Observe(dur.Seconds())
}

func (m *Metrics) IncRejection(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) AddUsageResets(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.usageResets.Add(float64(n))
}

func (m *Metrics) IncWorkerRun(job, status string) {
	if m == nil {
		return
	}
	m.workerRuns.WithLabelValues(job, status).Inc()
	m.workerTotal.Add(1)
	if status != "ok" {
		m.workerError.Add(1)
	}
}

func scrapeInterval() time.Duration {
	return envutil.Duration("METRICS_SCRAPE_INTERVAL", 10*time.Second)
}

func (m *Metrics) StartPostgresCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.pgStats.WithLabelValues("open_connections").Set(float64(stats.OpenConnections))
				m.pgStats.WithLabelValues("in_use").Set(float64(stats.InUse))
				m.pgStats.WithLabelValues("idle").Set(float64(stats.Idle))
				m.pgStats.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
				m.pgStats.WithLabelValues("wait_duration_seconds").Set(stats.WaitDuration.Seconds())
				m.pgStats.WithLabelValues("max_open_connections").Set(float64(stats.MaxOpenConnections))
			}
		}
	}()
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb redis.UniversalClient) {
	if m == nil || rdb == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil && !strings.Contains(err.Error(), "context canceled") {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
