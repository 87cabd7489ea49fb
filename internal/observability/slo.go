package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/humanizer-backend/internal/platform/envutil"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type rollingSum struct {
	values []float64
	idx    int
	total  float64
}

func newRollingSum(size int) *rollingSum {
	if size < 1 {
		size = 1
	}
	return &rollingSum{values: make([]float64, size)}
}

func (r *rollingSum) add(v float64) {
	r.total += v - r.values[r.idx]
	r.values[r.idx] = v
	r.idx++
	if r.idx >= len(r.values) {
		r.idx = 0
	}
}

// SLOEvaluator turns the running API and worker totals into compliance,
// budget and burn-rate gauges over a rolling window.
type SLOEvaluator struct {
	metrics *Metrics
	log     *logger.Logger

	interval    time.Duration
	windowLabel string

	apiAvailTarget      float64
	apiLatencyTarget    float64
	workerSuccessTarget float64

	apiTotal    *rollingSum
	apiError    *rollingSum
	apiGood     *rollingSum
	workerTotal *rollingSum
	workerError *rollingSum

	prevApiTotal    float64
	prevApiError    float64
	prevApiGood     float64
	prevWorkerTotal float64
	prevWorkerError float64

	alertWebhook     string
	alertMinInterval time.Duration
	alertBurnWarn    float64
	alertBurnCrit    float64
	httpClient       *http.Client

	alertMu    sync.Mutex
	lastAlerts map[string]time.Time
}

type SLOConfig struct {
	Interval            time.Duration
	Window              time.Duration
	APIAvailTarget      float64
	APILatencyTarget    float64
	WorkerSuccessTarget float64
	AlertWebhook        string
	AlertMinInterval    time.Duration
	AlertBurnWarn       float64
	AlertBurnCrit       float64
}

func LoadSLOConfig() SLOConfig {
	return SLOConfig{
		Interval:            envutil.Duration("SLO_EVAL_INTERVAL", time.Minute),
		Window:              envutil.Duration("SLO_WINDOW", 30*24*time.Hour),
		APIAvailTarget:      clamp01(envutil.Float("SLO_API_AVAIL_TARGET", 0.995)),
		APILatencyTarget:    clamp01(envutil.Float("SLO_API_LATENCY_TARGET", 0.95)),
		WorkerSuccessTarget: clamp01(envutil.Float("SLO_WORKER_SUCCESS_TARGET", 0.98)),
		AlertWebhook:        strings.TrimSpace(envutil.String("SLO_ALERT_WEBHOOK_URL", "")),
		AlertMinInterval:    envutil.Duration("SLO_ALERT_MIN_INTERVAL", 15*time.Minute),
		AlertBurnWarn:       envutil.Float("SLO_ALERT_BURN_RATE_WARN", 2),
		AlertBurnCrit:       envutil.Float("SLO_ALERT_BURN_RATE_CRIT", 10),
	}
}

// StartSLOEvaluator ticks until ctx is cancelled. It is a no-op on nil
// metrics or when SLO_ENABLED is off.
func (m *Metrics) StartSLOEvaluator(ctx context.Context, log *logger.Logger) {
	if m == nil || !envutil.Bool("SLO_ENABLED", false) {
		return
	}
	eval := NewSLOEvaluator(m, log, LoadSLOConfig())
	go eval.run(ctx)
	if log != nil {
		log.Info("SLO evaluator started", "window", eval.windowLabel, "interval", eval.interval.String())
	}
}

func NewSLOEvaluator(m *Metrics, log *logger.Logger, cfg SLOConfig) *SLOEvaluator {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Window < cfg.Interval {
		cfg.Window = cfg.Interval
	}
	size := int(cfg.Window / cfg.Interval)
	return &SLOEvaluator{
		metrics:             m,
		log:                 log,
		interval:            cfg.Interval,
		windowLabel:         formatWindowLabel(cfg.Window),
		apiAvailTarget:      cfg.APIAvailTarget,
		apiLatencyTarget:    cfg.APILatencyTarget,
		workerSuccessTarget: cfg.WorkerSuccessTarget,
		apiTotal:            newRollingSum(size),
		apiError:            newRollingSum(size),
		apiGood:             newRollingSum(size),
		workerTotal:         newRollingSum(size),
		workerError:         newRollingSum(size),
		alertWebhook:        cfg.AlertWebhook,
		alertMinInterval:    cfg.AlertMinInterval,
		alertBurnWarn:       cfg.AlertBurnWarn,
		alertBurnCrit:       cfg.AlertBurnCrit,
		httpClient:          &http.Client{Timeout: 5 * time.Second},
		lastAlerts:          map[string]time.Time{},
	}
}

func (e *SLOEvaluator) run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.evaluate(ctx)
		}
	}
}

func (e *SLOEvaluator) evaluate(ctx context.Context) {
	if e.metrics == nil {
		return
	}
	apiTotal := float64(e.metrics.apiTotal.Load())
	apiError := float64(e.metrics.apiError.Load())
	apiGood := float64(e.metrics.apiGood.Load())
	workerTotal := float64(e.metrics.workerTotal.Load())
	workerError := float64(e.metrics.workerError.Load())

	e.apiTotal.add(delta(apiTotal, e.prevApiTotal))
	e.apiError.add(delta(apiError, e.prevApiError))
	e.apiGood.add(delta(apiGood, e.prevApiGood))
	e.workerTotal.add(delta(workerTotal, e.prevWorkerTotal))
	e.workerError.add(delta(workerError, e.prevWorkerError))

	e.prevApiTotal = apiTotal
	e.prevApiError = apiError
	e.prevApiGood = apiGood
	e.prevWorkerTotal = workerTotal
	e.prevWorkerError = workerError

	e.evalSLO(ctx, "api_availability", e.apiTotal.total, e.apiError.total, e.apiAvailTarget)
	e.evalSLO(ctx, "api_latency", e.apiTotal.total, e.apiTotal.total-e.apiGood.total, e.apiLatencyTarget)
	e.evalSLO(ctx, "worker_success", e.workerTotal.total, e.workerError.total, e.workerSuccessTarget)
}

func (e *SLOEvaluator) evalSLO(ctx context.Context, name string, total, bad, target float64) {
	m := e.metrics
	if total <= 0 {
		m.sloCompliance.WithLabelValues(name, e.windowLabel).Set(1)
		m.sloBudget.WithLabelValues(name, e.windowLabel).Set(1)
		m.sloBurn.WithLabelValues(name, e.windowLabel).Set(0)
		return
	}
	sli := clamp01(1 - bad/total)
	burn := 0.0
	if target < 1 {
		burn = (1 - sli) / (1 - target)
	}
	budget := clamp01(1 - burn)
	m.sloCompliance.WithLabelValues(name, e.windowLabel).Set(sli)
	m.sloBudget.WithLabelValues(name, e.windowLabel).Set(budget)
	m.sloBurn.WithLabelValues(name, e.windowLabel).Set(burn)

	severity := ""
	switch {
	case burn >= e.alertBurnCrit && e.alertBurnCrit > 0:
		severity = "critical"
	case burn >= e.alertBurnWarn && e.alertBurnWarn > 0:
		severity = "warning"
	}
	if severity == "" || !e.shouldAlert(name+":"+severity) {
		return
	}
	if e.log != nil {
		e.log.Warn("SLO burn rate high", "slo", name, "severity", severity, "sli", sli, "target", target, "burn_rate", burn)
	}
	if e.alertWebhook != "" {
		e.sendAlert(ctx, name, severity, sli, target, burn, budget)
	}
}

func (e *SLOEvaluator) shouldAlert(key string) bool {
	e.alertMu.Lock()
	defer e.alertMu.Unlock()
	last := e.lastAlerts[key]
	if !last.IsZero() && time.Since(last) < e.alertMinInterval {
		return false
	}
	e.lastAlerts[key] = time.Now()
	return true
}

func (e *SLOEvaluator) sendAlert(ctx context.Context, name, severity string, sli, target, burn, budget float64) {
	body, _ := json.Marshal(map[string]any{
		"title":                  "SLO burn rate alert",
		"service":                namespace,
		"severity":               severity,
		"slo":                    name,
		"window":                 e.windowLabel,
		"sli":                    sli,
		"target":                 target,
		"burn_rate":              burn,
		"error_budget_remaining": budget,
		"timestamp":              time.Now().UTC().Format(time.RFC3339),
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.alertWebhook, bytes.NewReader(body))
	if err != nil {
		if e.log != nil {
			e.log.Warn("slo alert request build failed", "error", err, "slo", name)
		}
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.httpClient.Do(req)
	if err != nil {
		if e.log != nil {
			e.log.Warn("slo alert post failed", "error", err, "slo", name)
		}
		return
	}
	_ = resp.Body.Close()
	if e.log != nil {
		e.log.Info("slo alert sent", "slo", name, "severity", severity, "status", resp.StatusCode)
	}
}

// delta treats a drop as a counter reset.
func delta(current, prev float64) float64 {
	if current < prev {
		return current
	}
	return current - prev
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func formatWindowLabel(window time.Duration) string {
	hours := int(window.Hours())
	switch {
	case hours >= 24 && window%(24*time.Hour) == 0:
		return strconv.Itoa(hours/24) + "d"
	case hours >= 1:
		return strconv.Itoa(hours) + "h"
	default:
		return strconv.Itoa(int(window.Minutes())) + "m"
	}
}
