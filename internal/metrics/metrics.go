package metrics

import (
	"net/http"

	"recipe-assistant/internal/core/resolver"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder 記錄解析流程與 HTTP 請求的指標
type Recorder struct {
	registry     *prometheus.Registry
	tierOutcomes *prometheus.CounterVec
	tierDuration *prometheus.HistogramVec
	replies      *prometheus.CounterVec
	requests     *prometheus.CounterVec
}

// New 建立 Recorder，指標註冊在獨立的 registry
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		tierOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recipe_assistant",
			Name:      "tier_outcomes_total",
			Help:      "Tier attempts by tier and outcome",
		}, []string{"tier", "outcome"}),
		tierDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "recipe_assistant",
			Name:      "tier_duration_seconds",
			Help:      "Tier attempt latency",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"tier"}),
		replies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recipe_assistant",
			Name:      "replies_total",
			Help:      "Replies by the tier that produced them",
		}, []string{"tier"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recipe_assistant",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status class",
		}, []string{"route", "status"}),
	}
}

// ObserveTier 實作 resolver.Observer
func (r *Recorder) ObserveTier(tier resolver.TierName, outcome resolver.Outcome, seconds float64) {
	r.tierOutcomes.WithLabelValues(string(tier), string(outcome)).Inc()
	r.tierDuration.WithLabelValues(string(tier)).Observe(seconds)
	if outcome == resolver.OutcomeHit {
		r.replies.WithLabelValues(string(tier)).Inc()
	}
}

// ObserveRequest 記錄一次 HTTP 請求
func (r *Recorder) ObserveRequest(route string, status int) {
	r.requests.WithLabelValues(route, statusClass(status)).Inc()
}

// Handler 輸出 Prometheus 格式的指標
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
