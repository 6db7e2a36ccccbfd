package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Pass results recorded by the reconciliation agent.
const (
	PassApplied         = "applied"
	PassSkippedInFlight = "skipped_in_flight"
	PassFailed          = "failed"
)

// AgentMetrics counts reconciliation passes and applied overlays.
type AgentMetrics struct {
	passes   *prometheus.CounterVec
	overlays prometheus.Counter
}

var (
	agentMetricsOnce sync.Once
	agentMetrics     *AgentMetrics
)

func Agent() *AgentMetrics {
	return AgentWithConfig(Config{})
}

func AgentWithConfig(cfg Config) *AgentMetrics {
	agentMetricsOnce.Do(func() {
		agentMetrics = newAgentMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return agentMetrics
}

func ResetAgentMetricsForTest() {
	agentMetricsOnce = sync.Once{}
	agentMetrics = nil
}

func newAgentMetrics(registerer prometheus.Registerer, cfg Config) *AgentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "storefront"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	passes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "storefront_reconcile_passes_total",
			Help:        "Reconciliation passes by result.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // applied | skipped_in_flight | failed
	)

	overlays := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "storefront_reconcile_overlays_total",
			Help:        "Line overlays handed to the rendering surface.",
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(passes, overlays)

	return &AgentMetrics{
		passes:   passes,
		overlays: overlays,
	}
}

func (m *AgentMetrics) IncPass(result string) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(result).Inc()
}

func (m *AgentMetrics) AddOverlays(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.overlays.Add(float64(count))
}
