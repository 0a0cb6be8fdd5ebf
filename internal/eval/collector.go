package eval

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"admissions-rag/internal/metrics"
	"admissions-rag/internal/storage"
)

// scanRuns bounds how many recent runs are read per scrape to find the latest of each mode.
const scanRuns = 100

// ScoreCollector exports the Hit Rate and MRR of the newest stored run of each mode.
type ScoreCollector struct {
	runs    storage.EvalStore
	timeout time.Duration
}

// NewScoreCollector creates a collector over the evaluation run store.
func NewScoreCollector(runs storage.EvalStore) *ScoreCollector {
	return &ScoreCollector{runs: runs, timeout: 2 * time.Second}
}

// Describe implements prometheus.Collector.
func (c *ScoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- metrics.EvaluationScoreDesc
}

// Collect implements prometheus.Collector. A store error yields no samples for the scrape.
func (c *ScoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	runs, err := c.runs.ListRuns(ctx, scanRuns)
	if err != nil {
		slog.WarnContext(ctx, "failed to list evaluation runs for metrics", "error", err)
		return
	}

	seen := make(map[string]bool)
	for _, run := range runs {
		if seen[run.Mode] {
			continue
		}
		seen[run.Mode] = true
		ch <- prometheus.MustNewConstMetric(metrics.EvaluationScoreDesc, prometheus.GaugeValue, run.HitRate, run.Mode, "hit_rate")
		ch <- prometheus.MustNewConstMetric(metrics.EvaluationScoreDesc, prometheus.GaugeValue, run.MRR, run.Mode, "mrr")
	}
}
