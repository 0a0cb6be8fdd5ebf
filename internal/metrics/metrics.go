// Package metrics holds the Prometheus collectors for the question-answering pipeline.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "admissions_rag"

// Pipeline stages.
const (
	StageEmbed    = "embed"
	StageRetrieve = "retrieve"
	StageRerank   = "rerank"
	StageGenerate = "generate"
)

// Answer outcomes.
const (
	OutcomeAnswered         = "answered"
	OutcomeNotFound         = "not_found"
	OutcomeStoreUnavailable = "store_unavailable"
	OutcomeRerankFailed     = "rerank_failed"
	OutcomeGenerationFailed = "generation_failed"
	OutcomeUnavailable      = "service_unavailable"
)

var (
	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"},
	)

	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Answers produced, by terminal outcome",
		},
		[]string{"outcome"},
	)

	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_requests_total",
			Help:      "Requests sent to model servers",
		},
		[]string{"kind", "model", "status"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

// EvaluationScoreDesc describes the latest stored evaluation metric per ranker mode.
// Values are produced at scrape time by a collector over the evaluation run store.
var EvaluationScoreDesc = prometheus.NewDesc(
	prometheus.BuildFQName(namespace, "", "evaluation_score"),
	"Latest stored evaluation metric per ranker mode",
	[]string{"mode", "metric"},
	nil,
)

var registered bool

// Register registers all collectors with the default registry. Safe to call more than once.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(AnswersTotal)
	prometheus.MustRegister(ModelRequestsTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	registered = true
}

// ObserveStage records how long a stage took.
func ObserveStage(stage string, seconds float64) {
	StageDuration.WithLabelValues(stage).Observe(seconds)
}

// IncAnswer counts a terminal answer outcome.
func IncAnswer(outcome string) {
	AnswersTotal.WithLabelValues(outcome).Inc()
}

// IncModelRequest counts one model server request.
func IncModelRequest(kind, model string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ModelRequestsTotal.WithLabelValues(kind, model, status).Inc()
}
