package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_answerer.go -package=mocks admissions-rag/internal/service Answerer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_answer_service.go -package=mocks -mock_names=AnswerService=MockAnswerService admissions-rag/internal/service AnswerService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"admissions-rag/internal/contextutil"
	"admissions-rag/internal/metrics"
	"admissions-rag/internal/rag"
)

// UnavailableAnswer is returned while the models are not ready.
const UnavailableAnswer = rag.TechnicalDifficultyAnswer

// Answerer runs the question-answering pipeline.
// This interface is defined from the service layer's perspective (consumer-first).
type Answerer interface {
	Answer(ctx context.Context, query string) (rag.AnswerResult, error)
}

// State is the readiness of the models behind the service.
type State string

const (
	StateInitializing State = "initializing"
	StateReady        State = "ready"
	StateFailed       State = "failed"
)

// ReadinessCheck probes one model or dependency during Initialize.
type ReadinessCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Turn is one earlier exchange of the conversation.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// AskRequest represents a question in the domain layer.
// History is accepted but not used to answer.
type AskRequest struct {
	Question string
	History  []Turn
}

// AskResponse represents an answer in the domain layer.
type AskResponse struct {
	Answer   string
	Sources  []string
	Rendered string
}

// AnswerService answers admissions questions once its models are ready.
type AnswerService interface {
	// Initialize runs every check in order. The first failure marks the service
	// failed for good and returns an error matching ErrModelLoad.
	Initialize(ctx context.Context, checks ...ReadinessCheck) error
	// State reports the current readiness.
	State() State
	// Ask validates the request and answers it.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// answerService implements AnswerService.
type answerService struct {
	answerer Answerer
	state    atomic.Value // State
}

// NewAnswerService creates a new AnswerService in the initializing state.
func NewAnswerService(answerer Answerer) AnswerService {
	s := &answerService{answerer: answerer}
	s.state.Store(StateInitializing)
	return s
}

func (s *answerService) State() State {
	return s.state.Load().(State)
}

// Initialize probes the models once. A failed service is not retried.
func (s *answerService) Initialize(ctx context.Context, checks ...ReadinessCheck) error {
	logger := contextutil.LoggerFromContext(ctx)

	if state := s.State(); state != StateInitializing {
		return fmt.Errorf("service already initialized: %s", state)
	}

	for _, check := range checks {
		logger.InfoContext(ctx, "probing model", "check", check.Name)
		if err := check.Probe(ctx); err != nil {
			s.state.Store(StateFailed)
			logger.ErrorContext(ctx, "model probe failed", "check", check.Name, "error", err)
			return fmt.Errorf("%w: %s: %w", ErrModelLoad, check.Name, err)
		}
	}

	s.state.Store(StateReady)
	logger.InfoContext(ctx, "answer service ready", "checks", len(checks))
	return nil
}

// Ask answers a question. Before the service is ready it returns the fixed
// unavailable answer without error.
func (s *answerService) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		logger.WarnContext(ctx, "empty question in ask request")
		return AskResponse{}, &ValidationError{
			Field:   "question",
			Message: "cannot be empty",
		}
	}

	if state := s.State(); state != StateReady {
		logger.WarnContext(ctx, "answer service not ready", "state", state)
		metrics.IncAnswer(metrics.OutcomeUnavailable)
		return AskResponse{
			Answer:   UnavailableAnswer,
			Sources:  []string{},
			Rendered: UnavailableAnswer,
		}, nil
	}

	if len(req.History) > 0 {
		logger.DebugContext(ctx, "ignoring conversation history", "turns", len(req.History))
	}

	result, err := s.answerer.Answer(ctx, question)
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer question", "error", err)
		if errors.Is(err, rag.ErrEmbedding) || errors.Is(err, rag.ErrRerank) || errors.Is(err, rag.ErrGeneration) {
			return AskResponse{}, fmt.Errorf("%w: %w", ErrExternalService, err)
		}
		return AskResponse{}, WrapError(err, "failed to answer question")
	}

	sources := result.Sources
	if sources == nil {
		sources = []string{}
	}

	logger.InfoContext(ctx, "question answered", "question_length", len(question), "answer_length", len(result.Answer), "sources", len(sources))
	return AskResponse{
		Answer:   result.Answer,
		Sources:  sources,
		Rendered: Render(result.Answer, sources),
	}, nil
}
