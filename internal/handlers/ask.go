package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"admissions-rag/internal/contextutil"
	"admissions-rag/internal/service"
)

// AskHandler handles HTTP requests for admissions questions.
type AskHandler struct {
	answerService service.AnswerService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(answerService service.AnswerService) *AskHandler {
	return &AskHandler{
		answerService: answerService,
	}
}

// AskRequest represents the HTTP request payload for a question.
//
// swagger:model AskRequest
type AskRequest struct {
	// The question to answer
	Question string `json:"question"`

	// Earlier turns of the conversation. Accepted but not used.
	History []service.Turn `json:"history,omitempty"`
}

// AskResponse represents the HTTP response payload for a question.
//
// swagger:model AskResponse
type AskResponse struct {
	// The generated answer
	Answer string `json:"answer"`

	// Contents of the passages the answer was grounded on, best first
	Sources []string `json:"sources"`

	// The answer followed by numbered source previews, as shown in chat
	Rendered string `json:"rendered"`
}

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for questions.
//
// swagger:route POST /api/v1/ask askQuestion
//
// # Ask an admissions question
//
// Retrieves the most relevant passages, reranks them and generates an answer
// grounded on them. While the models are loading or if they failed to load,
// a fixed apology is returned with status 200.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Answer with sources
//	  schema:
//	    "$ref": "#/definitions/AskResponse"
//	'400':
//	  description: Bad request (missing or empty question)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: External service error (embedding or generation model failed)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.answerService.Ask(ctx, service.AskRequest{
		Question: req.Question,
		History:  req.History,
	})
	if err != nil {
		handleServiceError(w, r, err, "Failed to answer question")
		return
	}

	writeJSON(w, r, http.StatusOK, AskResponse{
		Answer:   resp.Answer,
		Sources:  resp.Sources,
		Rendered: resp.Rendered,
	})
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if errors.Is(err, service.ErrExternalService) {
		writeError(w, http.StatusBadGateway, "External service error")
		return
	}

	writeError(w, http.StatusInternalServerError, defaultMsg)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
