package rag

// RankedCandidate is a passage returned by the retrieval stage.
type RankedCandidate struct {
	// ID is the stable passage identifier.
	ID string `json:"id"`
	// Content is the passage text that was embedded.
	Content string `json:"content"`
	// Metadata is the flat metadata stored next to the passage.
	Metadata map[string]string `json:"metadata"`
	// SimilarityScore is the vector similarity to the query, higher is closer.
	SimilarityScore float64 `json:"similarity_score"`
}

// RerankedResult is a passage scored by the relevance model.
type RerankedResult struct {
	// ID is the stable passage identifier.
	ID string `json:"id"`
	// Content is the passage text.
	Content string `json:"content"`
	// Metadata is the flat metadata stored next to the passage.
	Metadata map[string]string `json:"metadata"`
	// RelevanceScore is the relevance model score. Only comparable within one query.
	RelevanceScore float64 `json:"relevance_score"`
}

// AnswerResult is the outcome of answering one query.
type AnswerResult struct {
	// Answer is the generated (or fixed) answer text.
	Answer string `json:"answer"`
	// Sources are the contents of the passages given to the model, in rank order.
	// Empty when no passage was used.
	Sources []string `json:"sources"`
}
