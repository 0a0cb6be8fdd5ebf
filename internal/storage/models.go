package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// Passage is the catalogue entry of a passage written to the document store.
type Passage struct {
	ID         string            // Stable passage id, same as in the document store
	SourceType string            // major, faculty or award
	Content    string            // Embedded text
	Metadata   map[string]string // Cleaned flat metadata
	CreatedAt  time.Time
}

// EvalRun is one stored evaluation run.
type EvalRun struct {
	ID        string // UUID
	Mode      string // retrieval or reranked
	TopK      int
	HitRate   float64
	MRR       float64
	ItemCount int
	CreatedAt time.Time
}

// EvalResult is one evaluated query of a run. Rank 0 means not found.
type EvalResult struct {
	RunID         string
	Position      int // Index of the item in the evaluation set
	Query         string
	ExpectedDocID string
	ReturnedIDs   []string // Passage ids returned by the ranker, best first
	Rank          int
	Hit           bool
	// ReciprocalRank is 1/Rank, or 0 when not found
	ReciprocalRank float64
}
