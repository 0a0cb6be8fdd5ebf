package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks admissions-rag/internal/vectorstore DocumentStore

import (
	"context"
	"errors"
)

// ErrCollectionNotFound is returned when an operation targets a collection that does not exist.
var ErrCollectionNotFound = errors.New("collection not found")

// ErrDocumentNotFound is returned by GetByID when no passage has the requested id.
var ErrDocumentNotFound = errors.New("document not found")

// Record is a passage ready for insertion.
type Record struct {
	ID       string
	Content  string
	Metadata map[string]string
	Vector   []float32
}

// Match is a passage returned by a similarity query or an id lookup.
// Score is the cosine similarity to the query vector; zero for id lookups.
type Match struct {
	ID       string
	Content  string
	Metadata map[string]string
	Score    float32
}

// DocumentStore defines the interface for passage storage operations.
type DocumentStore interface {
	// Insert adds records to the collection.
	Insert(ctx context.Context, collection string, records []Record) error

	// Query returns up to n passages closest to vector, best first.
	Query(ctx context.Context, collection string, vector []float32, n int) ([]Match, error)

	// GetByID returns the passage stored under id.
	GetByID(ctx context.Context, collection, id string) (Match, error)

	// Count returns the number of passages in the collection.
	Count(ctx context.Context, collection string) (int, error)

	// CollectionExists reports whether the collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// EnsureCollection creates the collection if it does not exist.
	EnsureCollection(ctx context.Context, collection string, vectorSize int, metadata map[string]string) error
}
