package rag

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable is matched by every StoreUnavailableError.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrEmbedding marks failures of the embedding model.
	ErrEmbedding = errors.New("embedding failed")

	// ErrRerank marks failures of the relevance model.
	ErrRerank = errors.New("rerank failed")

	// ErrGeneration marks failures of the generative model.
	ErrGeneration = errors.New("generation failed")
)

// StoreUnavailableError reports that the document store could not serve a query,
// either because it is unreachable or because the collection does not exist.
type StoreUnavailableError struct {
	Collection string
	Err        error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("document store unavailable for collection %s: %v", e.Collection, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStoreUnavailable) hold for any StoreUnavailableError.
func (e *StoreUnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}
