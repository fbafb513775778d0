package domain

import (
	"errors"
	"fmt"
)

// ErrEmbeddingUnavailable means the provider returned no vector for a
// query. Callers treat it as an empty search result, not a failure.
var ErrEmbeddingUnavailable = errors.New("embedding unavailable")

// ExtractionError reports a document that could not be converted to
// text. Ingestion skips the file and continues the batch.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// PersistenceError reports that the index could not be written to
// durable storage. In-memory state stays valid and keeps serving.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist index %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ModelError is a language model call failure. It is the only error the
// orchestrator surfaces to the caller as a failed turn.
type ModelError struct {
	Status int
	Err    error
}

func (e *ModelError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("model call failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("model call failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }
