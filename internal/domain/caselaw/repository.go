package caselaw

import "context"

// Repository is the persistence contract for the case corpus.  Implementations
// live in internal/infrastructure (postgres, in-memory); the retrieval core
// never writes through it.
type Repository interface {
	// Save upserts a record.  Used only by ingestion.
	Save(ctx context.Context, rec *CaseRecord) error

	// ByID returns the record with the given identifier or
	// errors.ErrCodeCaseNotFound.
	ByID(ctx context.Context, id string) (*CaseRecord, error)

	// List returns the full corpus in stable insertion order.  The order
	// defines the candidate ordinals used by the lexical and vector
	// indexes, so it must be identical across calls.
	List(ctx context.Context) ([]CaseRecord, error)

	// Count returns the corpus size.
	Count(ctx context.Context) (int, error)
}
