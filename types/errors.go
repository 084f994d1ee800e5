package types

import "errors"

// Error taxonomy for the ingestion and query pipelines. Callers classify
// failures with errors.Is against these sentinels; pipeline code wraps them
// with fmt.Errorf("...: %w", ...) to add detail.
var (
	// ErrValidation marks bad or missing caller input, e.g. an empty question.
	ErrValidation = errors.New("invalid request")

	// ErrExtraction marks a failed text extraction, fatal for that document.
	ErrExtraction = errors.New("text extraction failed")

	// ErrProvider marks a failed or timed-out embedding or generation call.
	ErrProvider = errors.New("provider call failed")

	// ErrMalformedResponse marks a provider payload without a usable vector
	// or output text.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrDocumentNotFoundOrEmpty marks a query against a document with zero
	// stored fragments.
	ErrDocumentNotFoundOrEmpty = errors.New("document not found or has no fragments")
)
