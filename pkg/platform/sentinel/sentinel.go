package sentinel

import "errors"

// Sentinel errors for store-level facts. Stores return these (optionally
// wrapped) and services translate them into domain errors with user-facing
// messages.
//
// These represent factual states about persisted records, not validation
// failures:
// - ErrNotFound: record does not exist
// - ErrConflict: a unique constraint would be violated (duplicate cedula,
//   duplicate enrollment)
// - ErrInvalidState: record in the wrong state for the requested operation
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
