package ingest

import "errors"

// Sentinel kinds for ingestion errors.
var (
	// ErrDiscovery marks a failed generation-list fetch. There is no partial
	// dataset to serve in that case, so it is fatal to the whole run.
	ErrDiscovery = errors.New("generation discovery failed")
)
