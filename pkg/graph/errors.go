package graph

import "errors"

var (
	// ErrMalformedInput is returned when the input text is empty or blank.
	// It is detected before any network call is made.
	ErrMalformedInput = errors.New("input text is empty or blank")

	// ErrServiceUnavailable is returned when every outbound knowledge-graph
	// call failed across retries during a run.
	ErrServiceUnavailable = errors.New("knowledge graph service unavailable")
)
