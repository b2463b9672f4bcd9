// Package graph implements the relationship discovery pipeline: resolving
// entity mentions against a knowledge graph, exhaustive pairwise relation
// lookup, popularity scoring, and output formatting.
package graph

import (
	"context"

	"relate/pkg/wikidata"
)

// KGClient is the subset of the knowledge-graph API the pipeline depends on.
// *wikidata.Client satisfies it.
type KGClient interface {
	SearchEntities(ctx context.Context, query string) ([]wikidata.SearchResult, error)
	GetStatements(ctx context.Context, qid string) (map[string][]string, error)
	GetLabels(ctx context.Context, ids []string) (map[string]string, error)
}

// GraphClient runs the relationship discovery pipeline. It is stateless
// between runs; per-run caches are created inside AssembleRelationships.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	kg KGClient

	similarityThreshold float64
	parallelLookups     int
	maxRetries          int
}

// NewGraphClientParams defines the configuration parameters for creating
// a new GraphClient.
//
// SimilarityThreshold is the minimum normalized string similarity for a
// fuzzy resolution to be accepted.
// ParallelLookups controls how many knowledge-graph requests can be
// executed concurrently.
// MaxRetries controls attempts per outbound call before giving up.
type NewGraphClientParams struct {
	KG KGClient

	SimilarityThreshold float64
	ParallelLookups     int
	MaxRetries          int
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters.
//
// Example:
//
//	params := graph.NewGraphClientParams{
//		KG:                  wikidata.NewClient(wikidata.NewClientParams{}),
//		SimilarityThreshold: 0.72,
//		ParallelLookups:     8,
//		MaxRetries:          3,
//	}
//	client := graph.NewGraphClient(params)
func NewGraphClient(params NewGraphClientParams) *GraphClient {
	threshold := params.SimilarityThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = 0.72
	}
	parallel := params.ParallelLookups
	if parallel <= 0 {
		parallel = 8
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &GraphClient{
		kg:                  params.KG,
		similarityThreshold: threshold,
		parallelLookups:     parallel,
		maxRetries:          maxRetries,
	}
}
