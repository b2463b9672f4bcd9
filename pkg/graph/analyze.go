package graph

import (
	"context"
	"fmt"
	"strings"

	"relate/pkg/common"
	"relate/pkg/logger"
	"relate/pkg/ner"
)

// AnalyzeResult is the outcome of one full analysis run.
type AnalyzeResult struct {
	Mentions []common.EntityMention
	Entities []common.ResolvedEntity
	Triplets []common.Triplet
}

// Analyze runs extraction and relationship discovery over text.
// Blank input is rejected with ErrMalformedInput before any network call.
func (c *GraphClient) Analyze(
	ctx context.Context,
	extractor ner.Extractor,
	text string,
) (*AnalyzeResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrMalformedInput
	}

	mentions, err := extractor.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("entity extraction failed: %w", err)
	}
	logger.Debug("Extraction finished", "mentions", len(mentions))

	triplets, entities, err := c.AssembleRelationships(ctx, mentions)
	if err != nil {
		return nil, err
	}
	logger.Debug("Assembly finished", "entities", len(entities), "triplets", len(triplets))

	return &AnalyzeResult{
		Mentions: mentions,
		Entities: entities,
		Triplets: triplets,
	}, nil
}
