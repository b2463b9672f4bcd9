// Package ner extracts named-entity mentions from free text using an AI
// model with structured output.
package ner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"relate/internal/util"
	"relate/pkg/ai"
	"relate/pkg/common"
	"relate/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Extractor produces entity mentions from a passage of text.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]common.EntityMention, error)
}

type extractMention struct {
	Text string `json:"text" jsonschema_description:"The entity exactly as written in the text, character for character"`
	Type string `json:"type" jsonschema_description:"One of PERSON, ORG, GPE, LOC, FAC, EVENT, PRODUCT, WORK_OF_ART, NORP, DATE"`
}

type extractResponse struct {
	Entities []extractMention `json:"entities" jsonschema_description:"Named entities identified in the text"`
}

// AIExtractor implements Extractor on top of an ai.ExtractAIClient.
// Long inputs are chunked into token-bounded units and processed with
// bounded concurrency; mention offsets are recovered against the
// original text.
type AIExtractor struct {
	client ai.ExtractAIClient

	encoder    string
	maxTokens  int
	maxRetries int
	parallel   int
}

// NewAIExtractorParams contains configuration for creating an AIExtractor.
type NewAIExtractorParams struct {
	Client ai.ExtractAIClient

	Encoder    string // tiktoken encoding name, e.g. "o200k_base"
	MaxTokens  int    // max tokens per extraction unit
	MaxRetries int    // attempts per unit before giving up
	Parallel   int    // concurrent extraction requests
}

// NewAIExtractor creates an AIExtractor with the given configuration.
// Zero values fall back to defaults.
func NewAIExtractor(params NewAIExtractorParams) *AIExtractor {
	encoder := params.Encoder
	if encoder == "" {
		encoder = "o200k_base"
	}
	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	parallel := params.Parallel
	if parallel <= 0 {
		parallel = 4
	}
	return &AIExtractor{
		client:     params.Client,
		encoder:    encoder,
		maxTokens:  maxTokens,
		maxRetries: maxRetries,
		parallel:   parallel,
	}
}

// Extract returns the entity mentions found in text, sorted by start
// offset and deduplicated case-insensitively on the mention text.
func (e *AIExtractor) Extract(ctx context.Context, text string) ([]common.EntityMention, error) {
	units, err := transformIntoUnits(text, e.encoder, e.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk text: %w", err)
	}
	if len(units) == 0 {
		return nil, nil
	}

	unitMentions := make([][]common.EntityMention, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallel)
	for i, unit := range units {
		g.Go(func() error {
			mentions, err := util.RetryWithContext(gctx, e.maxRetries, func(ctx context.Context) ([]common.EntityMention, error) {
				return e.extractFromUnit(ctx, unit)
			})
			if err != nil {
				return fmt.Errorf("extraction failed for unit %s: %w", unit.id, err)
			}
			unitMentions[i] = mentions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var all []common.EntityMention
	for _, mentions := range unitMentions {
		for _, m := range mentions {
			key := strings.ToLower(m.Text)
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, m)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Start < all[j].Start
	})

	return all, nil
}

func (e *AIExtractor) extractFromUnit(ctx context.Context, unit extractUnit) ([]common.EntityMention, error) {
	var res extractResponse
	err := e.client.GenerateCompletionWithFormat(
		ctx,
		"extract_entities",
		"Extract named entities from a provided passage of text.",
		unit.text,
		&res,
		ai.WithSystemPrompts(ai.ExtractEntitiesPrompt),
	)
	if err != nil {
		return nil, err
	}

	mentions := make([]common.EntityMention, 0, len(res.Entities))
	for _, entity := range res.Entities {
		mentionText := strings.TrimSpace(entity.Text)
		if mentionText == "" {
			continue
		}

		start := strings.Index(unit.text, mentionText)
		end := start + len(mentionText)
		if start < 0 {
			// model may have normalized casing
			start, end = indexFold(unit.text, mentionText)
		}
		if start < 0 {
			logger.Debug("Dropping hallucinated mention", "text", mentionText, "unit", unit.id)
			continue
		}

		mentions = append(mentions, common.EntityMention{
			Text:  unit.text[start:end],
			Start: unit.start + start,
			End:   unit.start + end,
			Type:  strings.ToUpper(strings.TrimSpace(entity.Type)),
		})
	}

	return mentions, nil
}

// indexFold locates substr within s rune-wise and case-insensitively and
// returns the byte offsets of the first matched window in s, or (-1, -1).
// The window's byte length may differ from len(substr) when folding changes
// a rune's encoded size.
func indexFold(s, substr string) (int, int) {
	if substr == "" {
		return -1, -1
	}
	target := []rune(substr)
	for i := range s {
		j := i
		matched := true
		for _, want := range target {
			r, size := utf8.DecodeRuneInString(s[j:])
			if size == 0 || unicode.ToLower(r) != unicode.ToLower(want) {
				matched = false
				break
			}
			j += size
		}
		if matched {
			return i, j
		}
	}
	return -1, -1
}
