package graph

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"relate/internal/util"
	"relate/pkg/common"
	"relate/pkg/logger"
	"relate/pkg/wikidata"

	"golang.org/x/sync/singleflight"
)

var honorifics = []string{
	"mr", "mrs", "ms", "dr", "prof", "professor", "sir", "dame",
	"lord", "lady", "president", "king", "queen", "saint", "st",
}

var quotedNicknameRe = regexp.MustCompile(`["\x60]([^"\x60]*)["\x60]|'([^']*)'`)

// resolutionCache memoizes mention resolutions within a single run.
// Concurrent resolutions of the same mention share one network call.
type resolutionCache struct {
	mu      sync.Mutex
	entries map[string]common.ResolvedEntity
	sf      singleflight.Group
}

func newResolutionCache() *resolutionCache {
	return &resolutionCache{
		entries: make(map[string]common.ResolvedEntity),
	}
}

// resolveMention resolves a single mention against the knowledge graph.
// The second return value reports whether at least one outbound call
// succeeded, which the assembler uses to detect total service failure.
func (c *GraphClient) resolveMention(
	ctx context.Context,
	cache *resolutionCache,
	mention common.EntityMention,
) (common.ResolvedEntity, bool) {
	key := mention.Text + "|" + mention.Type

	cache.mu.Lock()
	if cached, ok := cache.entries[key]; ok {
		cache.mu.Unlock()
		return cached, true
	}
	cache.mu.Unlock()

	type resolveResult struct {
		entity  common.ResolvedEntity
		reached bool
	}

	v, _, _ := cache.sf.Do(key, func() (any, error) {
		entity, reached := c.resolveUncached(ctx, mention)
		if reached {
			cache.mu.Lock()
			cache.entries[key] = entity
			cache.mu.Unlock()
		}
		return resolveResult{entity: entity, reached: reached}, nil
	})

	res := v.(resolveResult)
	return res.entity, res.reached
}

func (c *GraphClient) resolveUncached(
	ctx context.Context,
	mention common.EntityMention,
) (common.ResolvedEntity, bool) {
	unresolved := common.ResolvedEntity{
		Mention:    mention,
		Confidence: common.ConfidenceUnresolved,
	}

	reached := false
	for i, query := range candidateQueries(mention.Text) {
		results, err := util.RetryWithContext(ctx, c.maxRetries, func(ctx context.Context) ([]wikidata.SearchResult, error) {
			return c.kg.SearchEntities(ctx, query)
		})
		if err != nil {
			logger.Warn("Entity search failed", "query", query, "err", err)
			continue
		}
		reached = true
		if len(results) == 0 {
			continue
		}

		// Exact label or alias match. A match found through a corrected
		// query form is only a fuzzy resolution.
		for _, r := range results {
			if !matchesExactly(r, query) {
				continue
			}
			confidence := common.ConfidenceExact
			if i > 0 {
				confidence = common.ConfidenceFuzzy
			}
			return common.ResolvedEntity{
				Mention:    mention,
				QID:        r.ID,
				Label:      labelOrFallback(r, query),
				Confidence: confidence,
			}, reached
		}

		top := results[0]
		if util.StringSimilarity(top.Label, mention.Text) >= c.similarityThreshold ||
			util.StringSimilarity(top.Label, query) >= c.similarityThreshold {
			return common.ResolvedEntity{
				Mention:    mention,
				QID:        top.ID,
				Label:      labelOrFallback(top, query),
				Confidence: common.ConfidenceFuzzy,
			}, reached
		}
	}

	return unresolved, reached
}

func matchesExactly(r wikidata.SearchResult, query string) bool {
	if strings.EqualFold(r.Label, query) {
		return true
	}
	for _, alias := range r.Aliases {
		if strings.EqualFold(alias, query) {
			return true
		}
	}
	return r.Match.Type == "alias" && strings.EqualFold(r.Match.Text, query)
}

func labelOrFallback(r wikidata.SearchResult, query string) string {
	if r.Label != "" {
		return r.Label
	}
	return query
}

// candidateQueries returns the search queries tried for a mention, in
// order: the raw text, then progressively corrected forms.
func candidateQueries(text string) []string {
	text = util.CollapseWhitespace(text)

	var queries []string
	seen := make(map[string]bool)
	add := func(q string) {
		q = util.CollapseWhitespace(q)
		if q == "" {
			return
		}
		key := strings.ToLower(q)
		if seen[key] {
			return
		}
		seen[key] = true
		queries = append(queries, q)
	}

	add(text)
	add(stripHonorifics(text))
	add(stripQuotedNicknames(text))
	add(stripHonorifics(stripQuotedNicknames(text)))

	// Shortened multi-word form: drop middle tokens, keep first + last.
	tokens := strings.Fields(stripHonorifics(stripQuotedNicknames(text)))
	if len(tokens) >= 3 {
		add(tokens[0] + " " + tokens[len(tokens)-1])
	}

	return queries
}

func stripHonorifics(text string) string {
	tokens := strings.Fields(text)
	for len(tokens) > 1 {
		head := strings.ToLower(strings.TrimSuffix(tokens[0], "."))
		found := false
		for _, h := range honorifics {
			if head == h {
				found = true
				break
			}
		}
		if !found {
			break
		}
		tokens = tokens[1:]
	}
	return strings.Join(tokens, " ")
}

func stripQuotedNicknames(text string) string {
	return util.CollapseWhitespace(quotedNicknameRe.ReplaceAllString(text, " "))
}
