package graph

import (
	"context"
	"strings"
	"sync"

	"relate/internal/util"
	"relate/pkg/common"
	"relate/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// AssembleRelationships runs the full pipeline over the given mentions:
// resolve each mention, fetch the statement set of every distinct entity
// once, derive both directions of every entity pair from the in-memory
// statement index, and score the accepted triplets by in-degree.
//
// Unresolved mentions and pairs whose lookups failed are excluded without
// aborting the run. The returned entities are the distinct resolved
// entities in first-seen order; the triplets are in deterministic pair
// enumeration order.
func (c *GraphClient) AssembleRelationships(
	ctx context.Context,
	mentions []common.EntityMention,
) ([]common.Triplet, []common.ResolvedEntity, error) {
	if len(mentions) == 0 {
		return nil, nil, nil
	}

	entities, err := c.resolveAll(ctx, mentions)
	if err != nil {
		return nil, nil, err
	}
	if len(entities) < 2 {
		return nil, entities, nil
	}

	index, err := c.fetchStatements(ctx, entities)
	if err != nil {
		return nil, nil, err
	}

	// Enumerate both directions of every unordered pair in first-seen
	// resolution order. The statement index is the only data consulted,
	// so each entity costs exactly one fetch regardless of pair count.
	type direction struct {
		subject common.ResolvedEntity
		object  common.ResolvedEntity
		pids    []string
	}
	var directions []direction
	pidSet := make(map[string]bool)

	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			forward := matchingProperties(index[entities[i].QID], entities[j].QID)
			backward := matchingProperties(index[entities[j].QID], entities[i].QID)

			if len(forward) > 0 {
				directions = append(directions, direction{entities[i], entities[j], forward})
			}
			if len(backward) > 0 {
				directions = append(directions, direction{entities[j], entities[i], backward})
			}
			for _, pid := range forward {
				pidSet[pid] = true
			}
			for _, pid := range backward {
				pidSet[pid] = true
			}
		}
	}

	labels := c.fetchPredicateLabels(ctx, pidSet)

	seen := make(map[string]bool)
	var triplets []common.Triplet
	for _, d := range directions {
		winner, ok := selectPredicate(d.subject.QID, d.object.QID, d.pids, labels)
		if !ok {
			continue
		}
		t := common.Triplet{
			Subject:      d.subject.Label,
			SubjectQID:   winner.SubjectQID,
			Predicate:    winner.Predicate,
			PredicatePID: winner.PredicatePID,
			Object:       d.object.Label,
			ObjectQID:    winner.ObjectQID,
		}
		if seen[t.Key()] {
			continue
		}
		seen[t.Key()] = true
		triplets = append(triplets, t)
	}

	scoreTriplets(triplets)

	return triplets, entities, nil
}

// resolveAll resolves every mention concurrently and returns the distinct
// resolved entities in first-seen order, deduplicated by QID.
func (c *GraphClient) resolveAll(
	ctx context.Context,
	mentions []common.EntityMention,
) ([]common.ResolvedEntity, error) {
	cache := newResolutionCache()
	resolved := make([]common.ResolvedEntity, len(mentions))

	var mu sync.Mutex
	anyReached := false

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelLookups)
	for i, mention := range mentions {
		g.Go(func() error {
			entity, reached := c.resolveMention(gctx, cache, mention)
			resolved[i] = entity
			if reached {
				mu.Lock()
				anyReached = true
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !anyReached {
		return nil, ErrServiceUnavailable
	}

	var entities []common.ResolvedEntity
	seen := make(map[string]bool)
	for _, entity := range resolved {
		if !entity.Resolved() {
			if entity.Mention.Text != "" {
				logger.Debug("Mention unresolved", "text", entity.Mention.Text, "type", entity.Mention.Type)
			}
			continue
		}
		if seen[entity.QID] {
			continue
		}
		seen[entity.QID] = true
		entities = append(entities, entity)
	}

	return entities, nil
}

// fetchStatements fetches the outgoing statement set of each entity once,
// with bounded concurrency and a join barrier. A failed fetch excludes
// that entity's pairs but never aborts the run; only total failure does.
func (c *GraphClient) fetchStatements(
	ctx context.Context,
	entities []common.ResolvedEntity,
) (map[string]map[string][]string, error) {
	statements := make([]map[string][]string, len(entities))

	var mu sync.Mutex
	succeeded := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelLookups)
	for i, entity := range entities {
		g.Go(func() error {
			set, err := util.RetryWithContext(gctx, c.maxRetries, func(ctx context.Context) (map[string][]string, error) {
				return c.kg.GetStatements(ctx, entity.QID)
			})
			if err != nil {
				logger.Warn("Statement fetch failed", "qid", entity.QID, "label", entity.Label, "err", err)
				return nil
			}
			statements[i] = set
			mu.Lock()
			succeeded++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if succeeded == 0 {
		return nil, ErrServiceUnavailable
	}

	index := make(map[string]map[string][]string, len(entities))
	for i, entity := range entities {
		if statements[i] != nil {
			index[entity.QID] = statements[i]
		}
	}

	return index, nil
}

// fetchPredicateLabels resolves property IDs to labels. On failure the
// labels are simply absent and the property IDs stand in for them.
func (c *GraphClient) fetchPredicateLabels(
	ctx context.Context,
	pidSet map[string]bool,
) map[string]string {
	if len(pidSet) == 0 {
		return nil
	}

	pids := make([]string, 0, len(pidSet))
	for pid := range pidSet {
		pids = append(pids, pid)
	}

	labels, err := util.RetryWithContext(ctx, c.maxRetries, func(ctx context.Context) (map[string]string, error) {
		return c.kg.GetLabels(ctx, pids)
	})
	if err != nil {
		logger.Warn("Predicate label fetch failed, falling back to property IDs",
			"pids", strings.Join(pids, ","), "err", err)
		return nil
	}

	return labels
}
