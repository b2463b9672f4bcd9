package graph

import (
	"sort"

	"relate/pkg/common"
)

// matchingProperties returns the property IDs of statements whose value is
// the partner identifier, sorted for determinism.
func matchingProperties(statements map[string][]string, partnerQID string) []string {
	var pids []string
	for pid, targets := range statements {
		for _, target := range targets {
			if target == partnerQID {
				pids = append(pids, pid)
				break
			}
		}
	}
	sort.Strings(pids)
	return pids
}

// selectPredicate picks the winning relation for one direction of a pair:
// the property with the fewest characters in its label, ties broken
// lexicographically by label, then by property ID. A property without a
// label competes with its ID as the label.
func selectPredicate(
	subjectQID string,
	objectQID string,
	pids []string,
	labels map[string]string,
) (common.RelationCandidate, bool) {
	if len(pids) == 0 {
		return common.RelationCandidate{}, false
	}

	bestPID := pids[0]
	bestLabel := predicateLabel(pids[0], labels)
	for _, pid := range pids[1:] {
		label := predicateLabel(pid, labels)
		if len(label) < len(bestLabel) ||
			(len(label) == len(bestLabel) && label < bestLabel) ||
			(label == bestLabel && pid < bestPID) {
			bestPID = pid
			bestLabel = label
		}
	}

	return common.RelationCandidate{
		Predicate:    bestLabel,
		PredicatePID: bestPID,
		SubjectQID:   subjectQID,
		ObjectQID:    objectQID,
	}, true
}

func predicateLabel(pid string, labels map[string]string) string {
	if label, ok := labels[pid]; ok && label != "" {
		return label
	}
	return pid
}
