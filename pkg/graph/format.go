package graph

import (
	"fmt"
	"strings"

	"relate/pkg/common"
)

// FormatTriplet renders one triplet as a single-line record in the
// historical single-quoted dict syntax with a fixed key order.
func FormatTriplet(t common.Triplet) string {
	return fmt.Sprintf(
		"{'subject': '%s', 'subject_qid': '%s', 'predicate': '%s', 'predicate_pid': '%s', 'object': '%s', 'object_qid': '%s', 'subject_in_degree': %d, 'object_in_degree': %d}",
		quoteValue(t.Subject),
		quoteValue(t.SubjectQID),
		quoteValue(t.Predicate),
		quoteValue(t.PredicatePID),
		quoteValue(t.Object),
		quoteValue(t.ObjectQID),
		t.SubjectInDegree,
		t.ObjectInDegree,
	)
}

// FormatTriplets renders the triplets as line-delimited records, one per
// line, with no trailing newline after the last record.
func FormatTriplets(triplets []common.Triplet) string {
	lines := make([]string, 0, len(triplets))
	for _, t := range triplets {
		lines = append(lines, FormatTriplet(t))
	}
	return strings.Join(lines, "\n")
}

func quoteValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}

// BuildGraphPayload converts the triplet set into the node/edge structure
// consumed by the browser-side renderer. Nodes are the distinct
// identifiers appearing in at least one triplet, carrying their label and
// in-degree; edges carry the predicate label.
func BuildGraphPayload(triplets []common.Triplet) common.GraphPayload {
	payload := common.GraphPayload{
		Nodes: []common.GraphNode{},
		Edges: []common.GraphEdge{},
	}

	seen := make(map[string]bool)
	addNode := func(qid, label string, inDegree int) {
		if seen[qid] {
			return
		}
		seen[qid] = true
		payload.Nodes = append(payload.Nodes, common.GraphNode{
			QID:      qid,
			Label:    label,
			InDegree: inDegree,
		})
	}

	for _, t := range triplets {
		addNode(t.SubjectQID, t.Subject, t.SubjectInDegree)
		addNode(t.ObjectQID, t.Object, t.ObjectInDegree)
		payload.Edges = append(payload.Edges, common.GraphEdge{
			SourceQID: t.SubjectQID,
			TargetQID: t.ObjectQID,
			Predicate: t.Predicate,
		})
	}

	return payload
}
