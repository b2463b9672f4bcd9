package graph

import (
	"strings"
	"testing"

	"relate/pkg/common"
)

func turingTriplet() common.Triplet {
	return common.Triplet{
		Subject:         "Alan Turing",
		SubjectQID:      "Q7251",
		Predicate:       "country of citizenship",
		PredicatePID:    "P27",
		Object:          "United Kingdom",
		ObjectQID:       "Q145",
		SubjectInDegree: 0,
		ObjectInDegree:  1,
	}
}

func TestFormatTriplet(t *testing.T) {
	got := FormatTriplet(turingTriplet())
	want := "{'subject': 'Alan Turing', 'subject_qid': 'Q7251', 'predicate': 'country of citizenship', 'predicate_pid': 'P27', 'object': 'United Kingdom', 'object_qid': 'Q145', 'subject_in_degree': 0, 'object_in_degree': 1}"
	if got != want {
		t.Fatalf("unexpected record:\n got %s\nwant %s", got, want)
	}
}

func TestFormatTriplet_EscapesQuotes(t *testing.T) {
	triplet := turingTriplet()
	triplet.Object = "People's Republic"

	got := FormatTriplet(triplet)
	if !strings.Contains(got, `'object': 'People\'s Republic'`) {
		t.Fatalf("expected escaped quote, got %s", got)
	}
}

func TestFormatTriplets_LineDelimited(t *testing.T) {
	first := turingTriplet()
	second := turingTriplet()
	second.SubjectQID = "Q42"

	got := FormatTriplets([]common.Triplet{first, second})
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if strings.TrimSpace(got) != got {
		t.Fatal("expected no leading or trailing whitespace")
	}
}

func TestFormatTriplets_Empty(t *testing.T) {
	if got := FormatTriplets(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestScoreTriplets(t *testing.T) {
	triplets := []common.Triplet{
		{SubjectQID: "Q1", ObjectQID: "Q2"},
		{SubjectQID: "Q3", ObjectQID: "Q2"},
		{SubjectQID: "Q2", ObjectQID: "Q1"},
	}

	scoreTriplets(triplets)

	if triplets[0].ObjectInDegree != 2 {
		t.Fatalf("Q2 should have in-degree 2, got %d", triplets[0].ObjectInDegree)
	}
	if triplets[2].SubjectInDegree != 2 {
		t.Fatalf("Q2 as subject should carry in-degree 2, got %d", triplets[2].SubjectInDegree)
	}
	if triplets[0].SubjectInDegree != 1 {
		t.Fatalf("Q1 should have in-degree 1, got %d", triplets[0].SubjectInDegree)
	}
	if triplets[1].SubjectInDegree != 0 {
		t.Fatalf("Q3 never appears as object, expected 0, got %d", triplets[1].SubjectInDegree)
	}
}

func TestSelectPredicate(t *testing.T) {
	labels := map[string]string{
		"P27":  "country of citizenship",
		"P17":  "country",
		"P463": "member of",
	}

	tests := []struct {
		name      string
		pids      []string
		wantPID   string
		wantLabel string
	}{
		{"shortest label wins", []string{"P27", "P17"}, "P17", "country"},
		{"single candidate", []string{"P27"}, "P27", "country of citizenship"},
		{"missing label falls back to pid", []string{"P9999999"}, "P9999999", "P9999999"},
		{"fallback pid competes by length", []string{"P27", "P99"}, "P99", "P99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := selectPredicate("Q1", "Q2", tt.pids, labels)
			if !ok {
				t.Fatal("expected a winner")
			}
			if got.PredicatePID != tt.wantPID || got.Predicate != tt.wantLabel {
				t.Fatalf("got (%s, %s), want (%s, %s)", got.PredicatePID, got.Predicate, tt.wantPID, tt.wantLabel)
			}
			if got.SubjectQID != "Q1" || got.ObjectQID != "Q2" {
				t.Fatalf("candidate must carry the pair: %+v", got)
			}
		})
	}

	if _, ok := selectPredicate("Q1", "Q2", nil, labels); ok {
		t.Fatal("expected no winner for empty candidate list")
	}
}

func TestBuildGraphPayload(t *testing.T) {
	payload := BuildGraphPayload([]common.Triplet{turingTriplet()})

	if len(payload.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(payload.Nodes))
	}
	if len(payload.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(payload.Edges))
	}
	if payload.Nodes[1].QID != "Q145" || payload.Nodes[1].InDegree != 1 {
		t.Fatalf("unexpected object node: %+v", payload.Nodes[1])
	}
	edge := payload.Edges[0]
	if edge.SourceQID != "Q7251" || edge.TargetQID != "Q145" || edge.Predicate != "country of citizenship" {
		t.Fatalf("unexpected edge: %+v", edge)
	}
}

func TestBuildGraphPayload_Empty(t *testing.T) {
	payload := BuildGraphPayload(nil)
	if payload.Nodes == nil || payload.Edges == nil {
		t.Fatal("payload slices must be non-nil for JSON rendering")
	}
}
