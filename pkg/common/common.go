package common

// Confidence classifies how certain a mention-to-identifier mapping is.
type Confidence string

const (
	// ConfidenceExact marks a case-insensitive exact label match.
	ConfidenceExact Confidence = "EXACT"
	// ConfidenceFuzzy marks a match accepted through the correction
	// strategy (honorific stripping, name shortening, edit distance).
	ConfidenceFuzzy Confidence = "FUZZY"
	// ConfidenceUnresolved marks a mention with no acceptable candidate.
	// Unresolved mentions are excluded from all relation lookups.
	ConfidenceUnresolved Confidence = "UNRESOLVED"
)

// EntityMention is a single named-entity span produced by extraction.
// Mentions are immutable; the resolver is their only consumer.
//
// Type carries a coarse entity tag (PERSON, ORG, GPE, LOC, FAC, EVENT,
// PRODUCT, WORK_OF_ART, NORP, DATE).
type EntityMention struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Type  string `json:"type"`
}

// ResolvedEntity binds a mention to a knowledge-graph identifier.
//
// Within one analysis run the QID uniquely identifies a resolved entity:
// two mentions resolving to the same QID collapse into one graph node.
type ResolvedEntity struct {
	Mention    EntityMention `json:"mention"`
	QID        string        `json:"qid"`
	Label      string        `json:"label"`
	Confidence Confidence    `json:"confidence"`
}

// Resolved reports whether the entity carries a usable identifier.
func (r ResolvedEntity) Resolved() bool {
	return r.Confidence != ConfidenceUnresolved && r.QID != ""
}

// RelationCandidate is one predicate connecting an ordered entity pair.
// Candidates are transient; they exist only until winner selection.
type RelationCandidate struct {
	Predicate    string `json:"predicate"`
	PredicatePID string `json:"predicate_pid"`
	SubjectQID   string `json:"subject_qid"`
	ObjectQID    string `json:"object_qid"`
}

// Triplet is one accepted directed relationship. Triplets are immutable
// once emitted; the in-degree fields are populated by the scorer over
// the final accepted set, never over raw candidates.
type Triplet struct {
	Subject         string `json:"subject"`
	SubjectQID      string `json:"subject_qid"`
	Predicate       string `json:"predicate"`
	PredicatePID    string `json:"predicate_pid"`
	Object          string `json:"object"`
	ObjectQID       string `json:"object_qid"`
	SubjectInDegree int    `json:"subject_in_degree"`
	ObjectInDegree  int    `json:"object_in_degree"`
}

// Key returns the identity of a triplet for deduplication. Two triplets
// with the same subject, predicate and object are the same relationship
// regardless of which surface mention produced them.
func (t Triplet) Key() string {
	return t.SubjectQID + "|" + t.PredicatePID + "|" + t.ObjectQID
}

// GraphNode is one node of the rendering payload handed to the
// visualization layer.
type GraphNode struct {
	QID      string `json:"qid"`
	Label    string `json:"label"`
	InDegree int    `json:"in_degree"`
}

// GraphEdge is one labeled directed edge of the rendering payload.
type GraphEdge struct {
	SourceQID string `json:"source_qid"`
	TargetQID string `json:"target_qid"`
	Predicate string `json:"predicate"`
}

// GraphPayload is the node/edge structure the web layer serializes for
// the browser-side force-directed renderer.
type GraphPayload struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
