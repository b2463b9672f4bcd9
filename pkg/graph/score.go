package graph

import "relate/pkg/common"

// scoreTriplets populates the in-degree fields on every triplet.
// in-degree(QID) is the number of final triplets with that QID as
// object; identifiers never appearing as object score 0.
func scoreTriplets(triplets []common.Triplet) {
	inDegree := make(map[string]int)
	for _, t := range triplets {
		inDegree[t.ObjectQID]++
	}

	for i := range triplets {
		triplets[i].SubjectInDegree = inDegree[triplets[i].SubjectQID]
		triplets[i].ObjectInDegree = inDegree[triplets[i].ObjectQID]
	}
}
