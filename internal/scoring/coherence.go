package scoring

// dependencyEdge expresses that the source category should causally
// precede and support the target category. The edge set is fixed by the
// framework and is only used for coherence measurement, never for
// scheduling.
type dependencyEdge struct {
	source int
	target int
}

var integrationEdges = []dependencyEdge{
	{CategoryLeadership, CategoryStrategy},
	{CategoryStrategy, CategoryWorkforce},
	{CategoryStrategy, CategoryOperations},
	{CategoryWorkforce, CategoryMeasurement},
	{CategoryOperations, CategoryMeasurement},
	{CategoryMeasurement, CategoryResults},
}

// CoherenceIndex measures cross-category alignment over the fixed
// dependency edges. Each edge with both endpoints present contributes
// 1 - |scoreDiff|/100; the index is the mean over evaluable edges, 1.0
// meaning perfect alignment. It returns 0.0 when no edge is evaluable.
func (s *OrganizationalScorer) CoherenceIndex(categoryScores map[int]float64) float64 {
	sum := 0.0
	evaluated := 0
	for _, edge := range integrationEdges {
		source, okSource := categoryScores[edge.source]
		target, okTarget := categoryScores[edge.target]
		if !okSource || !okTarget {
			continue
		}
		diff := source - target
		if diff < 0 {
			diff = -diff
		}
		sum += 1.0 - diff/100.0
		evaluated++
	}
	if evaluated == 0 {
		return 0.0
	}
	return sum / float64(evaluated)
}
