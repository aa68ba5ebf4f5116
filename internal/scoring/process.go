package scoring

// ProcessScorer scores process items (categories 1-6) from the four
// approach/deployment/learning/integration indicators.
type ProcessScorer struct {
	weights map[string]float64
}

// NewProcessScorer builds a process scorer with the supplied weights, or
// the documented defaults when weights is nil. Construction fails with a
// configuration error when the weight set is malformed.
func NewProcessScorer(weights map[string]float64) (*ProcessScorer, error) {
	if weights == nil {
		weights = DefaultProcessWeights()
	} else {
		weights = cloneWeights(weights)
	}
	if err := validateWeightSet(weights, processDimensions); err != nil {
		return nil, err
	}
	return &ProcessScorer{weights: weights}, nil
}

// Method identifies the scoring scheme for result metadata.
func (s *ProcessScorer) Method() string { return "ADLI" }

// Weights returns a copy of the scorer's weight set.
func (s *ProcessScorer) Weights() map[string]float64 {
	return cloneWeights(s.weights)
}

// ComputeScore returns the weighted process score in [0,100], rounded to
// two decimals.
func (s *ProcessScorer) ComputeScore(indicators map[string]float64) (float64, error) {
	return computeWeightedScore(s.weights, indicators, processDimensions)
}

// DiagnosticBreakdown returns each dimension's contribution to the score
// plus a Total entry.
func (s *ProcessScorer) DiagnosticBreakdown(indicators map[string]float64) (map[string]float64, error) {
	return diagnosticBreakdown(s.weights, indicators, processDimensions)
}

// ComputeCategoryScore aggregates item scores into one category score.
// Item weights default to equal 1/N when nil.
func (s *ProcessScorer) ComputeCategoryScore(itemScores map[int]float64, itemWeights map[int]float64) (float64, error) {
	return aggregateItemScores(itemScores, itemWeights)
}

func cloneWeights(weights map[string]float64) map[string]float64 {
	cp := make(map[string]float64, len(weights))
	for k, v := range weights {
		cp[k] = v
	}
	return cp
}
