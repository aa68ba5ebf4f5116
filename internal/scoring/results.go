package scoring

import (
	"fmt"
	"math"

	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/errors"
)

// defaultTrendPeriods is the number of trailing periods considered when
// normalizing a performance trend.
const defaultTrendPeriods = 3

// ResultsScorer scores results items (category 7) from the four
// level/trend/comparison/integration indicators. It also provides the
// normalization helpers that map raw measurements into the [0,1]
// indicator domain.
type ResultsScorer struct {
	weights map[string]float64
}

// NewResultsScorer builds a results scorer with the supplied weights, or
// the documented defaults when weights is nil. Construction fails with a
// configuration error when the weight set is malformed.
func NewResultsScorer(weights map[string]float64) (*ResultsScorer, error) {
	if weights == nil {
		weights = DefaultResultsWeights()
	} else {
		weights = cloneWeights(weights)
	}
	if err := validateWeightSet(weights, resultsDimensions); err != nil {
		return nil, err
	}
	return &ResultsScorer{weights: weights}, nil
}

// Method identifies the scoring scheme for result metadata.
func (s *ResultsScorer) Method() string { return "LeTCI" }

// Weights returns a copy of the scorer's weight set.
func (s *ResultsScorer) Weights() map[string]float64 {
	return cloneWeights(s.weights)
}

// ComputeScore returns the weighted results score in [0,100], rounded to
// two decimals.
func (s *ResultsScorer) ComputeScore(indicators map[string]float64) (float64, error) {
	return computeWeightedScore(s.weights, indicators, resultsDimensions)
}

// DiagnosticBreakdown returns each dimension's contribution to the score
// plus a Total entry.
func (s *ResultsScorer) DiagnosticBreakdown(indicators map[string]float64) (map[string]float64, error) {
	return diagnosticBreakdown(s.weights, indicators, resultsDimensions)
}

// ComputeCategoryScore aggregates item scores into one category score.
// Item weights default to equal 1/N when nil.
func (s *ResultsScorer) ComputeCategoryScore(itemScores map[int]float64, itemWeights map[int]float64) (float64, error) {
	return aggregateItemScores(itemScores, itemWeights)
}

// NormalizeLevel maps an outcome level onto [0,1] as actual/maxValue,
// capped at 1.0. The target argument is accepted for interface symmetry
// with the other normalizers but does not enter the computation.
func (s *ResultsScorer) NormalizeLevel(actual, target, maxValue float64) (float64, error) {
	_ = target
	if maxValue <= 0 {
		return 0, errors.NewValidationError(
			fmt.Sprintf("max value must be positive, got %v", maxValue))
	}
	return math.Min(actual/maxValue, 1.0), nil
}

// NormalizeTrend maps the slope of the recent history onto [0,1]:
// 0.5 is flat, a slope of +10% of the mean per period saturates at 1.0
// and -10% per period saturates at 0.0. Fewer than two data points yield
// the neutral 0.5. A periods value below one falls back to the default
// window of three.
func (s *ResultsScorer) NormalizeTrend(values []float64, periods int) float64 {
	if len(values) < 2 {
		return 0.5
	}
	if periods < 1 {
		periods = defaultTrendPeriods
	}

	recent := values
	if len(values) > periods {
		recent = values[len(values)-periods:]
	}
	if len(recent) < 2 {
		return 0.5
	}

	slope := olsSlope(recent)
	maxExpectedSlope := mean(recent) * 0.1
	normalized := 0.0
	if maxExpectedSlope > 0 {
		normalized = slope / maxExpectedSlope
	}
	return clip(0.5+normalized/2, 0.0, 1.0)
}

// NormalizeComparison maps performance relative to a benchmark onto
// [0,1]: at the benchmark scores 0.5, ratios in [1,3] map linearly to
// [0.5,1.0], ratios below one map to 0.5*ratio. A non-positive benchmark
// yields the neutral 0.5 (no valid reference).
func (s *ResultsScorer) NormalizeComparison(actual, benchmark float64) float64 {
	if benchmark <= 0 {
		return 0.5
	}
	ratio := actual / benchmark
	var score float64
	if ratio >= 1.0 {
		score = 0.5 + math.Min((ratio-1.0)/2.0, 0.5)
	} else {
		score = 0.5 * ratio
	}
	return clip(score, 0.0, 1.0)
}
