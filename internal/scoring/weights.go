package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/errors"
)

// weightTolerance bounds the acceptable deviation of a weight sum from 1.0.
const weightTolerance = 1e-6

// dimension pairs an indicator key with its display label used in
// diagnostic breakdowns.
type dimension struct {
	key   string
	label string
}

var processDimensions = []dimension{
	{IndicatorApproach, "Approach"},
	{IndicatorDeployment, "Deployment"},
	{IndicatorLearning, "Learning"},
	{IndicatorIntegration, "Integration"},
}

var resultsDimensions = []dimension{
	{IndicatorLevel, "Level"},
	{IndicatorTrend, "Trend"},
	{IndicatorComparison, "Comparison"},
	{IndicatorIntegration, "Integration"},
}

// DefaultProcessWeights returns the documented default weights for the
// process scorer: approach 0.30, deployment 0.30, learning 0.20,
// integration 0.20.
func DefaultProcessWeights() map[string]float64 {
	return map[string]float64{
		IndicatorApproach:    0.30,
		IndicatorDeployment:  0.30,
		IndicatorLearning:    0.20,
		IndicatorIntegration: 0.20,
	}
}

// DefaultResultsWeights returns the documented default weights for the
// results scorer: level 0.35, trend 0.25, comparison 0.25,
// integration 0.15.
func DefaultResultsWeights() map[string]float64 {
	return map[string]float64{
		IndicatorLevel:       0.35,
		IndicatorTrend:       0.25,
		IndicatorComparison:  0.25,
		IndicatorIntegration: 0.15,
	}
}

// DefaultCategoryWeights returns equal weights of 1/7 for the seven
// categories.
func DefaultCategoryWeights() map[int]float64 {
	weights := make(map[int]float64, 7)
	for c := CategoryLeadership; c <= CategoryResults; c++ {
		weights[c] = 1.0 / 7.0
	}
	return weights
}

// validateWeightSet rejects weight sets whose values fall outside [0,1],
// whose sum deviates from 1.0 by more than the tolerance, or that omit a
// required dimension. Failures are configuration errors: the scorer
// cannot be constructed from them.
func validateWeightSet(weights map[string]float64, dims []dimension) error {
	var missing []string
	for _, d := range dims {
		if _, ok := weights[d.key]; !ok {
			missing = append(missing, d.key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.NewConfigurationError(
			fmt.Sprintf("weight set missing dimensions: %s", strings.Join(missing, ", ")), nil)
	}

	sum := 0.0
	for key, w := range weights {
		if w < 0 || w > 1 {
			return errors.NewConfigurationError(
				fmt.Sprintf("weight %s=%v out of range [0,1]", key, w), nil)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return errors.NewConfigurationError(
			fmt.Sprintf("weights must sum to 1.0, got %v", sum), nil)
	}
	return nil
}

// validateCategoryWeights applies the same invariant to the category
// weight mapping: indices in [1,7], values in [0,1], sum within tolerance
// of 1.0.
func validateCategoryWeights(weights map[int]float64) error {
	sum := 0.0
	for category, w := range weights {
		if category < CategoryLeadership || category > CategoryResults {
			return errors.NewConfigurationError(
				fmt.Sprintf("category index %d out of range [1,7]", category), nil)
		}
		if w < 0 || w > 1 {
			return errors.NewConfigurationError(
				fmt.Sprintf("category weight %d=%v out of range [0,1]", category, w), nil)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return errors.NewConfigurationError(
			fmt.Sprintf("category weights must sum to 1.0, got %v", sum), nil)
	}
	return nil
}

// validateIndicators checks that every required indicator key is present
// and every supplied value lies in [0,1]. The error names the exact
// offending keys so callers can correct their input.
func validateIndicators(indicators map[string]float64, dims []dimension) error {
	var missing []string
	for _, d := range dims {
		if _, ok := indicators[d.key]; !ok {
			missing = append(missing, d.key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.NewValidationError(
			fmt.Sprintf("missing required indicators: %s", strings.Join(missing, ", ")))
	}

	invalid := make(map[string]string)
	for _, d := range dims {
		if v := indicators[d.key]; v < 0 || v > 1 {
			invalid[d.key] = fmt.Sprintf("value %v out of range [0,1]", v)
		}
	}
	if len(invalid) > 0 {
		return errors.NewValidationErrorWithMap(invalid)
	}
	return nil
}

// computeWeightedScore evaluates 100 x sum(w_k * x_k) over the variant's
// four dimensions, rounded to two decimals. The computation is linear and
// monotonic in every indicator; all-zero indicators score 0.00 and
// all-one indicators score 100.00 exactly.
func computeWeightedScore(weights, indicators map[string]float64, dims []dimension) (float64, error) {
	if err := validateIndicators(indicators, dims); err != nil {
		return 0, err
	}
	total := 0.0
	for _, d := range dims {
		total += weights[d.key] * indicators[d.key]
	}
	return round2(100 * total), nil
}

// diagnosticBreakdown reports the rounded contribution of each dimension
// plus a Total entry equal to the full weighted score. The contributions
// sum to the total within rounding tolerance.
func diagnosticBreakdown(weights, indicators map[string]float64, dims []dimension) (map[string]float64, error) {
	total, err := computeWeightedScore(weights, indicators, dims)
	if err != nil {
		return nil, err
	}
	breakdown := make(map[string]float64, len(dims)+1)
	for _, d := range dims {
		breakdown[d.label] = round2(100 * weights[d.key] * indicators[d.key])
	}
	breakdown[BreakdownTotalKey] = total
	return breakdown, nil
}

// aggregateItemScores folds item scores into one category score using the
// supplied item weights, or equal 1/N weights when none are given.
func aggregateItemScores(itemScores map[int]float64, itemWeights map[int]float64) (float64, error) {
	if len(itemScores) == 0 {
		return 0, errors.NewValidationError("item scores cannot be empty")
	}

	if itemWeights == nil {
		n := float64(len(itemScores))
		itemWeights = make(map[int]float64, len(itemScores))
		for item := range itemScores {
			itemWeights[item] = 1.0 / n
		}
	} else {
		sum := 0.0
		for item := range itemScores {
			w, ok := itemWeights[item]
			if !ok {
				return 0, errors.NewValidationError(
					fmt.Sprintf("no weight supplied for item %d", item))
			}
			sum += w
		}
		if math.Abs(sum-1.0) > weightTolerance {
			return 0, errors.NewValidationError(
				fmt.Sprintf("item weights must sum to 1.0, got %v", sum))
		}
	}

	score := 0.0
	for item, s := range itemScores {
		score += itemWeights[item] * s
	}
	return round2(score), nil
}
