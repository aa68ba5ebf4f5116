package scoring

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/errors"
)

// DimensionScorer is the shared contract of the two item-scoring
// variants. The organizational scorer selects an implementation by
// category index; both variants are interchangeable behind this
// interface.
type DimensionScorer interface {
	ComputeScore(indicators map[string]float64) (float64, error)
	DiagnosticBreakdown(indicators map[string]float64) (map[string]float64, error)
	ComputeCategoryScore(itemScores map[int]float64, itemWeights map[int]float64) (float64, error)
	Method() string
}

var (
	_ DimensionScorer = (*ProcessScorer)(nil)
	_ DimensionScorer = (*ResultsScorer)(nil)
)

// ScorerConfig carries the constructor-time configuration of an
// organizational scorer. Every field is optional; nil weight maps select
// the documented defaults and a nil logger selects slog.Default().
type ScorerConfig struct {
	CategoryWeights map[int]float64
	ProcessWeights  map[string]float64
	ResultsWeights  map[string]float64
	Logger          *slog.Logger
}

// OrganizationalScorer composes the two dimension scorers with category
// weights into the organization-wide scoring engine. Instances are
// immutable after construction; every operation is a pure function of
// its inputs plus this fixed configuration, so an instance may be shared
// across callers without locking.
type OrganizationalScorer struct {
	categoryWeights map[int]float64
	process         *ProcessScorer
	results         *ResultsScorer
	logger          *slog.Logger
}

// NewOrganizationalScorer validates the supplied weight configuration and
// builds the scorer. Any malformed weight set fails construction with a
// configuration error.
func NewOrganizationalScorer(cfg ScorerConfig) (*OrganizationalScorer, error) {
	categoryWeights := cfg.CategoryWeights
	if categoryWeights == nil {
		categoryWeights = DefaultCategoryWeights()
	} else {
		cp := make(map[int]float64, len(categoryWeights))
		for c, w := range categoryWeights {
			cp[c] = w
		}
		categoryWeights = cp
	}
	if err := validateCategoryWeights(categoryWeights); err != nil {
		return nil, err
	}

	process, err := NewProcessScorer(cfg.ProcessWeights)
	if err != nil {
		return nil, err
	}
	results, err := NewResultsScorer(cfg.ResultsWeights)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &OrganizationalScorer{
		categoryWeights: categoryWeights,
		process:         process,
		results:         results,
		logger:          logger,
	}, nil
}

// scorerFor selects the scoring variant for a category: process for 1-6,
// results for 7. Callers must have validated the category range.
func (s *OrganizationalScorer) scorerFor(category int) DimensionScorer {
	if category <= CategoryOperations {
		return s.process
	}
	return s.results
}

// CategoryWeights returns a copy of the configured category weights.
func (s *OrganizationalScorer) CategoryWeights() map[int]float64 {
	cp := make(map[int]float64, len(s.categoryWeights))
	for c, w := range s.categoryWeights {
		cp[c] = w
	}
	return cp
}

// ComputeItemScore scores a single assessment item. The category selects
// the scoring variant; confidence is derived from the dispersion of the
// supplied indicator values (uniform indicators give confidence 1.0).
func (s *OrganizationalScorer) ComputeItemScore(category, itemID int, indicators map[string]float64) (ScoreResult, error) {
	if category < CategoryLeadership || category > CategoryResults {
		return ScoreResult{}, errors.NewValidationError(
			fmt.Sprintf("category must be 1-7, got %d", category))
	}

	scorer := s.scorerFor(category)
	score, err := scorer.ComputeScore(indicators)
	if err != nil {
		return ScoreResult{}, err
	}
	breakdown, err := scorer.DiagnosticBreakdown(indicators)
	if err != nil {
		return ScoreResult{}, err
	}

	item := itemID
	return ScoreResult{
		Score:      score,
		Category:   category,
		Item:       &item,
		Breakdown:  breakdown,
		Confidence: indicatorConfidence(indicators),
		Metadata:   map[string]string{"method": scorer.Method()},
	}, nil
}

// ComputeCategoryScore aggregates the item scores of one category into a
// category-level result. Item weights default to equal 1/N when nil.
func (s *OrganizationalScorer) ComputeCategoryScore(category int, itemScores map[int]float64, itemWeights map[int]float64) (ScoreResult, error) {
	if category < CategoryLeadership || category > CategoryResults {
		return ScoreResult{}, errors.NewValidationError(
			fmt.Sprintf("category must be 1-7, got %d", category))
	}

	score, err := s.scorerFor(category).ComputeCategoryScore(itemScores, itemWeights)
	if err != nil {
		return ScoreResult{}, err
	}

	breakdown := make(map[string]float64, len(itemScores))
	for item, itemScore := range itemScores {
		breakdown[strconv.Itoa(item)] = itemScore
	}

	return ScoreResult{
		Score:      score,
		Category:   category,
		Breakdown:  breakdown,
		Confidence: 1.0,
	}, nil
}

// ComputeOrganizationalScore folds category scores into the
// organization-wide score using the configured category weights. When
// fewer than seven categories are supplied the computation logs a
// warning and proceeds as a partial weighted sum over the given subset;
// the weights of absent categories are simply not summed, so the result
// is NOT renormalized over the subset.
func (s *OrganizationalScorer) ComputeOrganizationalScore(categoryScores map[int]float64) (ScoreResult, error) {
	if len(categoryScores) < 7 {
		s.logger.Warn("expected 7 categories, proceeding with partial weighted sum",
			"supplied", len(categoryScores))
	}

	score := 0.0
	breakdown := make(map[string]float64, len(categoryScores))
	for category, catScore := range categoryScores {
		weight, ok := s.categoryWeights[category]
		if !ok {
			return ScoreResult{}, errors.NewValidationError(
				fmt.Sprintf("unknown category index %d", category))
		}
		score += weight * catScore
		breakdown[strconv.Itoa(category)] = catScore
	}

	return ScoreResult{
		Score:      round2(score),
		Category:   0, // organization level
		Breakdown:  breakdown,
		Confidence: organizationConfidence(categoryScores),
	}, nil
}

// indicatorConfidence estimates confidence from indicator dispersion:
// 1 - min(var, 1). Indicators live in [0,1], so fully uniform inputs
// give confidence 1.0.
func indicatorConfidence(indicators map[string]float64) float64 {
	return 1.0 - clip(variance(mapValues(indicators)), 0, 1.0)
}

// organizationConfidence applies the same idea to category scores on the
// 0-100 scale, dividing the variance by 1000 to compensate.
func organizationConfidence(categoryScores map[int]float64) float64 {
	values := make([]float64, 0, len(categoryScores))
	for _, v := range categoryScores {
		values = append(values, v)
	}
	return 1.0 - clip(variance(values)/1000, 0, 1.0)
}
