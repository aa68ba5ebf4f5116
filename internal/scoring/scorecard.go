package scoring

// Maturity labels derived from the organizational score. Boundaries are
// inclusive on the lower bound of each tier.
const (
	MaturityAdvanced   = "Advanced - World-class performance"
	MaturityMature     = "Mature - Strong systematic approach"
	MaturityDeveloping = "Developing - Early systematic approach"
	MaturityEmerging   = "Emerging - Beginning systematic approach"
	MaturityInitial    = "Initial - Reactive approach"
)

// GenerateScorecard composes the organization-wide report: the weighted
// organizational score with its confidence, the echoed category scores
// and name lookup, the maturity label, and (when requested) the
// coherence index with its interpretation.
func (s *OrganizationalScorer) GenerateScorecard(categoryScores map[int]float64, includeIntegrationHealth bool) (Scorecard, error) {
	org, err := s.ComputeOrganizationalScore(categoryScores)
	if err != nil {
		return Scorecard{}, err
	}

	scores := make(map[int]float64, len(categoryScores))
	for category, score := range categoryScores {
		scores[category] = score
	}

	card := Scorecard{
		OrganizationalScore: org.Score,
		Confidence:          org.Confidence,
		CategoryScores:      scores,
		CategoryNames:       CategoryNames(),
		MaturityLevel:       MaturityLevel(org.Score),
	}

	if includeIntegrationHealth {
		index := s.CoherenceIndex(categoryScores)
		card.IntegrationHealth = &IntegrationHealth{
			Index:          round3(index),
			Interpretation: interpretCoherence(index),
		}
	}

	return card, nil
}

// MaturityLevel maps an organizational score onto the five-tier maturity
// scale.
func MaturityLevel(score float64) string {
	switch {
	case score >= 90:
		return MaturityAdvanced
	case score >= 75:
		return MaturityMature
	case score >= 60:
		return MaturityDeveloping
	case score >= 40:
		return MaturityEmerging
	default:
		return MaturityInitial
	}
}

func interpretCoherence(index float64) string {
	switch {
	case index >= 0.9:
		return "Excellent - Strong cross-category alignment"
	case index >= 0.8:
		return "Good - Moderate alignment with minor gaps"
	case index >= 0.7:
		return "Fair - Some alignment issues need attention"
	default:
		return "Poor - Significant alignment gaps require intervention"
	}
}
