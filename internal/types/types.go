package types

// ItemScoreRequest asks for one assessment item to be scored from its
// normalized indicators.
type ItemScoreRequest struct {
	Category   int                `json:"category" binding:"required"`
	Item       int                `json:"item"`
	Indicators map[string]float64 `json:"indicators" binding:"required"`
}

// CategoryScoreRequest asks for item scores to be aggregated into one
// category score. ItemWeights is optional; omitted weights mean equal
// weighting.
type CategoryScoreRequest struct {
	Category    int             `json:"category" binding:"required"`
	ItemScores  map[int]float64 `json:"item_scores" binding:"required"`
	ItemWeights map[int]float64 `json:"item_weights,omitempty"`
}

// OrganizationScoreRequest asks for category scores to be folded into the
// organization-wide score.
type OrganizationScoreRequest struct {
	CategoryScores map[int]float64 `json:"category_scores" binding:"required"`
}

// ScorecardRequest asks for the composed scorecard. IntegrationHealth
// defaults to true when omitted.
type ScorecardRequest struct {
	CategoryScores    map[int]float64 `json:"category_scores" binding:"required"`
	IntegrationHealth *bool           `json:"integration_health,omitempty"`
}

// GapAnalysisRequest asks for a prioritized gap analysis. Criticality
// and Risk are keyed by "category:item" strings, e.g. "2:3". Current may
// be empty; an empty analysis is a valid, empty result.
type GapAnalysisRequest struct {
	Current     map[int]map[int]float64 `json:"current"`
	Target      map[int]map[int]float64 `json:"target,omitempty"`
	Criticality map[string]float64      `json:"criticality,omitempty"`
	Risk        map[string]float64      `json:"risk,omitempty"`
}
