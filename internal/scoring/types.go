package scoring

// Category indices of the assessment framework. Categories 1-6 are
// process categories, category 7 holds results. Index 0 is reserved for
// organization-level results.
const (
	CategoryLeadership  = 1
	CategoryStrategy    = 2
	CategoryCustomers   = 3
	CategoryMeasurement = 4
	CategoryWorkforce   = 5
	CategoryOperations  = 6
	CategoryResults     = 7
)

// Indicator keys accepted by the process scorer.
const (
	IndicatorApproach    = "approach"
	IndicatorDeployment  = "deployment"
	IndicatorLearning    = "learning"
	IndicatorIntegration = "integration"
)

// Indicator keys accepted by the results scorer. Integration is shared
// with the process set.
const (
	IndicatorLevel      = "level"
	IndicatorTrend      = "trend"
	IndicatorComparison = "comparison"
)

// BreakdownTotalKey labels the aggregate entry in a diagnostic breakdown.
const BreakdownTotalKey = "Total"

// Gap statuses assigned by GapAnalysis.
const (
	StatusCritical = "Critical"
	StatusMonitor  = "Monitor"
	StatusOnTrack  = "On Track"
)

// ScoreResult carries a computed score together with its diagnostic
// context. Results are value objects: they are created fresh by every
// scoring operation and never mutated afterwards.
type ScoreResult struct {
	Score      float64            `json:"score"`
	Category   int                `json:"category"` // 0 = organization level
	Item       *int               `json:"item,omitempty"`
	Breakdown  map[string]float64 `json:"breakdown,omitempty"`
	Confidence float64            `json:"confidence"`
	Metadata   map[string]string  `json:"metadata,omitempty"`
}

// ItemKey addresses one assessment item inside one category. Used to look
// up per-item criticality and risk factors in gap analysis.
type ItemKey struct {
	Category int `json:"category"`
	Item     int `json:"item"`
}

// GapRecord describes the shortfall of one assessment item against its
// target, with the remediation priority derived from it.
type GapRecord struct {
	Category     int     `json:"category"`
	Item         int     `json:"item"`
	CurrentScore float64 `json:"current_score"`
	TargetScore  float64 `json:"target_score"`
	Gap          float64 `json:"gap"`
	Criticality  float64 `json:"criticality"`
	Risk         float64 `json:"risk"`
	Priority     float64 `json:"priority"`
	Status       string  `json:"status"`
}

// IntegrationHealth reports the cross-category coherence index with its
// textual interpretation.
type IntegrationHealth struct {
	Index          float64 `json:"index"`
	Interpretation string  `json:"interpretation"`
}

// Scorecard is the composed organization-level report.
type Scorecard struct {
	OrganizationalScore float64            `json:"organizational_score"`
	Confidence          float64            `json:"confidence"`
	CategoryScores      map[int]float64    `json:"category_scores"`
	CategoryNames       map[int]string     `json:"category_names"`
	MaturityLevel       string             `json:"maturity_level"`
	IntegrationHealth   *IntegrationHealth `json:"integration_health,omitempty"`
}

var categoryNames = map[int]string{
	CategoryLeadership:  "Leadership",
	CategoryStrategy:    "Strategy",
	CategoryCustomers:   "Customers",
	CategoryMeasurement: "Measurement",
	CategoryWorkforce:   "Workforce",
	CategoryOperations:  "Operations",
	CategoryResults:     "Results",
}

// CategoryNames returns the fixed category-name lookup, copied so callers
// cannot mutate the shared table.
func CategoryNames() map[int]string {
	names := make(map[int]string, len(categoryNames))
	for c, n := range categoryNames {
		names[c] = n
	}
	return names
}

// CategoryName returns the display name for a category index, or the
// empty string for unknown indices.
func CategoryName(category int) string {
	return categoryNames[category]
}
