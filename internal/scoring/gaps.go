package scoring

import "sort"

// defaultTarget is assumed for items with no explicit target score.
const defaultTarget = 100.0

// defaultFactor is assumed for items with no explicit criticality or
// risk factor.
const defaultFactor = 0.5

// GapAnalysis compares current against target scores for every item
// present in current and returns remediation records ordered by
// descending priority (gap x criticality x risk). Targets default to
// 100, criticality and risk to 0.5 each. Gaps are clamped at zero when
// an item already exceeds its target. Ties keep ascending
// (category, item) order; an empty current yields an empty sequence.
func (s *OrganizationalScorer) GapAnalysis(
	current map[int]map[int]float64,
	target map[int]map[int]float64,
	criticality map[ItemKey]float64,
	risk map[ItemKey]float64,
) []GapRecord {
	records := make([]GapRecord, 0, len(current)*3)

	for _, category := range sortedKeys(current) {
		items := current[category]
		for _, item := range sortedKeys(items) {
			currentScore := items[item]
			targetScore := defaultTarget
			if catTargets, ok := target[category]; ok {
				if t, ok := catTargets[item]; ok {
					targetScore = t
				}
			}

			gap := targetScore - currentScore
			if gap < 0 {
				gap = 0
			}

			key := ItemKey{Category: category, Item: item}
			crit := defaultFactor
			if c, ok := criticality[key]; ok {
				crit = c
			}
			riskFactor := defaultFactor
			if r, ok := risk[key]; ok {
				riskFactor = r
			}

			records = append(records, GapRecord{
				Category:     category,
				Item:         item,
				CurrentScore: currentScore,
				TargetScore:  targetScore,
				Gap:          gap,
				Criticality:  crit,
				Risk:         riskFactor,
				Priority:     gap * crit * riskFactor,
				Status:       gapStatus(gap),
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Priority > records[j].Priority
	})
	return records
}

// gapStatus classifies a gap: Critical above 20 points, Monitor above 10,
// On Track otherwise.
func gapStatus(gap float64) string {
	switch {
	case gap > 20:
		return StatusCritical
	case gap > 10:
		return StatusMonitor
	default:
		return StatusOnTrack
	}
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
