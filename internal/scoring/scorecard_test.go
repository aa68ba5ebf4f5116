package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaturityLevel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"advanced at the boundary", 90, MaturityAdvanced},
		{"mature just below advanced", 89.999, MaturityMature},
		{"mature at the boundary", 75, MaturityMature},
		{"developing at the boundary", 60, MaturityDeveloping},
		{"emerging at the boundary", 40, MaturityEmerging},
		{"initial just below emerging", 39.999, MaturityInitial},
		{"initial at zero", 0, MaturityInitial},
		{"advanced at a perfect score", 100, MaturityAdvanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaturityLevel(tt.score))
		})
	}
}

func TestGenerateScorecard(t *testing.T) {
	scorer := newTestScorer(t)

	t.Run("full scorecard with integration health", func(t *testing.T) {
		card, err := scorer.GenerateScorecard(fullCategoryScores(75), true)
		require.NoError(t, err)

		assert.InDelta(t, 75.00, card.OrganizationalScore, 0.001)
		assert.InDelta(t, 1.0, card.Confidence, 1e-9)
		assert.Equal(t, MaturityMature, card.MaturityLevel)
		assert.Equal(t, "Leadership", card.CategoryNames[CategoryLeadership])
		assert.Equal(t, "Results", card.CategoryNames[CategoryResults])

		require.NotNil(t, card.IntegrationHealth)
		assert.InDelta(t, 1.0, card.IntegrationHealth.Index, 0.001)
		assert.Equal(t, "Excellent - Strong cross-category alignment", card.IntegrationHealth.Interpretation)
	})

	t.Run("integration health can be skipped", func(t *testing.T) {
		card, err := scorer.GenerateScorecard(fullCategoryScores(75), false)
		require.NoError(t, err)
		assert.Nil(t, card.IntegrationHealth)
	})

	t.Run("category scores are copied into the card", func(t *testing.T) {
		scores := fullCategoryScores(60)
		card, err := scorer.GenerateScorecard(scores, false)
		require.NoError(t, err)

		scores[CategoryLeadership] = 0
		assert.InDelta(t, 60.0, card.CategoryScores[CategoryLeadership], 0.001)
	})

	t.Run("invalid category index propagates", func(t *testing.T) {
		_, err := scorer.GenerateScorecard(map[int]float64{9: 70}, true)
		require.Error(t, err)
	})
}

func TestInterpretCoherence(t *testing.T) {
	tests := []struct {
		name     string
		index    float64
		contains string
	}{
		{"excellent tier", 0.95, "Excellent"},
		{"excellent boundary", 0.9, "Excellent"},
		{"good tier", 0.85, "Good"},
		{"fair tier", 0.75, "Fair"},
		{"poor tier", 0.5, "Poor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, interpretCoherence(tt.index), tt.contains)
		})
	}
}
