package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoherenceIndex(t *testing.T) {
	scorer := newTestScorer(t)

	tests := []struct {
		name     string
		scores   map[int]float64
		expected float64
		delta    float64
	}{
		{
			name:     "identical scores align perfectly",
			scores:   fullCategoryScores(75),
			expected: 1.0,
			delta:    0.01,
		},
		{
			name:     "no evaluable edges",
			scores:   map[int]float64{CategoryLeadership: 75},
			expected: 0.0,
			delta:    0.0001,
		},
		{
			name:     "empty input",
			scores:   map[int]float64{},
			expected: 0.0,
			delta:    0.0001,
		},
		{
			name: "single evaluable edge",
			scores: map[int]float64{
				CategoryLeadership: 80,
				CategoryStrategy:   60,
			},
			// one edge with a 20 point difference
			expected: 0.8,
			delta:    0.0001,
		},
		{
			name: "maximum misalignment on one edge",
			scores: map[int]float64{
				CategoryLeadership: 100,
				CategoryStrategy:   0,
			},
			expected: 0.0,
			delta:    0.0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.CoherenceIndex(tt.scores)
			assert.InDelta(t, tt.expected, got, tt.delta)
		})
	}
}

// Widening every pairwise difference around a common center must never
// raise the index.
func TestCoherenceIndexDecreasesWithDispersion(t *testing.T) {
	scorer := newTestScorer(t)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		base := make(map[int]float64, 7)
		for c := CategoryLeadership; c <= CategoryResults; c++ {
			base[c] = 40 + rng.Float64()*20 // centered near 50
		}

		spread := make(map[int]float64, 7)
		for c, v := range base {
			// push every score away from the center by half its offset
			spread[c] = clip(50+(v-50)*1.5, 0, 100)
		}

		baseIndex := scorer.CoherenceIndex(base)
		spreadIndex := scorer.CoherenceIndex(spread)
		assert.LessOrEqual(t, spreadIndex, baseIndex+1e-9,
			"widening score differences must not raise coherence")
	}
}
