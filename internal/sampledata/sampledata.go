// Package sampledata ships a small assessment fixture so the CLI demo
// and the tests can exercise the full scoring pipeline without real
// assessment data.
package sampledata

import (
	"encoding/json"
	"fmt"
	"os"
)

// Assessment is a complete organizational assessment: item scores on
// the 0-100 scale grouped by category.
type Assessment struct {
	Organization string                  `json:"organization"`
	Period       string                  `json:"period"`
	ItemScores   map[int]map[int]float64 `json:"item_scores"`
}

// SampleAssessment returns the built-in demo assessment.
func SampleAssessment() *Assessment {
	return &Assessment{
		Organization: "Sample University",
		Period:       "2024-2025",
		ItemScores: map[int]map[int]float64{
			1: {1: 75, 2: 72, 3: 78},
			2: {1: 65, 2: 59, 3: 70},
			3: {1: 80, 2: 85, 3: 82},
			4: {1: 68, 2: 72, 3: 70},
			5: {1: 74, 2: 76, 3: 75},
			6: {1: 69, 2: 71, 3: 68},
			7: {1: 88, 2: 85, 3: 90},
		},
	}
}

// CategoryMeans folds each category's item scores into an unweighted
// mean, the shape the organizational scorer consumes.
func (a *Assessment) CategoryMeans() map[int]float64 {
	means := make(map[int]float64, len(a.ItemScores))
	for category, items := range a.ItemScores {
		if len(items) == 0 {
			continue
		}
		sum := 0.0
		for _, score := range items {
			sum += score
		}
		means[category] = sum / float64(len(items))
	}
	return means
}

// LoadAssessment reads an assessment from a JSON file.
func LoadAssessment(path string) (*Assessment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assessment file %s: %w", path, err)
	}

	var assessment Assessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		return nil, fmt.Errorf("parse assessment file %s: %w", path, err)
	}

	if len(assessment.ItemScores) == 0 {
		return nil, fmt.Errorf("assessment file %s has no item scores", path)
	}

	return &assessment, nil
}
