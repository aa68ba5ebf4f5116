package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/cache"
	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/monitoring"
	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/scoring"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scorer, err := scoring.NewOrganizationalScorer(scoring.ScorerConfig{})
	require.NoError(t, err)

	return setupRouter(
		scorer,
		monitoring.NewMetrics(),
		monitoring.NewLogger(),
		cache.NewCache(time.Minute),
		nil, // no rate limiting in tests
	)
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "total_requests")
	assert.Contains(t, body, "scoring_operations")
}

func TestCategoriesEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/categories", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Categories map[int]string  `json:"categories"`
		Weights    map[int]float64 `json:"weights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Leadership", body.Categories[1])
	assert.Equal(t, "Results", body.Categories[7])
	assert.Len(t, body.Weights, 7)
}

func TestScoreItemEndpoint(t *testing.T) {
	r := newTestRouter(t)

	t.Run("process item", func(t *testing.T) {
		w := postJSON(t, r, "/v1/score/item", `{
			"category": 1,
			"item": 1,
			"indicators": {"approach": 0.75, "deployment": 0.45, "learning": 0.60, "integration": 0.55}
		}`)
		require.Equal(t, http.StatusOK, w.Code)

		var result scoring.ScoreResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.InDelta(t, 59.00, result.Score, 0.001)
		assert.Equal(t, "ADLI", result.Metadata["method"])
	})

	t.Run("results item", func(t *testing.T) {
		w := postJSON(t, r, "/v1/score/item", `{
			"category": 7,
			"item": 1,
			"indicators": {"level": 0.85, "trend": 0.90, "comparison": 0.75, "integration": 0.70}
		}`)
		require.Equal(t, http.StatusOK, w.Code)

		var result scoring.ScoreResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.InDelta(t, 81.25, result.Score, 0.001)
		assert.Equal(t, "LeTCI", result.Metadata["method"])
	})

	t.Run("missing indicators yield 400", func(t *testing.T) {
		w := postJSON(t, r, "/v1/score/item", `{
			"category": 1,
			"indicators": {"approach": 0.5}
		}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "missing required indicators")
	})

	t.Run("category out of range yields 400", func(t *testing.T) {
		w := postJSON(t, r, "/v1/score/item", `{
			"category": 9,
			"indicators": {"approach": 0.5, "deployment": 0.5, "learning": 0.5, "integration": 0.5}
		}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body yields 400", func(t *testing.T) {
		w := postJSON(t, r, "/v1/score/item", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestScoreCategoryEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(t, r, "/v1/score/category", `{
		"category": 3,
		"item_scores": {"1": 75, "2": 59, "3": 82}
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result scoring.ScoreResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 72.00, result.Score, 0.001)
}

func TestScoreOrganizationEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(t, r, "/v1/score/organization", `{
		"category_scores": {"1": 70, "2": 70, "3": 70, "4": 70, "5": 70, "6": 70, "7": 70}
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result scoring.ScoreResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 70.00, result.Score, 0.001)
	assert.Equal(t, 0, result.Category)
}

func TestCoherenceEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(t, r, "/v1/coherence", `{
		"category_scores": {"1": 75, "2": 75, "3": 75, "4": 75, "5": 75, "6": 75, "7": 75}
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		CoherenceIndex float64 `json:"coherence_index"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 1.0, body.CoherenceIndex, 0.01)
}

func TestGapAnalysisEndpoint(t *testing.T) {
	r := newTestRouter(t)

	t.Run("defaults and ordering", func(t *testing.T) {
		w := postJSON(t, r, "/v1/gap-analysis", `{
			"current": {"1": {"1": 70}},
			"target": {"1": {"1": 85}}
		}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Gaps  []scoring.GapRecord `json:"gaps"`
			Count int                 `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, 1, body.Count)
		assert.InDelta(t, 15.0, body.Gaps[0].Gap, 0.001)
		assert.Equal(t, "Monitor", body.Gaps[0].Status)
	})

	t.Run("factor keys are parsed", func(t *testing.T) {
		w := postJSON(t, r, "/v1/gap-analysis", `{
			"current": {"2": {"3": 60}},
			"criticality": {"2:3": 1.0},
			"risk": {"2:3": 0.8}
		}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Gaps []scoring.GapRecord `json:"gaps"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Gaps, 1)
		assert.InDelta(t, 32.0, body.Gaps[0].Priority, 0.001) // 40 * 1.0 * 0.8
	})

	t.Run("malformed factor key yields 400", func(t *testing.T) {
		w := postJSON(t, r, "/v1/gap-analysis", `{
			"current": {"1": {"1": 70}},
			"criticality": {"not-a-key": 1.0}
		}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty current yields empty gaps", func(t *testing.T) {
		w := postJSON(t, r, "/v1/gap-analysis", `{"current": {}}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 0, body.Count)
	})
}

func TestScorecardEndpoint(t *testing.T) {
	r := newTestRouter(t)

	t.Run("integration health defaults to included", func(t *testing.T) {
		w := postJSON(t, r, "/v1/scorecard", `{
			"category_scores": {"1": 75, "2": 75, "3": 75, "4": 75, "5": 75, "6": 75, "7": 75}
		}`)
		require.Equal(t, http.StatusOK, w.Code)

		var card scoring.Scorecard
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
		assert.InDelta(t, 75.00, card.OrganizationalScore, 0.001)
		assert.Equal(t, scoring.MaturityMature, card.MaturityLevel)
		require.NotNil(t, card.IntegrationHealth)
		assert.InDelta(t, 1.0, card.IntegrationHealth.Index, 0.01)
	})

	t.Run("integration health can be excluded", func(t *testing.T) {
		w := postJSON(t, r, "/v1/scorecard", `{
			"category_scores": {"1": 75, "2": 75, "3": 75, "4": 75, "5": 75, "6": 75, "7": 75},
			"integration_health": false
		}`)
		require.Equal(t, http.StatusOK, w.Code)

		var card scoring.Scorecard
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
		assert.Nil(t, card.IntegrationHealth)
	})

	t.Run("identical requests are served from cache", func(t *testing.T) {
		body := `{"category_scores": {"1": 60, "2": 60, "3": 60, "4": 60, "5": 60, "6": 60, "7": 60}}`
		w1 := postJSON(t, r, "/v1/scorecard", body)
		w2 := postJSON(t, r, "/v1/scorecard", body)

		require.Equal(t, http.StatusOK, w1.Code)
		require.Equal(t, http.StatusOK, w2.Code)
		assert.Equal(t, w1.Body.String(), w2.Body.String())
	})
}

func TestCacheStatsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cache/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "total_items")
}

func TestParseItemFactors(t *testing.T) {
	t.Run("valid keys", func(t *testing.T) {
		factors, err := parseItemFactors(map[string]float64{"2:3": 0.9, "1:1": 0.1})
		require.NoError(t, err)
		assert.InDelta(t, 0.9, factors[scoring.ItemKey{Category: 2, Item: 3}], 1e-9)
		assert.InDelta(t, 0.1, factors[scoring.ItemKey{Category: 1, Item: 1}], 1e-9)
	})

	t.Run("empty input", func(t *testing.T) {
		factors, err := parseItemFactors(nil)
		require.NoError(t, err)
		assert.Nil(t, factors)
	})

	t.Run("bad keys", func(t *testing.T) {
		for _, key := range []string{"21", "a:b", "1:", ":2"} {
			_, err := parseItemFactors(map[string]float64{key: 1})
			assert.Error(t, err, "key %q", key)
		}
	})
}
