package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskwatch/internal/catalog"
	"riskwatch/internal/common"
	"riskwatch/internal/model"
)

func scoresWith(t *testing.T, overrides map[string]int) map[string]model.CategoryScore {
	t.Helper()

	scores := make(map[string]model.CategoryScore)
	for _, id := range catalog.Default().CategoryIDs() {
		score := 5
		if v, ok := overrides[id]; ok {
			score = v
		}
		scores[id] = model.CategoryScore{
			Score:       score,
			Trend:       model.TrendStable,
			LastUpdated: "2025-06-20",
		}
	}
	return scores
}

func TestDomainScore(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name      string
		domain    string
		overrides map[string]int
		expected  float64
	}{
		{
			name:     "uniform scores",
			domain:   "operating_economic",
			expected: 5.00,
		},
		{
			name:   "rounded to two decimals",
			domain: "rule_of_law_security",
			overrides: map[string]int{
				"rule_of_law":       5,
				"elections":         6,
				"national_security": 7,
				"civil_liberties":   7,
			},
			expected: 6.25,
		},
		{
			name:   "repeating third rounds at two places",
			domain: "societal_institutional",
			overrides: map[string]int{
				"corruption":    4,
				"media_freedom": 4,
				"civil_society": 5,
			},
			expected: 4.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DomainScore(cat, tt.domain, scoresWith(t, tt.overrides))
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestDomainScore_MissingCategory(t *testing.T) {
	cat := catalog.Default()
	scores := scoresWith(t, nil)
	delete(scores, "elections")

	_, err := DomainScore(cat, "rule_of_law_security", scores)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCorruptState)
}

func TestOverallScore(t *testing.T) {
	cat := catalog.Default()

	t.Run("uniform scores", func(t *testing.T) {
		got, err := OverallScore(cat, scoresWith(t, nil))
		require.NoError(t, err)
		assert.InDelta(t, 5.0, got, 1e-9)
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		// Nine fives and one seven: mean 5.2.
		got, err := OverallScore(cat, scoresWith(t, map[string]int{"elections": 7}))
		require.NoError(t, err)
		assert.InDelta(t, 5.2, got, 1e-9)
	})

	t.Run("sum not divisible rounds", func(t *testing.T) {
		// Total 53 over ten categories: 5.3.
		got, err := OverallScore(cat, scoresWith(t, map[string]int{"corruption": 6, "elections": 7}))
		require.NoError(t, err)
		assert.InDelta(t, 5.3, got, 1e-9)
	})

	t.Run("missing category fails", func(t *testing.T) {
		scores := scoresWith(t, nil)
		delete(scores, "corruption")
		_, err := OverallScore(cat, scores)
		assert.ErrorIs(t, err, common.ErrCorruptState)
	})
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		expected model.RiskLevel
		score    float64
	}{
		{model.RiskLow, 1},
		{model.RiskLow, 2.9},
		{model.RiskModerate, 3.0},
		{model.RiskModerate, 4.9},
		{model.RiskElevated, 5.0},
		{model.RiskElevated, 6.9},
		{model.RiskHigh, 7.0},
		{model.RiskHigh, 8.9},
		{model.RiskSevere, 9.0},
		{model.RiskSevere, 10},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.expected, RiskLevelFor(tt.score), "score %.1f", tt.score)
	}
}

func TestRecompute(t *testing.T) {
	cat := catalog.Default()

	a := &model.Assessment{
		AssessmentPeriod: "June 2025",
		Scores:           scoresWith(t, map[string]int{"elections": 8, "media_freedom": 7}),
	}

	require.NoError(t, Recompute(cat, a, "2025-06-21"))

	assert.Equal(t, "2025-06-21", a.AssessmentDate)
	assert.InDelta(t, 5.5, a.OverallScore, 1e-9)
	assert.Equal(t, model.RiskElevated, a.RiskLevel)
	assert.Len(t, a.DomainScores, 3)
	assert.InDelta(t, 5.75, a.DomainScores["rule_of_law_security"], 1e-9)
	assert.InDelta(t, 5.00, a.DomainScores["operating_economic"], 1e-9)
	assert.InDelta(t, 5.67, a.DomainScores["societal_institutional"], 1e-9)
}

func TestRecompute_MissingCategory(t *testing.T) {
	a := &model.Assessment{Scores: scoresWith(t, nil)}
	delete(a.Scores, "rule_of_law")

	assert.ErrorIs(t, Recompute(catalog.Default(), a, "2025-06-21"), common.ErrCorruptState)
}
