package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTrend(t *testing.T) {
	tests := []struct {
		input    string
		expected Trend
		ok       bool
	}{
		{"increasing", TrendIncreasing, true},
		{"i", TrendIncreasing, true},
		{"I", TrendIncreasing, true},
		{"STABLE", TrendStable, true},
		{"s", TrendStable, true},
		{"Decreasing", TrendDecreasing, true},
		{"d", TrendDecreasing, true},
		{" d ", TrendDecreasing, true},
		{"", "", false},
		{"sideways", "", false},
		{"x", "", false},
	}

	for _, tt := range tests {
		trend, ok := ParseTrend(tt.input)
		assert.Equalf(t, tt.ok, ok, "input %q", tt.input)
		assert.Equalf(t, tt.expected, trend, "input %q", tt.input)
	}
}

func TestAssessmentClone(t *testing.T) {
	original := &Assessment{
		AssessmentDate:   "2025-06-20",
		AssessmentPeriod: "June 2025",
		Scores: map[string]CategoryScore{
			"elections": {
				Score:       5,
				Trend:       TrendStable,
				KeyFindings: []string{"baseline"},
				Sources:     []string{"https://example.org"},
				LastUpdated: "2025-06-20",
			},
		},
		DomainScores: map[string]float64{"rule_of_law_security": 5.0},
		OverallScore: 5.0,
		RiskLevel:    RiskElevated,
	}

	clone := original.Clone()

	cs := clone.Scores["elections"]
	cs.Score = 9
	cs.KeyFindings[0] = "mutated"
	clone.Scores["elections"] = cs
	clone.DomainScores["rule_of_law_security"] = 9.0

	assert.Equal(t, 5, original.Scores["elections"].Score)
	assert.Equal(t, "baseline", original.Scores["elections"].KeyFindings[0])
	assert.InDelta(t, 5.0, original.DomainScores["rule_of_law_security"], 1e-9)
}
