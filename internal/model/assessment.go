// Package model defines the core data types for the risk assessment pipeline.
package model

import (
	"strings"
	"time"
)

// Trend indicates the direction a category score is moving between periods.
type Trend string

const (
	// TrendIncreasing means risk in the category is rising.
	TrendIncreasing Trend = "increasing"
	// TrendStable means risk in the category is holding steady.
	TrendStable Trend = "stable"
	// TrendDecreasing means risk in the category is falling.
	TrendDecreasing Trend = "decreasing"
)

// RiskLevel is the headline label derived from a numeric score.
type RiskLevel string

const (
	// RiskLow covers scores in [1,3).
	RiskLow RiskLevel = "Low"
	// RiskModerate covers scores in [3,5).
	RiskModerate RiskLevel = "Moderate"
	// RiskElevated covers scores in [5,7).
	RiskElevated RiskLevel = "Elevated"
	// RiskHigh covers scores in [7,9).
	RiskHigh RiskLevel = "High"
	// RiskSevere covers scores in [9,10].
	RiskSevere RiskLevel = "Severe"
)

// DateFormat is the layout for all persisted calendar dates.
const DateFormat = "2006-01-02"

// CategoryScore holds the assessed state of one risk category.
type CategoryScore struct {
	Score       int      `json:"score" validate:"required,min=1,max=10"`
	Trend       Trend    `json:"trend" validate:"required,oneof=increasing stable decreasing"`
	KeyFindings []string `json:"keyFindings"`
	Sources     []string `json:"sources,omitempty"`
	LastUpdated string   `json:"lastUpdated" validate:"required"`
}

// Assessment is the single live record of all category scores and their
// derived aggregates. DomainScores, OverallScore and RiskLevel are always
// computed from Scores, never set independently.
type Assessment struct {
	AssessmentDate   string                   `json:"assessmentDate" validate:"required"`
	AssessmentPeriod string                   `json:"assessmentPeriod" validate:"required"`
	Scores           map[string]CategoryScore `json:"scores" validate:"required,dive"`
	DomainScores     map[string]float64       `json:"domainScores"`
	OverallScore     float64                  `json:"overallScore"`
	RiskLevel        RiskLevel                `json:"riskLevel"`
}

// Clone returns a deep copy so session edits can be discarded without
// touching the loaded assessment.
func (a *Assessment) Clone() *Assessment {
	c := &Assessment{
		AssessmentDate:   a.AssessmentDate,
		AssessmentPeriod: a.AssessmentPeriod,
		Scores:           make(map[string]CategoryScore, len(a.Scores)),
		DomainScores:     make(map[string]float64, len(a.DomainScores)),
		OverallScore:     a.OverallScore,
		RiskLevel:        a.RiskLevel,
	}
	for id, cs := range a.Scores {
		cs.KeyFindings = append([]string(nil), cs.KeyFindings...)
		cs.Sources = append([]string(nil), cs.Sources...)
		c.Scores[id] = cs
	}
	for id, ds := range a.DomainScores {
		c.DomainScores[id] = ds
	}
	return c
}

// CategoryPatch carries the fields of one category that an edit session may
// replace. Nil fields mean "keep the current value".
type CategoryPatch struct {
	Score       *int
	Trend       *Trend
	KeyFindings []string
	Sources     []string
}

// Snapshot is an immutable record of all scores at one archived period.
// Findings, sources and trends are deliberately not retained.
type Snapshot struct {
	Date         string             `json:"date"`
	Scores       map[string]int     `json:"scores"`
	DomainScores map[string]float64 `json:"domainScores"`
	OverallScore float64            `json:"overallScore"`
	RiskLevel    RiskLevel          `json:"riskLevel"`
}

// CategoryChange records one category whose score moved between two archived
// periods. Rationale is filled in by an analyst after generation.
type CategoryChange struct {
	Category  string `json:"category"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Rationale string `json:"rationale"`
}

// ChangeRecord is the draft change-log entry for one archived period.
// Summary and KeyDevelopments are placeholders awaiting human narrative;
// OverallChange is nil for the first-ever archived period.
type ChangeRecord struct {
	Period          string           `json:"period"`
	Date            string           `json:"date"`
	OverallScore    float64          `json:"overallScore"`
	OverallChange   *float64         `json:"overallChange"`
	Summary         string           `json:"summary"`
	KeyDevelopments []string         `json:"keyDevelopments"`
	CategoryChanges []CategoryChange `json:"categoryChanges"`
}

// ParseTrend maps operator input to a Trend. It accepts the full word or its
// first letter, case-insensitive, and reports false for anything else.
func ParseTrend(input string) (Trend, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "increasing", "i":
		return TrendIncreasing, true
	case "stable", "s":
		return TrendStable, true
	case "decreasing", "d":
		return TrendDecreasing, true
	default:
		return "", false
	}
}

// Today returns the current date in the persisted layout.
func Today() string {
	return time.Now().Format(DateFormat)
}
