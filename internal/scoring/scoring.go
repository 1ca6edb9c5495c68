// Package scoring implements the score model: how category scores roll up
// into domain and overall scores, and how a numeric score maps to a risk
// level label.
package scoring

import (
	"fmt"
	"math"

	"riskwatch/internal/catalog"
	"riskwatch/internal/common"
	"riskwatch/internal/model"
)

// DomainScore computes the arithmetic mean of a domain's category scores,
// rounded to 2 decimal places. Every category in the domain must be present
// in scores; a missing entry is a precondition violation, never averaged
// around.
func DomainScore(cat *catalog.Catalog, domainID string, scores map[string]model.CategoryScore) (float64, error) {
	ids := cat.DomainCategories(domainID)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: domain %q has no categories", common.ErrUnknownCategory, domainID)
	}

	var sum int
	for _, id := range ids {
		cs, ok := scores[id]
		if !ok {
			return 0, fmt.Errorf("%w: category %q missing from scores", common.ErrCorruptState, id)
		}
		sum += cs.Score
	}

	return round(float64(sum)/float64(len(ids)), 2), nil
}

// OverallScore computes the arithmetic mean of all category scores, rounded
// to 1 decimal place. The coarser rounding versus DomainScore is deliberate:
// the overall score is the headline figure, domain scores are detail.
func OverallScore(cat *catalog.Catalog, scores map[string]model.CategoryScore) (float64, error) {
	ids := cat.CategoryIDs()

	var sum int
	for _, id := range ids {
		cs, ok := scores[id]
		if !ok {
			return 0, fmt.Errorf("%w: category %q missing from scores", common.ErrCorruptState, id)
		}
		sum += cs.Score
	}

	return round(float64(sum)/float64(len(ids)), 1), nil
}

// RiskLevelFor maps a numeric score onto its risk level label. Bins are
// inclusive-low, exclusive-high, except the top bin which is closed at 10.
func RiskLevelFor(score float64) model.RiskLevel {
	switch {
	case score < 3:
		return model.RiskLow
	case score < 5:
		return model.RiskModerate
	case score < 7:
		return model.RiskElevated
	case score < 9:
		return model.RiskHigh
	default:
		return model.RiskSevere
	}
}

// Recompute derives all aggregates for an assessment from its category
// scores and stamps the assessment date. It must run after any edit and
// before persistence.
func Recompute(cat *catalog.Catalog, a *model.Assessment, asOf string) error {
	domainScores := make(map[string]float64, len(cat.DomainIDs()))
	for _, domainID := range cat.DomainIDs() {
		ds, err := DomainScore(cat, domainID, a.Scores)
		if err != nil {
			return err
		}
		domainScores[domainID] = ds
	}

	overall, err := OverallScore(cat, a.Scores)
	if err != nil {
		return err
	}

	a.DomainScores = domainScores
	a.OverallScore = overall
	a.RiskLevel = RiskLevelFor(overall)
	a.AssessmentDate = asOf

	return nil
}

// Round1 rounds to 1 decimal place, matching the overall-score precision.
func Round1(v float64) float64 {
	return round(v, 1)
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
