// Package changelog derives draft change records between assessment periods.
//
// The generator only computes deltas. Narrative attribution of why a score
// moved is an analyst's judgment call: Summary, KeyDevelopments and every
// per-category Rationale are emitted as placeholders for hand-editing.
package changelog

import (
	"riskwatch/internal/catalog"
	"riskwatch/internal/model"
	"riskwatch/internal/scoring"
)

// Placeholder texts an analyst replaces after generation.
const (
	SummaryPlaceholder     = "[TODO: one-paragraph summary of this period]"
	DevelopmentPlaceholder = "[TODO: key development]"
	RationalePlaceholder   = "[TODO: rationale for this change]"
)

// GenerateTemplate builds the draft change record for the period being
// archived. The comparison baseline is always the immediately preceding
// archived snapshot, so drift between archive points is captured even if the
// current assessment was edited several times in between. A nil prior
// snapshot means this is the first-ever archive: OverallChange stays nil and
// there are no category changes to report.
func GenerateTemplate(cat *catalog.Catalog, current *model.Assessment, periodDate string, prior *model.Snapshot) model.ChangeRecord {
	rec := model.ChangeRecord{
		Period:          current.AssessmentPeriod,
		Date:            periodDate,
		OverallScore:    current.OverallScore,
		Summary:         SummaryPlaceholder,
		KeyDevelopments: []string{DevelopmentPlaceholder},
		CategoryChanges: []model.CategoryChange{},
	}

	if prior == nil {
		return rec
	}

	delta := scoring.Round1(current.OverallScore - prior.OverallScore)
	rec.OverallChange = &delta

	for _, id := range cat.CategoryIDs() {
		from, to := prior.Scores[id], current.Scores[id].Score
		if from == to {
			continue
		}
		rec.CategoryChanges = append(rec.CategoryChanges, model.CategoryChange{
			Category:  id,
			From:      from,
			To:        to,
			Rationale: RationalePlaceholder,
		})
	}

	return rec
}
