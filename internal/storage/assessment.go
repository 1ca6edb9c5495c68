package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"riskwatch/internal/common"
	"riskwatch/internal/model"
	"riskwatch/internal/scoring"
)

// Load reads the persisted current assessment and verifies its structure.
// A missing category, an unknown category id, or a score outside [1,10]
// (from an external hand-edit) fails with common.ErrCorruptState.
func (s *Store) Load() (*model.Assessment, error) {
	data, err := os.ReadFile(s.currentPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, s.currentPath())
		}
		return nil, fmt.Errorf("failed to read current assessment: %w", err)
	}

	var a model.Assessment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptState, err)
	}

	if err := s.validate.Struct(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptState, err)
	}

	for _, id := range s.catalog.CategoryIDs() {
		if _, ok := a.Scores[id]; !ok {
			return nil, fmt.Errorf("%w: category %q missing", common.ErrCorruptState, id)
		}
	}
	for id := range a.Scores {
		if _, ok := s.catalog.Category(id); !ok {
			return nil, fmt.Errorf("%w: unexpected category %q", common.ErrCorruptState, id)
		}
	}

	return &a, nil
}

// ApplyCategoryEdit replaces one category's fields from a patch and stamps
// its LastUpdated date. Unknown category ids fail with
// common.ErrUnknownCategory; a patched score outside [1,10] is clamped to
// the nearest bound rather than rejected, matching the lenient input policy
// of the edit session.
func (s *Store) ApplyCategoryEdit(a *model.Assessment, categoryID string, patch model.CategoryPatch, editDate string) error {
	if a == nil {
		return fmt.Errorf("%w: assessment", ErrNilParameter)
	}
	if _, ok := s.catalog.Category(categoryID); !ok {
		return fmt.Errorf("%w: %q", common.ErrUnknownCategory, categoryID)
	}

	cs := a.Scores[categoryID]

	if patch.Score != nil {
		cs.Score = clampScore(*patch.Score)
	}
	if patch.Trend != nil {
		cs.Trend = *patch.Trend
	}
	if patch.KeyFindings != nil {
		cs.KeyFindings = patch.KeyFindings
	}
	if patch.Sources != nil {
		cs.Sources = patch.Sources
	}
	cs.LastUpdated = editDate

	a.Scores[categoryID] = cs

	return nil
}

// Persist atomically overwrites the current assessment document. It refuses
// to write aggregates that disagree with the category scores: persisting
// without a prior recompute is a logic error, not something to paper over.
func (s *Store) Persist(a *model.Assessment) error {
	if a == nil {
		return fmt.Errorf("%w: assessment", ErrNilParameter)
	}

	if err := s.checkAggregates(a); err != nil {
		return err
	}

	return s.writeJSON(s.currentPath(), a)
}

func (s *Store) checkAggregates(a *model.Assessment) error {
	overall, err := scoring.OverallScore(s.catalog, a.Scores)
	if err != nil {
		return err
	}
	if a.OverallScore != overall || a.RiskLevel != scoring.RiskLevelFor(overall) {
		return ErrStaleAggregates
	}
	for _, domainID := range s.catalog.DomainIDs() {
		ds, err := scoring.DomainScore(s.catalog, domainID, a.Scores)
		if err != nil {
			return err
		}
		if a.DomainScores[domainID] != ds {
			return ErrStaleAggregates
		}
	}
	return nil
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
