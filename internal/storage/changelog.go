package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"riskwatch/internal/common"
	"riskwatch/internal/model"
)

// changeLogDocument is the on-disk shape of the change-log collection: an
// ordered sequence, appended to as periods are archived, never reordered.
type changeLogDocument struct {
	Records []model.ChangeRecord `json:"records"`
}

// LoadChangeLog returns all change records in their persisted order. A
// missing file is an empty log, not an error.
func (s *Store) LoadChangeLog() ([]model.ChangeRecord, error) {
	data, err := os.ReadFile(s.changelogPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read change log: %w", err)
	}

	var doc changeLogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: change log: %v", common.ErrCorruptState, err)
	}
	return doc.Records, nil
}

// AppendChangeRecord appends a record to the change-log collection. If a
// record for the same date already exists the append is skipped so that
// re-running an archival for a period never duplicates its entry.
func (s *Store) AppendChangeRecord(rec model.ChangeRecord) (appended bool, err error) {
	if err := validateDate(rec.Date); err != nil {
		return false, err
	}

	records, err := s.LoadChangeLog()
	if err != nil {
		return false, err
	}

	for _, existing := range records {
		if existing.Date == rec.Date {
			slog.Info("Change record already present, skipping", "date", rec.Date)
			return false, nil
		}
	}

	records = append(records, rec)
	if err := s.writeJSON(s.changelogPath(), &changeLogDocument{Records: records}); err != nil {
		return false, err
	}

	return true, nil
}
