package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"riskwatch/internal/common"
	"riskwatch/internal/model"
)

// Archive freezes the current assessment into an immutable snapshot for
// periodDate. Findings, sources and trends are dropped; only the bare
// scores and aggregates are retained. If a snapshot for the date already
// exists the call is an idempotent no-op: it logs the skip and reports
// created=false without error.
func (s *Store) Archive(a *model.Assessment, periodDate string) (created bool, err error) {
	if a == nil {
		return false, fmt.Errorf("%w: assessment", ErrNilParameter)
	}
	if err := validateDate(periodDate); err != nil {
		return false, err
	}
	if err := s.checkAggregates(a); err != nil {
		return false, err
	}

	path := s.snapshotPath(periodDate)
	if _, err := os.Stat(path); err == nil {
		slog.Info("Snapshot already archived, skipping", "date", periodDate)
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat snapshot: %w", err)
	}

	snap := model.Snapshot{
		Date:         periodDate,
		Scores:       make(map[string]int, len(a.Scores)),
		DomainScores: make(map[string]float64, len(a.DomainScores)),
		OverallScore: a.OverallScore,
		RiskLevel:    a.RiskLevel,
	}
	for id, cs := range a.Scores {
		snap.Scores[id] = cs.Score
	}
	for id, ds := range a.DomainScores {
		snap.DomainScores[id] = ds
	}

	if err := s.writeJSON(path, &snap); err != nil {
		return false, err
	}

	slog.Info("Archived snapshot", "date", periodDate, "overall", snap.OverallScore)
	return true, nil
}

// LatestSnapshot returns the most recent archived snapshot, or
// common.ErrNotFound if the archive is empty.
func (s *Store) LatestSnapshot() (*model.Snapshot, error) {
	return s.latestBefore("")
}

// LatestSnapshotBefore returns the most recent snapshot strictly older than
// date. This is the comparison baseline for change-log generation when the
// snapshot for date itself was just written.
func (s *Store) LatestSnapshotBefore(date string) (*model.Snapshot, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return s.latestBefore(date)
}

// latestBefore relies on ISO dates sorting lexicographically in
// chronological order; before == "" means no upper bound.
func (s *Store) latestBefore(before string) (*model.Snapshot, error) {
	dates, err := s.snapshotDates()
	if err != nil {
		return nil, err
	}

	latest := ""
	for _, d := range dates {
		if before != "" && d >= before {
			continue
		}
		if d > latest {
			latest = d
		}
	}
	if latest == "" {
		return nil, fmt.Errorf("%w: no archived snapshots", common.ErrNotFound)
	}

	return s.readSnapshot(latest)
}

// ListSnapshots returns all archived snapshots ordered by date ascending.
func (s *Store) ListSnapshots() ([]model.Snapshot, error) {
	dates, err := s.snapshotDates()
	if err != nil {
		return nil, err
	}
	sort.Strings(dates)

	snaps := make([]model.Snapshot, 0, len(dates))
	for _, d := range dates {
		snap, err := s.readSnapshot(d)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}
	return snaps, nil
}

func (s *Store) snapshotDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dataDir, snapshotsDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshots directory: %w", err)
	}

	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		date := strings.TrimSuffix(name, ".json")
		if validateDate(date) != nil {
			slog.Warn("Ignoring stray file in snapshots directory", "name", name)
			continue
		}
		dates = append(dates, date)
	}
	return dates, nil
}

func (s *Store) readSnapshot(date string) (*model.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(date))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", date, err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: snapshot %s: %v", common.ErrCorruptState, date, err)
	}
	return &snap, nil
}
