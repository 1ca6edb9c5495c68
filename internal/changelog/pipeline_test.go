package changelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskwatch/internal/catalog"
	"riskwatch/internal/common"
	"riskwatch/internal/model"
	"riskwatch/internal/storage"
)

// Walks two monthly archival runs end to end: snapshot, diff, append, and
// re-invocation for an already-archived period.
func TestMonthlyArchivalFlow(t *testing.T) {
	cat := catalog.Default()
	store, err := storage.New(t.TempDir(), cat)
	require.NoError(t, err)

	archivePeriod := func(current *model.Assessment, date string) (bool, model.ChangeRecord) {
		t.Helper()

		_, err := store.Archive(current, date)
		require.NoError(t, err)

		prior, err := store.LatestSnapshotBefore(date)
		if err != nil {
			require.ErrorIs(t, err, common.ErrNotFound)
			prior = nil
		}

		rec := GenerateTemplate(cat, current, date, prior)
		appended, err := store.AppendChangeRecord(rec)
		require.NoError(t, err)
		return appended, rec
	}

	// First period: nothing to diff against.
	may := assessmentWith(t, nil)
	appended, rec := archivePeriod(may, "2025-05-20")
	assert.True(t, appended)
	assert.Nil(t, rec.OverallChange)
	assert.Empty(t, rec.CategoryChanges)

	// Second period: elections worsened between archive points.
	june := assessmentWith(t, map[string]int{"elections": 7})
	appended, rec = archivePeriod(june, "2025-06-20")
	assert.True(t, appended)
	require.NotNil(t, rec.OverallChange)
	assert.InDelta(t, 0.2, *rec.OverallChange, 1e-9)
	require.Len(t, rec.CategoryChanges, 1)
	assert.Equal(t, "elections", rec.CategoryChanges[0].Category)

	// Re-running the same period is a no-op at both layers.
	created, err := store.Archive(june, "2025-06-20")
	require.NoError(t, err)
	assert.False(t, created)
	appended, _ = archivePeriod(june, "2025-06-20")
	assert.False(t, appended)

	records, err := store.LoadChangeLog()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-05-20", records[0].Date)
	assert.Equal(t, "2025-06-20", records[1].Date)

	snaps, err := store.ListSnapshots()
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	// The archive only keeps bare scores.
	latest, err := store.LatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-20", latest.Date)
	assert.Equal(t, 7, latest.Scores["elections"])
}

// Errors from LatestSnapshotBefore other than not-found must surface.
func TestMonthlyArchivalFlow_BadDate(t *testing.T) {
	store, err := storage.New(t.TempDir(), catalog.Default())
	require.NoError(t, err)

	_, err = store.LatestSnapshotBefore("not-a-date")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrNotFound))
}
