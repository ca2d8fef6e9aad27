package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/eol-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func strPtr(s string) *string { return &s }

// --- Open / Migrate ---

func TestNewSQLite_InvalidPath(t *testing.T) {
	_, err := NewSQLite("/nonexistent/dir/subdir/test.db")
	require.Error(t, err)
}

func TestSQLite_Migrate_Idempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	// Migrate was already called in newTestSQLiteStore; calling again should not error.
	err := st.Migrate(ctx)
	require.NoError(t, err)
}

func TestSQLite_CloseAndReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := NewSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, s1.Migrate(ctx))
	run, err := s1.SaveRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewSQLite(dbPath)
	require.NoError(t, err)
	defer s2.Close() //nolint:errcheck

	fetched, err := s2.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, fetched.ID)
}

// --- Runs ---

func TestSQLite_SaveRun_And_GetRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.SaveRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	fetched, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, fetched.ID)
	assert.Equal(t, model.RunStatusRunning, fetched.Status)
	assert.Nil(t, fetched.Stats)
	assert.Empty(t, fetched.Error)
	assert.WithinDuration(t, run.CreatedAt, fetched.CreatedAt, time.Second)
}

func TestSQLite_GetRun_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.GetRun(ctx, "nonexistent-run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestSQLite_UpdateRun_CompleteWithStats(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.SaveRun(ctx)
	require.NoError(t, err)

	run.Status = model.RunStatusComplete
	run.Stats = &model.RunStats{
		Vendors:      []string{"cisco", "dell", "hpe"},
		EmptyVendors: []string{"hpe"},
		FallbackUsed: true,
		RowsScraped:  42,
		Records:      40,
	}
	require.NoError(t, st.UpdateRun(ctx, run))

	fetched, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, fetched.Status)
	require.NotNil(t, fetched.Stats)
	assert.Equal(t, []string{"cisco", "dell", "hpe"}, fetched.Stats.Vendors)
	assert.Equal(t, []string{"hpe"}, fetched.Stats.EmptyVendors)
	assert.True(t, fetched.Stats.FallbackUsed)
	assert.Equal(t, 42, fetched.Stats.RowsScraped)
	assert.Equal(t, 40, fetched.Stats.Records)
	assert.Empty(t, fetched.Error)
}

func TestSQLite_UpdateRun_FailedWithError(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.SaveRun(ctx)
	require.NoError(t, err)

	run.Status = model.RunStatusFailed
	run.Error = "sitemap fetch timed out"
	require.NoError(t, st.UpdateRun(ctx, run))

	fetched, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, fetched.Status)
	assert.Equal(t, "sitemap fetch timed out", fetched.Error)
	assert.Nil(t, fetched.Stats)
}

func TestSQLite_UpdateRun_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	err := st.UpdateRun(ctx, &model.Run{ID: "nonexistent-run", Status: model.RunStatusComplete})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSQLite_LatestRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	first, err := st.SaveRun(ctx)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond) // distinct created_at ordering
	second, err := st.SaveRun(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	latest, err := st.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestSQLite_LatestRun_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.LatestRun(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestSQLite_ListRuns(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	first, err := st.SaveRun(ctx)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := st.SaveRun(ctx)
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, RunFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first.
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
}

func TestSQLite_ListRuns_FilterByStatus(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.SaveRun(ctx)
	require.NoError(t, err)
	run.Status = model.RunStatusComplete
	require.NoError(t, st.UpdateRun(ctx, run))

	// Second run stays running.
	_, err = st.SaveRun(ctx)
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete, Limit: 10})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}

func TestSQLite_ListRuns_LimitAndOffset(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		run, err := st.SaveRun(ctx)
		require.NoError(t, err)
		ids = append(ids, run.ID)
		time.Sleep(10 * time.Millisecond)
	}

	runs, err := st.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, ids[2], runs[0].ID)

	runs, err = st.ListRuns(ctx, RunFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, ids[1], runs[0].ID)
}

// --- Records ---

func TestSQLite_ReplaceRecords_RoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.SaveRun(ctx)
	require.NoError(t, err)

	records := []model.Record{
		{Vendor: "CISCO", Model: "C9300", EOLDate: strPtr("2024-10-31T00:00:00+00:00"), EOSLDate: strPtr("2029-10-31T00:00:00+00:00")},
		{Vendor: "DELL", Model: "R740", EOLDate: strPtr("2023-01-31T00:00:00+00:00"), EOSLDate: nil},
		{Vendor: "HPE", Model: "DL380", EOLDate: nil, EOSLDate: nil},
	}
	require.NoError(t, st.ReplaceRecords(ctx, run.ID, records))

	got, err := st.ListRecords(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestSQLite_ReplaceRecords_Idempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.SaveRun(ctx)
	require.NoError(t, err)

	records := []model.Record{
		{Vendor: "CISCO", Model: "C9300", EOLDate: strPtr("2024-10-31T00:00:00+00:00")},
		{Vendor: "DELL", Model: "R740"},
	}
	require.NoError(t, st.ReplaceRecords(ctx, run.ID, records))
	require.NoError(t, st.ReplaceRecords(ctx, run.ID, records))

	got, err := st.ListRecords(ctx, run.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSQLite_ReplaceRecords_ReplacesPrevious(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.SaveRun(ctx)
	require.NoError(t, err)

	require.NoError(t, st.ReplaceRecords(ctx, run.ID, []model.Record{
		{Vendor: "CISCO", Model: "C9300"},
		{Vendor: "DELL", Model: "R740"},
		{Vendor: "HPE", Model: "DL380"},
	}))
	require.NoError(t, st.ReplaceRecords(ctx, run.ID, []model.Record{
		{Vendor: "IBM", Model: "POWER9"},
	}))

	got, err := st.ListRecords(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "IBM", got[0].Vendor)
}

func TestSQLite_ReplaceRecords_EmptyClears(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.SaveRun(ctx)
	require.NoError(t, err)

	require.NoError(t, st.ReplaceRecords(ctx, run.ID, []model.Record{
		{Vendor: "CISCO", Model: "C9300"},
	}))
	require.NoError(t, st.ReplaceRecords(ctx, run.ID, nil))

	got, err := st.ListRecords(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_ListRecords_SortedByVendorThenModel(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.SaveRun(ctx)
	require.NoError(t, err)

	require.NoError(t, st.ReplaceRecords(ctx, run.ID, []model.Record{
		{Vendor: "HPE", Model: "DL380"},
		{Vendor: "CISCO", Model: "N9K"},
		{Vendor: "CISCO", Model: "C9300"},
	}))

	got, err := st.ListRecords(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "C9300", got[0].Model)
	assert.Equal(t, "N9K", got[1].Model)
	assert.Equal(t, "HPE", got[2].Vendor)
}

func TestSQLite_ListRecords_UnknownRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	got, err := st.ListRecords(ctx, "nonexistent-run")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_Records_IsolatedPerRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	runA, err := st.SaveRun(ctx)
	require.NoError(t, err)
	runB, err := st.SaveRun(ctx)
	require.NoError(t, err)

	require.NoError(t, st.ReplaceRecords(ctx, runA.ID, []model.Record{
		{Vendor: "CISCO", Model: "C9300"},
	}))
	require.NoError(t, st.ReplaceRecords(ctx, runB.ID, []model.Record{
		{Vendor: "DELL", Model: "R740"},
		{Vendor: "IBM", Model: "POWER9"},
	}))

	gotA, err := st.ListRecords(ctx, runA.ID)
	require.NoError(t, err)
	require.Len(t, gotA, 1)
	assert.Equal(t, "CISCO", gotA[0].Vendor)

	gotB, err := st.ListRecords(ctx, runB.ID)
	require.NoError(t, err)
	assert.Len(t, gotB, 2)
}
