package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/reputation-cli/internal/model"
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

func TestSQLite_SaveAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	r := testReport("r-1", "Dental Excellence", 0, model.RecommendationGo)
	require.NoError(t, st.SaveReport(ctx, r))

	got, err := st.GetReport(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, *r, *got)
}

func TestSQLite_SaveAssignsID(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	r := testReport("", "Sonrisa", 0, model.RecommendationInvestigate)
	require.NoError(t, st.SaveReport(ctx, r))
	require.NotEmpty(t, r.ID)

	got, err := st.GetReport(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sonrisa", got.ListingName)
}

func TestSQLite_SaveReplacesSameID(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	r := testReport("r-1", "Dental Excellence", 0, model.RecommendationGo)
	require.NoError(t, st.SaveReport(ctx, r))
	r.Score = 40
	r.Recommendation = model.RecommendationNoGo
	require.NoError(t, st.SaveReport(ctx, r))

	all, err := st.ListReports(ctx, ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 40, all[0].Score)
}

func TestSQLite_GetReport_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetReport(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLite_ListReports_FiltersAndOrder(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveReport(ctx, testReport("a", "Dental Excellence", 0, model.RecommendationGo)))
	require.NoError(t, st.SaveReport(ctx, testReport("b", "Dental Excellence", 24*time.Hour, model.RecommendationInvestigate)))
	require.NoError(t, st.SaveReport(ctx, testReport("c", "Sonrisa Feliz", 48*time.Hour, model.RecommendationNoGo)))

	all, err := st.ListReports(ctx, ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[2].ID)

	byName, err := st.ListReports(ctx, ReportFilter{ListingName: "dental"})
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, "b", byName[0].ID)

	byRec, err := st.ListReports(ctx, ReportFilter{Recommendation: model.RecommendationNoGo})
	require.NoError(t, err)
	require.Len(t, byRec, 1)
	assert.Equal(t, "c", byRec[0].ID)

	page, err := st.ListReports(ctx, ReportFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].ID)
}

func TestSQLite_ListReports_OrdersSubSecondTimes(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveReport(ctx, testReport("whole", "Dental Excellence", 0, model.RecommendationGo)))
	require.NoError(t, st.SaveReport(ctx, testReport("half", "Dental Excellence", 500*time.Millisecond, model.RecommendationGo)))

	got, err := st.ListReports(ctx, ReportFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "half", got[0].ID)
	assert.Equal(t, "whole", got[1].ID)
}

func TestNewSQLite_InvalidDSN(t *testing.T) {
	_, err := NewSQLite(filepath.Join(t.TempDir(), "missing-dir", "x", "test.db"))
	assert.Error(t, err)
}
