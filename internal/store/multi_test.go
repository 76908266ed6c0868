package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/reputation-cli/internal/model"
)

func TestMulti_SavesEverywhereReadsFirst(t *testing.T) {
	dir := t.TempDir()
	db := newTestSQLiteStore(t)
	files := NewFileStore(dir)
	m := Multi{db, files}
	ctx := context.Background()

	r := testReport("", "Dental Excellence", 0, model.RecommendationGo)
	require.NoError(t, m.SaveReport(ctx, r))
	require.NotEmpty(t, r.ID)

	fromFile, err := files.GetReport(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, fromFile.ID)

	got, err := m.GetReport(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dental Excellence", got.ListingName)

	list, err := m.ListReports(ctx, ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	matches, err := filepath.Glob(filepath.Join(dir, "rapport_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestMulti_Empty(t *testing.T) {
	var m Multi
	_, err := m.GetReport(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrHistoryUnsupported))
	assert.NoError(t, m.SaveReport(context.Background(), testReport("x", "y", 0, model.RecommendationGo)))
	assert.NoError(t, m.Close())
}
