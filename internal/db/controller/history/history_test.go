package history_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/db/controller/history"
	"github.com/brandalign/brandalign/internal/db/models"
	"github.com/brandalign/brandalign/internal/governance"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")
	require.NoError(t, db.AutoMigrate(&models.History{}), "failed to migrate test database")

	return db
}

func item(name string, purpose governance.Purpose, score float64, at time.Time) governance.HistoryItem {
	return governance.HistoryItem{
		Filename: name,
		Type:     governance.AssetDocument,
		Date:     at,
		Score:    score,
		Purpose:  purpose,
		Region:   "Global",
		Issues:   2,
		Status:   governance.StatusForScore(score),
		ContextSnapshot: governance.ContextSnapshot{
			BrandSettingsVersion: "v3",
			Region:               "Global",
		},
	}
}

func TestCreateGetDelete(t *testing.T) {
	db := setupTestDB(t)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	created, err := history.Create(db, item("launch.pdf", governance.PurposeMarketing, 91, at))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := history.Get(db, uint64(created.ID))
	require.NoError(t, err)
	assert.Equal(t, "launch.pdf", got.Filename)
	assert.Equal(t, governance.StatusPass, got.Status)
	assert.Equal(t, "v3", got.ContextSnapshot.BrandSettingsVersion)
	assert.True(t, at.Equal(got.Date))

	require.NoError(t, history.Delete(db, uint64(created.ID)))
	_, err = history.Get(db, uint64(created.ID))
	require.ErrorIs(t, err, history.ErrHistoryNotFound)
	require.ErrorIs(t, history.Delete(db, uint64(created.ID)), history.ErrHistoryNotFound)
}

func TestNilDB(t *testing.T) {
	_, err := history.Create(nil, governance.HistoryItem{})
	require.ErrorIs(t, err, history.ErrDBNil)
	_, err = history.List(nil, history.Query{})
	require.ErrorIs(t, err, history.ErrDBNil)
	_, err = history.Get(nil, 1)
	require.ErrorIs(t, err, history.ErrDBNil)
	require.ErrorIs(t, history.Delete(nil, 1), history.ErrDBNil)
}

func TestList(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := history.Create(db, item(fmt.Sprintf("memo_%d.txt", i), governance.PurposeInternalComms, 80, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	_, err := history.Create(db, item("Press_Kit.pdf", governance.PurposePressRelease, 60, base.Add(-time.Hour)))
	require.NoError(t, err)

	testCases := []struct {
		name      string
		query     history.Query
		wantTotal int64
		wantFirst string
		wantLen   int
	}{
		{name: "newest first", query: history.Query{}, wantTotal: 6, wantFirst: "memo_4.txt", wantLen: 6},
		{name: "second page", query: history.Query{Page: 2, PerPage: 4}, wantTotal: 6, wantFirst: "memo_0.txt", wantLen: 2},
		{name: "search filename case insensitive", query: history.Query{Search: "PRESS_kit"}, wantTotal: 1, wantFirst: "Press_Kit.pdf", wantLen: 1},
		{name: "search purpose", query: history.Query{Search: "internal comms"}, wantTotal: 5, wantFirst: "memo_4.txt", wantLen: 5},
		{name: "no match", query: history.Query{Search: "nothing"}, wantTotal: 0, wantLen: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := history.List(db, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, page.Total)
			require.Len(t, page.Items, tc.wantLen)

			if tc.wantLen > 0 {
				assert.Equal(t, tc.wantFirst, page.Items[0].Filename)
			}
		})
	}
}

func TestListSearchMatchesWildcardsLiterally(t *testing.T) {
	db := setupTestDB(t)
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for _, name := range []string{"spring_sale.pdf", "summer 50% off.png", "winter sale!.txt", "autumn.doc"} {
		_, err := history.Create(db, item(name, governance.PurposeMarketing, 75, at))
		require.NoError(t, err)
	}

	testCases := []struct {
		search string
		want   []string
	}{
		{search: "%", want: []string{"summer 50% off.png"}},
		{search: "50%", want: []string{"summer 50% off.png"}},
		{search: "_", want: []string{"spring_sale.pdf"}},
		{search: "g_s", want: []string{"spring_sale.pdf"}},
		{search: "sale!", want: []string{"winter sale!.txt"}},
		{search: "r%s", want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.search, func(t *testing.T) {
			page, err := history.List(db, history.Query{Search: tc.search})
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.want)), page.Total)

			var names []string
			for _, it := range page.Items {
				names = append(names, it.Filename)
			}

			assert.Equal(t, tc.want, names)
		})
	}
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, history.Page{}.Pages())
	assert.Equal(t, 1, history.Page{Total: 20, PerPage: 20}.Pages())
	assert.Equal(t, 2, history.Page{Total: 21, PerPage: 20}.Pages())
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, history.Seed(db))
	require.NoError(t, history.Seed(db))

	items, err := history.All(db)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Q3_Marketing_Strategy.pptx", items[0].Filename)
	assert.Equal(t, governance.StatusNeedsReview, items[1].Status)
}
