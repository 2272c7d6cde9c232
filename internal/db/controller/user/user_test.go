package user_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/db/controller/user"
	"github.com/brandalign/brandalign/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	require.NoError(t, user.Seed(db))

	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, user.Seed(db))

	users, err := user.List(db, "")
	require.NoError(t, err)
	assert.Len(t, users, 5)
	assert.Equal(t, "Jane Doe", users[0].Name)
}

func TestListSearch(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		search string
		want   []string
	}{
		{search: "ross", want: []string{"Mike Ross"}},
		{search: "J.PEARSON", want: []string{"Jessica Pearson"}},
		{search: "acme.com", want: []string{"Jane Doe", "Jessica Pearson", "John Smith", "Mike Ross", "Sarah Connor"}},
		{search: "nobody", want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.search, func(t *testing.T) {
			users, err := user.List(db, tc.search)
			require.NoError(t, err)

			var names []string
			for _, u := range users {
				names = append(names, u.Name)
			}

			assert.Equal(t, tc.want, names)
		})
	}
}

func TestToggleActive(t *testing.T) {
	db := setupTestDB(t)

	users, err := user.List(db, "sarah")
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.False(t, users[0].Active)

	u, err := user.ToggleActive(db, users[0].ID)
	require.NoError(t, err)
	assert.True(t, u.Active)

	u, err = user.ToggleActive(db, users[0].ID)
	require.NoError(t, err)
	assert.False(t, u.Active)

	_, err = user.ToggleActive(db, 999)
	require.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = user.ToggleActive(nil, 1)
	require.ErrorIs(t, err, user.ErrDBNil)
}
