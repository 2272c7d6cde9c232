package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Setting{Name: "brand_settings", Value: []byte(`{"brandName":"AERION"}`)}).Error)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		settingName   string
		expectedError error
		expectedValue []byte
	}{
		{name: "nil database", settingName: "test", expectedError: ErrDBNil},
		{name: "empty name", dbParam: db, expectedError: ErrSettingNameEmpty},
		{name: "setting not found", dbParam: db, settingName: "nonexistent", expectedError: ErrSettingNotFound},
		{
			name:          "successful get",
			dbParam:       db,
			settingName:   "brand_settings",
			expectedValue: []byte(`{"brandName":"AERION"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setting, err := Get(tc.dbParam, tc.settingName)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.settingName, setting.Name)
			assert.Equal(t, tc.expectedValue, setting.Value)
		})
	}
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	_, err := Set(nil, "x", nil)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Set(db, "", nil)
	require.ErrorIs(t, err, ErrSettingNameEmpty)

	created, err := Set(db, "model_provider", []byte("one"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := Set(db, "model_provider", []byte("two"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	var count int64
	db.Model(&models.Setting{}).Where("name = ?", "model_provider").Count(&count)
	assert.Equal(t, int64(1), count)

	got, err := Get(db, "model_provider")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got.Value)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	require.ErrorIs(t, Delete(nil, "x"), ErrDBNil)
	require.ErrorIs(t, Delete(db, ""), ErrSettingNameEmpty)
	require.ErrorIs(t, Delete(db, "missing"), ErrSettingNotFound)

	_, err := Set(db, "brand_settings", []byte("{}"))
	require.NoError(t, err)
	require.NoError(t, Delete(db, "brand_settings"))

	_, err = Get(db, "brand_settings")
	require.ErrorIs(t, err, ErrSettingNotFound)
}

func TestLoadSave(t *testing.T) {
	db := setupTestDB(t)

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var out doc
	require.ErrorIs(t, Load(db, "doc", &out), ErrSettingNotFound)

	require.NoError(t, Save(db, "doc", doc{Name: "a", Count: 3}))
	require.NoError(t, Load(db, "doc", &out))
	assert.Equal(t, doc{Name: "a", Count: 3}, out)

	_, err := Set(db, "broken", []byte("{not json"))
	require.NoError(t, err)
	require.Error(t, Load(db, "broken", &out))
}
