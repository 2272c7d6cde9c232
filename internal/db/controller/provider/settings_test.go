package provider_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db/controller/provider"
	"github.com/brandalign/brandalign/internal/db/controller/setting"
	"github.com/brandalign/brandalign/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	return db
}

func TestLoadOrDefault(t *testing.T) {
	db := setupTestDB(t)
	cfg := &config.Model{Provider: config.ProviderGemini, Name: "gemini-2.5-flash", APIKey: "env-key-123"}

	var s provider.Settings
	require.NoError(t, s.LoadOrDefault(db, cfg))
	assert.Equal(t, provider.FromConfig(cfg), s)

	stored := provider.Settings{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini"}
	require.NoError(t, stored.Save(db))

	var loaded provider.Settings
	require.NoError(t, loaded.LoadOrDefault(db, cfg))
	assert.Equal(t, config.ProviderOpenAI, loaded.Provider)
	assert.Equal(t, "gpt-4o-mini", loaded.Model)
	assert.Equal(t, "env-key-123", loaded.APIKey)
}

func TestLoadMissing(t *testing.T) {
	var s provider.Settings
	require.ErrorIs(t, s.Load(setupTestDB(t)), setting.ErrSettingNotFound)
}

func TestMaskedAPIKey(t *testing.T) {
	assert.Equal(t, "", (&provider.Settings{APIKey: "abc"}).MaskedAPIKey())
	assert.Equal(t, "******7890", (&provider.Settings{APIKey: "1234567890"}).MaskedAPIKey())
}
