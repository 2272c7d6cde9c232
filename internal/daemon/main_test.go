package daemon

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db/controller/brand"
	"github.com/brandalign/brandalign/internal/db/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Title: "BrandAlign",
		DB: config.DB{
			GormEngine: config.EngineSQLite,
			Path:       filepath.Join(t.TempDir(), "brandalign.db"),
		},
		Webserver: config.Webserver{
			Port:         8080,
			URL:          "http://localhost:8080",
			ShutDownTime: 1,
			Session:      config.Session{ExpiryTime: time.Hour},
		},
		Model: config.Model{
			Provider: config.ProviderGemini,
			Name:     "gemini-2.5-flash",
			Timeout:  time.Second,
		},
		Upload: config.Upload{MaxFileSize: 1 << 20},
	}
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.Error(t, err)
}

func TestNew_SeedsEmptyDatabase(t *testing.T) {
	d, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.close() })

	settings, err := brand.Load(d.db)
	require.NoError(t, err)
	assert.NotEmpty(t, settings.BrandName)

	var users int64
	require.NoError(t, d.db.Model(&models.User{}).Count(&users).Error)
	assert.Positive(t, users)

	var entries int64
	require.NoError(t, d.db.Model(&models.History{}).Count(&entries).Error)
	assert.Positive(t, entries)
}

func TestSeed_Idempotent(t *testing.T) {
	d, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.close() })

	var before int64
	require.NoError(t, d.db.Model(&models.User{}).Count(&before).Error)

	require.NoError(t, seed(d.db))

	var after int64
	require.NoError(t, d.db.Model(&models.User{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestSessionStorage_SQLiteUsesMemory(t *testing.T) {
	assert.Nil(t, SessionStorage(testConfig(t)))
}

func TestShutdownTimeout(t *testing.T) {
	d := &Daemon{cfg: testConfig(t)}
	assert.Equal(t, 11*time.Second, d.shutdownTimeout())
}
