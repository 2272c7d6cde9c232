package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	assert.Equal(t, ProviderGemini, cfg.Model.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model.Name)
	assert.Equal(t, 2*time.Minute, cfg.Model.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Webserver.Session.ExpiryTime)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid config",
			config: Config{
				Webserver: Webserver{
					Port: 8080,
					URL:  "http://localhost:8080",
				},
			},
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{
					Port: 0,
					URL:  "http://localhost:8080",
				},
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{
					Port: 8080,
					URL:  "",
				},
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "unknown gorm engine",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				DB:        DB{GormEngine: "oracle"},
			},
			wantErr: ErrUnknownGormEngine,
		},
		{
			name: "unknown model provider",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				Model:     Model{Provider: "llama"},
			},
			wantErr: ErrUnknownModelProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"}}

	require.NoError(t, validate(&cfg))

	assert.Equal(t, defaultShutDownTime, cfg.Webserver.ShutDownTime)
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	assert.Equal(t, ProviderGemini, cfg.Model.Provider)
	assert.Equal(t, defaultModelName, cfg.Model.Name)
	assert.InDelta(t, defaultTemperature, cfg.Model.Temperature, 0.0001)
	assert.Equal(t, defaultModelTimeout, cfg.Model.Timeout)
	assert.Equal(t, int64(defaultMaxFileSize), cfg.Upload.MaxFileSize)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	jsonOverride := `{"Title":"Test Override","Webserver":{"Port":9090},"Model":{"Provider":"openai","Name":"gpt-4o-mini"}}`
	t.Setenv(EnvConfigJSON, jsonOverride)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	assert.Equal(t, ProviderOpenAI, cfg.Model.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	// untouched values survive the merge
	assert.Equal(t, "http://localhost:8080", cfg.Webserver.URL)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(projectConfigPath(t))
	require.Error(t, err)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	require.Error(t, err)
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.True(t, strings.Contains(tomlStr, "Test"))

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"Title": "Test"`)
}
